package partner

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SubcontractorRef is a tagged reference to a subcontractor observed in the
// movement ledger. It is either resolved against the registry or ephemeral:
// a placeholder for a name with no registry row. Ephemeral references are
// never written back into the registry; downstream code must check
// IsEphemeral before treating ID as a foreign key.
type SubcontractorRef struct {
	ID        uuid.UUID
	Name      string
	Ephemeral bool
}

// ResolvedRef creates a reference backed by a registry row
func ResolvedRef(s *Subcontractor) SubcontractorRef {
	return SubcontractorRef{ID: s.ID, Name: s.Name, Ephemeral: false}
}

// EphemeralRef creates a placeholder reference for an unmatched name
func EphemeralRef(id uuid.UUID, name string) SubcontractorRef {
	return SubcontractorRef{ID: id, Name: name, Ephemeral: true}
}

// IsEphemeral returns true if the reference has no registry row behind it
func (r SubcontractorRef) IsEphemeral() bool {
	return r.Ephemeral
}

// String returns a human readable representation
func (r SubcontractorRef) String() string {
	if r.Ephemeral {
		return fmt.Sprintf("ephemeral(%s)", r.Name)
	}
	return fmt.Sprintf("%s(%s)", r.Name, r.ID)
}

// NameNormalizer normalizes a raw ledger name before matching.
// The default strategy trims surrounding whitespace only: matching stays
// case-sensitive and accent-sensitive, so visually distinct spellings of the
// same banca resolve to distinct references.
type NameNormalizer func(name string) string

// TrimNormalizer trims surrounding whitespace and nothing else
func TrimNormalizer(name string) string {
	return strings.TrimSpace(name)
}

// FoldAccentsNormalizer trims and strips combining marks (accents).
// Not the default; opt-in for registries with inconsistent accenting.
func FoldAccentsNormalizer(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		return strings.TrimSpace(name)
	}
	return folded
}

// SubcontractorResolver turns free-text ledger names into subcontractor
// references. Read-only against the registry; unmatched names yield
// ephemeral references whose IDs stay stable within one resolver instance,
// so all movements for the same unmatched name land in the same bucket.
type SubcontractorResolver struct {
	repo      SubcontractorRepository
	normalize NameNormalizer
	ephemeral map[string]uuid.UUID
}

// ResolverOption configures a SubcontractorResolver
type ResolverOption func(*SubcontractorResolver)

// WithNameNormalizer overrides the default trim-only normalizer
func WithNameNormalizer(n NameNormalizer) ResolverOption {
	return func(r *SubcontractorResolver) {
		r.normalize = n
	}
}

// NewSubcontractorResolver creates a resolver scoped to one orchestration run
func NewSubcontractorResolver(repo SubcontractorRepository, opts ...ResolverOption) *SubcontractorResolver {
	r := &SubcontractorResolver{
		repo:      repo,
		normalize: TrimNormalizer,
		ephemeral: make(map[string]uuid.UUID),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the registry subcontractor matching the raw name, or an
// ephemeral reference when no registry row matches. Exact match is preferred
// over trimmed match.
func (r *SubcontractorResolver) Resolve(ctx context.Context, rawName string) (SubcontractorRef, error) {
	if s, err := r.repo.FindByName(ctx, rawName); err != nil {
		return SubcontractorRef{}, fmt.Errorf("failed to look up subcontractor by name: %w", err)
	} else if s != nil {
		return ResolvedRef(s), nil
	}

	// Trimmed match compares both sides trimmed, so a registry row with
	// trailing whitespace still matches a clean ledger name
	trimmed := r.normalize(rawName)
	if s, err := r.repo.FindByTrimmedName(ctx, trimmed); err != nil {
		return SubcontractorRef{}, fmt.Errorf("failed to look up subcontractor by trimmed name: %w", err)
	} else if s != nil {
		return ResolvedRef(s), nil
	}

	id, ok := r.ephemeral[trimmed]
	if !ok {
		id = uuid.New()
		r.ephemeral[trimmed] = id
	}
	return EphemeralRef(id, trimmed), nil
}
