package partner

import (
	"strings"
	"time"

	"github.com/costura/backend/internal/domain/shared"
)

// SubcontractorKind represents the kind of third party
type SubcontractorKind string

const (
	KindSupplier SubcontractorKind = "supplier" // Raw material supplier
	KindBanca    SubcontractorKind = "banca"    // Outsourced production workshop
)

// IsValid checks if the kind is a valid SubcontractorKind
func (k SubcontractorKind) IsValid() bool {
	switch k {
	case KindSupplier, KindBanca:
		return true
	}
	return false
}

// String returns the string representation of SubcontractorKind
func (k SubcontractorKind) String() string {
	return string(k)
}

// Subcontractor represents a registered third party (supplier or banca)
// It is the aggregate root of the subcontractor registry
type Subcontractor struct {
	shared.BaseAggregateRoot
	Name        string            `gorm:"type:varchar(200);not null;index"`
	Kind        SubcontractorKind `gorm:"type:varchar(20);not null;default:'banca'"`
	ContactName string            `gorm:"type:varchar(100)"`
	Phone       string            `gorm:"type:varchar(50)"`
	Email       string            `gorm:"type:varchar(200)"`
	Address     string            `gorm:"type:text"`
	City        string            `gorm:"type:varchar(100)"`
	State       string            `gorm:"type:varchar(50)"`
	Active      bool              `gorm:"not null;default:true"`
	Notes       string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Subcontractor) TableName() string {
	return "subcontractors"
}

// NewSubcontractor creates a new subcontractor with required fields
func NewSubcontractor(name string, kind SubcontractorKind) (*Subcontractor, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Subcontractor kind is not valid")
	}

	s := &Subcontractor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              kind,
		Active:            true,
	}

	s.AddDomainEvent(NewSubcontractorCreatedEvent(s))

	return s, nil
}

// NewBanca creates a new banca (outsourced workshop) subcontractor
func NewBanca(name string) (*Subcontractor, error) {
	return NewSubcontractor(name, KindBanca)
}

// Update updates the subcontractor's name
func (s *Subcontractor) Update(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubcontractorUpdatedEvent(s))

	return nil
}

// SetContact sets the subcontractor's contact information
func (s *Subcontractor) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && (len(email) > 200 || !strings.Contains(email, "@")) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the subcontractor's address information
func (s *Subcontractor) SetAddress(address, city, state string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if state != "" && len(state) > 50 {
		return shared.NewDomainError("INVALID_STATE", "State cannot exceed 50 characters")
	}

	s.Address = address
	s.City = city
	s.State = state
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate marks the subcontractor as inactive
func (s *Subcontractor) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate marks the subcontractor as active
func (s *Subcontractor) Activate() {
	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// IsBanca returns true if the subcontractor is an outsourced workshop
func (s *Subcontractor) IsBanca() bool {
	return s.Kind == KindBanca
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Subcontractor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Subcontractor name cannot exceed 200 characters")
	}
	return nil
}
