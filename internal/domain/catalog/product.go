package catalog

import (
	"strings"
	"time"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a produced garment model (e.g., "Camisa P")
// It is the aggregate root of the product registry; the settlement engine
// reads it only for unit pricing.
type Product struct {
	shared.BaseAggregateRoot
	Name      string          `gorm:"type:varchar(200);not null"`
	NameKey   string          `gorm:"type:varchar(200);not null;uniqueIndex"` // normalized lookup key
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`  // price paid per piece to the banca
	Active    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NormalizeProductName produces the canonical lookup key for a product name:
// trimmed and lowercased. Pricing lookups and the stored NameKey use the
// same rule.
func NormalizeProductName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewProduct creates a new product with a unit price
func NewProduct(name string, unitPrice decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		NameKey:           NormalizeProductName(name),
		UnitPrice:         unitPrice,
		Active:            true,
	}, nil
}

// SetUnitPrice updates the unit price
func (p *Product) SetUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
