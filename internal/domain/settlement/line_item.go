package settlement

import (
	"time"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementLineItem is one priced movement inside a banca settlement.
// Fully owned by its SubcontractorSettlement: regeneration replaces the
// whole set atomically.
type SettlementLineItem struct {
	shared.BaseEntity
	SubcontractorSettlementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementID                uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName               string          `gorm:"type:varchar(200);not null"`
	Quantity                  int64           `gorm:"not null"`
	UnitPrice                 decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal                 decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BatchDate                 time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettlementLineItem) TableName() string {
	return "settlement_line_items"
}

// NewSettlementLineItem creates a priced line for one movement.
// LineTotal is always quantity × unitPrice; a zero quantity (coerced from
// bad ledger data) yields a zero-value line rather than an error.
func NewSettlementLineItem(
	movementID uuid.UUID,
	productName string,
	quantity int64,
	unitPrice decimal.Decimal,
	batchDate time.Time,
) (*SettlementLineItem, error) {
	if movementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Movement ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &SettlementLineItem{
		BaseEntity:  shared.NewBaseEntity(),
		MovementID:  movementID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(quantity)),
		BatchDate:   batchDate,
	}, nil
}
