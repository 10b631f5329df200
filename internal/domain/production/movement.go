package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the kind of event recorded against a ficha
type MovementType string

const (
	MovementDelivery   MovementType = "delivery"   // Cut pieces delivered to a banca
	MovementReturn     MovementType = "return"     // Finished pieces returned by a banca
	MovementCompletion MovementType = "completion" // Ficha closed as completed
)

// IsValid checks if the type is a valid MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementDelivery, MovementReturn, MovementCompletion:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// SettlementTypes are the movement types that feed settlement aggregation:
// work a banca has handed back, priced per piece.
func SettlementTypes() []MovementType {
	return []MovementType{MovementReturn, MovementCompletion}
}

// Movement is a read model over the production ledger: one timestamped
// event against a ficha, joined with batch metadata. The settlement engine
// never writes movements.
type Movement struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductionBatchID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type               MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Date               time.Time       `gorm:"not null;index"`
	SubcontractorName  string          `gorm:"type:varchar(200);not null;index"` // name snapshot as typed at entry
	ProductName        string          `gorm:"type:varchar(200);not null"`       // denormalized from the batch
	BatchDate          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "production_movements"
}

// PieceCount coerces the movement quantity to a whole piece count.
// Missing or invalid quantities count as zero pieces rather than failing
// the run.
func (m *Movement) PieceCount() int64 {
	if m.Quantity.IsNegative() {
		return 0
	}
	return m.Quantity.IntPart()
}
