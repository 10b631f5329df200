package production

import (
	"time"

	"github.com/google/uuid"
)

// BatchStatus represents the lifecycle of a ficha
type BatchStatus string

const (
	BatchStatusCut       BatchStatus = "cut"       // Cut, not yet sent out
	BatchStatusWithBanca BatchStatus = "with_banca" // Delivered to a banca
	BatchStatusCompleted BatchStatus = "completed" // Returned and closed
)

// ProductionBatch is a read model over the ficha registry: one unit of
// outsourced production work tracked from cutting through completion.
type ProductionBatch struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ProductName string      `gorm:"type:varchar(200);not null"`
	CutDate     time.Time   `gorm:"not null"`
	Status      BatchStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (ProductionBatch) TableName() string {
	return "production_batches"
}
