package production

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMovementPieceCount(t *testing.T) {
	tests := []struct {
		name     string
		quantity decimal.Decimal
		expected int64
	}{
		{"whole quantity", decimal.NewFromInt(120), 120},
		{"fractional quantity truncates", decimal.RequireFromString("12.9"), 12},
		{"zero quantity", decimal.Zero, 0},
		{"negative quantity coerces to zero", decimal.NewFromInt(-5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Movement{Quantity: tt.quantity}
			assert.Equal(t, tt.expected, m.PieceCount())
		})
	}
}

func TestSettlementTypes(t *testing.T) {
	types := SettlementTypes()

	assert.ElementsMatch(t, []MovementType{MovementReturn, MovementCompletion}, types)
	assert.NotContains(t, types, MovementDelivery)
}

func TestMovementTypeIsValid(t *testing.T) {
	assert.True(t, MovementDelivery.IsValid())
	assert.True(t, MovementReturn.IsValid())
	assert.True(t, MovementCompletion.IsValid())
	assert.False(t, MovementType("shipment").IsValid())
}
