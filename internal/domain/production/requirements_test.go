package production_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

type memoryStorage map[string]int

func (m memoryStorage) Count(itemID string) int { return m[itemID] }
func (m memoryStorage) Add(itemID string, n int) { m[itemID] += n }
func (m memoryStorage) Subtract(itemID string, n int) error {
	if m[itemID] < n {
		return fmt.Errorf("not enough %s", itemID)
	}
	m[itemID] -= n
	return nil
}

func TestRequirementsMet_PrefixCount(t *testing.T) {
	bom := production.BillOfMaterials{
		{ItemID: "alloy", Quantity: 2},
		{ItemID: "elerium", Quantity: 1},
	}

	tests := []struct {
		name     string
		storage  memoryStorage
		amount   int
		expected int
	}{
		{"fully covered", memoryStorage{"alloy": 10, "elerium": 5}, 5, 5},
		{"alloy runs out", memoryStorage{"alloy": 7, "elerium": 5}, 5, 3},
		{"elerium runs out", memoryStorage{"alloy": 10, "elerium": 2}, 5, 2},
		{"nothing in stock", memoryStorage{}, 3, 0},
		{"zero request", memoryStorage{"alloy": 10, "elerium": 5}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, production.RequirementsMet(tt.amount, bom, tt.storage))
		})
	}
}

func TestRequirementsMet_EmptyBillAlwaysProducible(t *testing.T) {
	assert.Equal(t, 4, production.RequirementsMet(4, nil, memoryStorage{}))
}

func TestReserve_AndRefund(t *testing.T) {
	// Arrange
	bom := production.BillOfMaterials{{ItemID: "alloy", Quantity: 3}}
	storage := memoryStorage{"alloy": 10}

	// Act
	err := production.Reserve(storage, 3, bom)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, storage["alloy"])

	// Act - inverse through negative amount
	require.NoError(t, production.Reserve(storage, -2, bom))
	assert.Equal(t, 7, storage["alloy"])

	production.Refund(storage, 1, bom)
	assert.Equal(t, 10, storage["alloy"])
}

func TestReserve_AllOrNothing(t *testing.T) {
	bom := production.BillOfMaterials{
		{ItemID: "alloy", Quantity: 1},
		{ItemID: "elerium", Quantity: 4},
	}
	storage := memoryStorage{"alloy": 5, "elerium": 3}

	err := production.Reserve(storage, 1, bom)

	assert.Error(t, err)
	assert.Equal(t, 5, storage["alloy"])
	assert.Equal(t, 3, storage["elerium"])
}

func TestOrder_ReleaseReservationFiresOnce(t *testing.T) {
	o := mustOrder(t, "x")
	o.MarkReserved()

	assert.True(t, o.ReleaseReservation())
	assert.False(t, o.ReleaseReservation())
	assert.False(t, o.MaterialsReserved())
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := production.NewOrder(production.OrderKindManufacture, itemTarget("x", 1), 0)
	var vErr *production.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, production.ReasonInvalidOrder, vErr.Reason)

	aircraft := production.AircraftTarget{Aircraft: &production.AircraftDefinition{ID: "craft", Size: production.HangarSizeSmall}}
	_, err = production.NewOrder(production.OrderKindDisassembly, aircraft, 1)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, production.ReasonNotDisassemblable, vErr.Reason)
}
