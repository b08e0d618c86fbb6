package production_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

func TestFraction_ReferenceValues(t *testing.T) {
	tests := []struct {
		name     string
		workers  int
		expected float64
	}{
		{"reference workforce", 10, 0.1},
		{"half workforce is quadratic", 5, 0.025},
		{"double workforce", 20, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, production.Fraction(tt.workers, 10, 10), 1e-12)
		})
	}
}

func TestFraction_ClampedToOne(t *testing.T) {
	assert.Equal(t, 1.0, production.Fraction(100, 10, 2))
	assert.Equal(t, 1.0, production.Fraction(10, 10, 0))
	assert.Equal(t, 0.0, production.Fraction(0, 10, 10))
}

func TestFraction_AccumulatesToCompletion(t *testing.T) {
	for _, hours := range []int{1, 3, 7, 10, 24, 120} {
		for _, workers := range []int{3, 5, 10, 13} {
			f := production.Fraction(workers, 10, hours)
			expectedTicks := int(math.Ceil(1/f - 1e-9))

			o, err := production.NewOrder(production.OrderKindManufacture, itemTarget("x", hours), 1)
			if err != nil {
				t.Fatal(err)
			}

			ticks := 0
			for {
				ticks++
				if o.Advance(f) {
					break
				}
				if ticks > expectedTicks+1 {
					break
				}
			}
			assert.Equal(t, expectedTicks, ticks, "workers=%d hours=%d", workers, hours)
		}
	}
}

func TestEffectiveWorkers_CappedByWorkspace(t *testing.T) {
	assert.Equal(t, 8, production.EffectiveWorkers(12, 8))
	assert.Equal(t, 5, production.EffectiveWorkers(5, 8))
	assert.Equal(t, 0, production.EffectiveWorkers(-1, 8))
}

func itemTarget(id string, hours int) production.ItemTarget {
	return production.ItemTarget{Item: &production.ItemDefinition{
		ID:              id,
		Name:            id,
		Price:           100,
		Size:            1,
		ProductionHours: hours,
		Researched:      true,
	}}
}
