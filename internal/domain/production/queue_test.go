package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

func newQueueWith(t *testing.T, ids ...string) *production.Queue {
	t.Helper()
	q := production.NewQueue("base-1")
	for _, id := range ids {
		o, err := production.NewOrder(production.OrderKindManufacture, itemTarget(id, 10), 1)
		require.NoError(t, err)
		q.Append(o)
	}
	return q
}

func targetIDs(q *production.Queue) []string {
	out := []string{}
	for _, o := range q.Orders() {
		out = append(out, o.TargetRef())
	}
	return out
}

func assertPositions(t *testing.T, q *production.Queue) {
	t.Helper()
	for i, o := range q.Orders() {
		assert.Equal(t, i, o.Position(), "order %s", o.TargetRef())
	}
}

func TestQueue_AppendAssignsPositions(t *testing.T) {
	q := newQueueWith(t, "a", "b", "c")

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, "a", q.Head().TargetRef())
	assertPositions(t, q)
}

func TestQueue_RemoveAtShiftsLaterOrders(t *testing.T) {
	// Arrange
	q := newQueueWith(t, "a", "b", "c", "d")

	// Act
	removed, err := q.RemoveAt(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "b", removed.TargetRef())
	assert.Equal(t, []string{"a", "c", "d"}, targetIDs(q))
	assertPositions(t, q)
}

func TestQueue_RemoveAtOutOfRange(t *testing.T) {
	q := newQueueWith(t, "a")

	_, err := q.RemoveAt(3)

	var rangeErr *production.ErrQueueIndexOutOfRange
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1, rangeErr.Length)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Move(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		delta    int
		expected []string
		newIndex int
	}{
		{"promote by one", 2, -1, []string{"a", "c", "b", "d"}, 1},
		{"demote by two", 0, 2, []string{"b", "c", "a", "d"}, 2},
		{"clamped to head", 3, -10, []string{"d", "a", "b", "c"}, 0},
		{"clamped to tail", 1, 99, []string{"a", "c", "d", "b"}, 3},
		{"zero delta", 1, 0, []string{"a", "b", "c", "d"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newQueueWith(t, "a", "b", "c", "d")

			idx, err := q.Move(tt.index, tt.delta)

			require.NoError(t, err)
			assert.Equal(t, tt.newIndex, idx)
			assert.Equal(t, tt.expected, targetIDs(q))
			assertPositions(t, q)
		})
	}
}

func TestQueue_RollToBottom(t *testing.T) {
	q := newQueueWith(t, "a", "b", "c")

	assert.True(t, q.RollToBottom())
	assert.Equal(t, []string{"b", "c", "a"}, targetIDs(q))
	assertPositions(t, q)

	single := newQueueWith(t, "only")
	assert.False(t, single.RollToBottom())
	assert.Equal(t, []string{"only"}, targetIDs(single))
}

func TestLimits_CapacityIsTheSmallerBound(t *testing.T) {
	limits := production.Limits{MaxQueueLength: 12, PerWorkshopLimit: 5, MaxOrderAmount: 500}

	assert.Equal(t, 0, limits.Capacity(0))
	assert.Equal(t, 10, limits.Capacity(2))
	assert.Equal(t, 12, limits.Capacity(3))
}

func TestBook_BaseIDsSorted(t *testing.T) {
	book := production.NewBook()
	book.Queue("base-3")
	book.Queue("base-1")
	book.Queue("base-2").Append(mustOrder(t, "x"))

	assert.Equal(t, []string{"base-1", "base-2", "base-3"}, book.BaseIDs())
	assert.Equal(t, 1, book.TotalOrders())
}

func mustOrder(t *testing.T, id string) *production.Order {
	t.Helper()
	o, err := production.NewOrder(production.OrderKindManufacture, itemTarget(id, 10), 1)
	require.NoError(t, err)
	return o
}
