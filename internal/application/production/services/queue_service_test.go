package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

func requireReason(t *testing.T, err error, reason production.Reason) {
	t.Helper()
	var verr *production.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, reason, verr.Reason)
}

func TestEnqueue_AppendsOrderAndNotifiesStart(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")

	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 2)

	assert.Equal(t, 0, res.Index)
	assert.Equal(t, 2, res.Granted)
	assert.False(t, res.Partial())
	assert.Equal(t, 1, f.queue("alpha").Len())
	assert.Equal(t, 1, f.sink.count(production.EventStarted))
	assert.Equal(t, 1000, f.campaign.Credits().Balance())
}

func TestEnqueue_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, f *fixture)
		req     services.EnqueueRequest
		reason  production.Reason
	}{
		{
			name: "no workers",
			prepare: func(t *testing.T, f *fixture) {
				b := f.addBase(t, 0, "alpha")
				b.Hire(production.EmployeeWorker, 0)
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "rifle", Amount: 1},
			reason: production.ReasonNoWorkers,
		},
		{
			name: "no workshop",
			prepare: func(t *testing.T, f *fixture) {
				b := f.addBase(t, 0, "alpha")
				b.SetWorkshops(0)
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "rifle", Amount: 1},
			reason: production.ReasonNoWorkshopSlot,
		},
		{
			name: "no command centre",
			prepare: func(t *testing.T, f *fixture) {
				b := f.addBase(t, 0, "alpha")
				b.SetCommandCentre(false)
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, AircraftID: "interceptor", Amount: 1},
			reason: production.ReasonNoCommandCentre,
		},
		{
			name: "no hangar",
			prepare: func(t *testing.T, f *fixture) {
				b := f.addBase(t, 0, "alpha")
				b.SetCapacityMax(production.CapacityAircraftLarge, 0)
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, AircraftID: "dropship", Amount: 1},
			reason: production.ReasonNoHangar,
		},
		{
			name: "not producible",
			prepare: func(t *testing.T, f *fixture) {
				f.addBase(t, 0, "alpha")
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "alloy", Amount: 1},
			reason: production.ReasonNotProducible,
		},
		{
			name: "not researched",
			prepare: func(t *testing.T, f *fixture) {
				f.addBase(t, 0, "alpha")
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "laser", Amount: 1},
			reason: production.ReasonNotResearched,
		},
		{
			name: "no materials",
			prepare: func(t *testing.T, f *fixture) {
				f.addBase(t, 0, "alpha")
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "armour", Amount: 1},
			reason: production.ReasonNoMaterials,
		},
		{
			name: "nothing to disassemble",
			prepare: func(t *testing.T, f *fixture) {
				f.addBase(t, 0, "alpha")
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindDisassembly, ItemID: "ufo_scout", Amount: 1},
			reason: production.ReasonNotInStorage,
		},
		{
			name: "not disassemblable",
			prepare: func(t *testing.T, f *fixture) {
				b := f.addBase(t, 0, "alpha")
				b.Add("rifle", 1)
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindDisassembly, ItemID: "rifle", Amount: 1},
			reason: production.ReasonNotDisassemblable,
		},
		{
			name: "unknown target",
			prepare: func(t *testing.T, f *fixture) {
				f.addBase(t, 0, "alpha")
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "plasma", Amount: 1},
			reason: production.ReasonUnknownTarget,
		},
		{
			name: "zero amount",
			prepare: func(t *testing.T, f *fixture) {
				f.addBase(t, 0, "alpha")
			},
			req:    services.EnqueueRequest{BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "rifle", Amount: 0},
			reason: production.ReasonInvalidOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1000)
			tt.prepare(t, f)

			_, err := f.queues.Enqueue(context.Background(), f.world, tt.req)

			requireReason(t, err, tt.reason)
			assert.Equal(t, 0, f.queue("alpha").Len())
			assert.Zero(t, f.sink.count(production.EventStarted))
		})
	}
}

func TestEnqueue_WorkshopSlotsBoundQueue(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	for i := 0; i < 5; i++ {
		f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)
	}

	_, err := f.queues.Enqueue(context.Background(), f.world, services.EnqueueRequest{
		BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "rifle", Amount: 1,
	})

	requireReason(t, err, production.ReasonNoWorkshopSlot)
	free, err := f.queues.FreeSlots(f.world, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 0, free)
}

func TestEnqueue_QueueLengthCheckedFirst(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	settings := services.DefaultSettings()
	settings.Limits.MaxQueueLength = 1
	svc := services.NewQueueService(settings, nil)
	_, err := svc.Enqueue(context.Background(), f.world, services.EnqueueRequest{
		BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "rifle", Amount: 1,
	})
	require.NoError(t, err)
	b.Hire(production.EmployeeWorker, 0)

	_, err = svc.Enqueue(context.Background(), f.world, services.EnqueueRequest{
		BaseID: "alpha", Kind: production.OrderKindManufacture, ItemID: "rifle", Amount: 1,
	})

	requireReason(t, err, production.ReasonQueueFull)
}

func TestEnqueue_AmountCapped(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")

	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 750)

	assert.Equal(t, 750, res.Requested)
	assert.Equal(t, 500, res.Granted)
	assert.Equal(t, 500, res.Order.Amount())
}

func TestEnqueue_PartialGrantReservesOnlyGranted(t *testing.T) {
	// Arrange - five alloys cover two armours
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("alloy", 5)

	// Act
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "armour", 4)

	// Assert
	assert.True(t, res.Partial())
	assert.Equal(t, 2, res.Granted)
	assert.Equal(t, 1, b.Count("alloy"))
	assert.True(t, res.Order.MaterialsReserved())
}

func TestEnqueue_DisassemblyTakesSourceOutOfStorage(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("ufo_scout", 1)

	res := f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 3)

	assert.Equal(t, 1, res.Granted)
	assert.Equal(t, 0, b.Count("ufo_scout"))
}

func TestCancel_RestoresDisassemblySource(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("ufo_scout", 1)
	f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 1)

	e, err := f.queues.Cancel(context.Background(), f.world, "alpha", 0)

	require.NoError(t, err)
	assert.Equal(t, production.EventCancelled, e.Type)
	assert.Equal(t, 1, b.Count("ufo_scout"))
	assert.True(t, f.queue("alpha").IsEmpty())
}

func TestCancel_RefundsMaterialsExactlyOnce(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("alloy", 4)
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "armour", 2)
	require.Equal(t, 0, b.Count("alloy"))

	// Act - shrink by one, then cancel what remains
	change, err := f.queues.DecreaseAmount(context.Background(), f.world, "alpha", 0, 1)
	require.NoError(t, err)
	_, err = f.queues.Cancel(context.Background(), f.world, "alpha", 0)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, change.After)
	assert.Equal(t, 4, b.Count("alloy"))
	assert.False(t, res.Order.MaterialsReserved())
}

func TestCancel_IndexOutOfRange(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")

	_, err := f.queues.Cancel(context.Background(), f.world, "alpha", 3)

	var rangeErr *production.ErrQueueIndexOutOfRange
	assert.ErrorAs(t, err, &rangeErr)
}

func TestCancel_UnknownBase(t *testing.T) {
	f := newFixture(t, 1000)

	_, err := f.queues.Cancel(context.Background(), f.world, "ghost", 0)

	var notFound *production.ErrBaseNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestMoveAndRoll(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	first := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)
	second := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 2)
	third := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 3)

	// Act
	idx, err := f.queues.Move(context.Background(), f.world, "alpha", 2, -10)
	require.NoError(t, err)
	rolled, err := f.queues.RollToBottom(context.Background(), f.world, "alpha")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 0, idx)
	assert.True(t, rolled)
	assert.Equal(t, []*production.Order{first.Order, second.Order, third.Order}, f.queue("alpha").Orders())
}

func TestIncreaseAmount_ReservesAdditionalMaterials(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("alloy", 5)
	f.enqueueItem(t, "alpha", production.OrderKindManufacture, "armour", 1)

	change, err := f.queues.IncreaseAmount(context.Background(), f.world, "alpha", 0, 3)

	require.NoError(t, err)
	assert.Equal(t, 1, change.Before)
	assert.Equal(t, 2, change.After)
	assert.Equal(t, 1, b.Count("alloy"))
}

func TestIncreaseAmount_CapReached(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 500)

	_, err := f.queues.IncreaseAmount(context.Background(), f.world, "alpha", 0, 1)

	requireReason(t, err, production.ReasonAmountCapReached)
}

func TestIncreaseAmount_DisassemblyLimitedByStock(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("ufo_scout", 2)
	f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 1)

	change, err := f.queues.IncreaseAmount(context.Background(), f.world, "alpha", 0, 5)

	require.NoError(t, err)
	assert.Equal(t, 2, change.After)
	assert.Equal(t, 0, b.Count("ufo_scout"))
}

func TestDecreaseAmount_ToZeroRemovesOrder(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("ufo_scout", 2)
	f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 2)

	change, err := f.queues.DecreaseAmount(context.Background(), f.world, "alpha", 0, 10)

	require.NoError(t, err)
	assert.True(t, change.Removed)
	assert.Equal(t, 0, change.After)
	assert.Equal(t, 2, b.Count("ufo_scout"))
	assert.True(t, f.queue("alpha").IsEmpty())
}

func TestEmptyQueue_RefundsEveryOrder(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("alloy", 2)
	b.Add("ufo_scout", 1)
	f.enqueueItem(t, "alpha", production.OrderKindManufacture, "armour", 1)
	f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 1)

	events, err := f.queues.EmptyQueue(context.Background(), f.world, "alpha")

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, production.EventQueueEmptied, events[2].Type)
	assert.Equal(t, 2, b.Count("alloy"))
	assert.Equal(t, 1, b.Count("ufo_scout"))
}

func TestUpdateWorkshopCapacity(t *testing.T) {
	t.Run("tracks workers in use", func(t *testing.T) {
		f := newFixture(t, 1000)
		b := f.addBase(t, 0, "alpha")
		b.Hire(production.EmployeeWorker, 25)

		events, err := f.queues.UpdateWorkshopCapacity(context.Background(), f.world, "alpha")

		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Equal(t, 10, b.Capacity(production.CapacityWorkspace).Current)
	})

	t.Run("lost workspace empties the queue", func(t *testing.T) {
		f := newFixture(t, 1000)
		b := f.addBase(t, 0, "alpha")
		f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)
		b.SetCapacityMax(production.CapacityWorkspace, 0)

		events, err := f.queues.UpdateWorkshopCapacity(context.Background(), f.world, "alpha")

		require.NoError(t, err)
		assert.Len(t, events, 2)
		assert.True(t, f.queue("alpha").IsEmpty())
	})
}

func TestIncreaseAmount_UnreservedOrderWithComponentsRejected(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.Add("alloy", 10)
	armour := production.ItemTarget{Item: mustItem(t, f, "armour")}
	f.queue("alpha").Append(production.ReconstructOrder("", production.OrderKindManufacture, armour, "", "", 1, 0, false))

	// Act
	_, err := f.queues.IncreaseAmount(context.Background(), f.world, "alpha", 0, 2)

	// Assert
	var verr *production.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, production.ReasonNoMaterials, verr.Reason)
	assert.Equal(t, 1, f.queue("alpha").Head().Amount())
	assert.Equal(t, 10, b.Count("alloy"))
}

func TestIncreaseAmount_UnreservedOrderWithoutComponents(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	rifle := production.ItemTarget{Item: mustItem(t, f, "rifle")}
	f.queue("alpha").Append(production.ReconstructOrder("", production.OrderKindManufacture, rifle, "", "", 1, 0, false))

	change, err := f.queues.IncreaseAmount(context.Background(), f.world, "alpha", 0, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, change.After)
}

func TestCancel_UnresolvedOrderRefundsNothing(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	f.queue("alpha").Append(production.ReconstructOrder("", production.OrderKindManufacture, nil, "plasma", "", 2, 0.5, true))

	_, err := f.queues.Cancel(context.Background(), f.world, "alpha", 0)

	require.NoError(t, err)
	assert.Empty(t, b.Stock())
}
