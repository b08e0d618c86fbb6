package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

func TestRunTick_ItemCompletesAfterTenHours(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 2)

	// Act
	f.tick(9)

	// Assert - not yet
	assert.Equal(t, 1000, f.campaign.Credits().Balance())
	assert.Equal(t, 0, b.Count("rifle"))
	assert.Equal(t, 2, res.Order.Amount())

	// Act
	reports := f.tick(1)

	// Assert
	assert.Equal(t, 900, f.campaign.Credits().Balance())
	assert.Equal(t, 1, b.Count("rifle"))
	assert.Equal(t, 1, res.Order.Amount())
	assert.Equal(t, 0.0, res.Order.PercentDone())
	assert.Equal(t, 1, reports[0].UnitsCompleted)
	assert.Equal(t, 100, reports[0].CreditsSpent)
	assert.Equal(t, res.Order, f.queue("alpha").Head())
}

func TestRunTick_FinishedOrderLeavesQueue(t *testing.T) {
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)

	reports := f.tick(10)

	assert.True(t, f.queue("alpha").IsEmpty())
	last := reports[len(reports)-1]
	types := []production.EventType{}
	for _, e := range last.Events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []production.EventType{production.EventUnitCompleted, production.EventFinished, production.EventQueueEmpty}, types)
	assert.Equal(t, int64(10), last.Events[0].Hour)
}

func TestRunTick_CreditBlockedHeadRollsAndNextProgresses(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	a, err := f.enqueueAircraft(t, "alpha", "interceptor", 1)
	require.NoError(t, err)
	b := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)

	// Act
	reports := f.tick(1)

	// Assert
	q := f.queue("alpha")
	assert.Equal(t, b.Order, q.Head())
	assert.Equal(t, 1, a.Order.Position())
	assert.InDelta(t, 0.1, b.Order.PercentDone(), 1e-12)
	assert.Equal(t, 0.0, a.Order.PercentDone())
	assert.True(t, a.Order.CreditBlocked())
	require.Len(t, reports[0].Events, 1)
	assert.Equal(t, production.EventBlockedCredits, reports[0].Events[0].Type)
}

func TestRunTick_BlockedNoticeIsOneShot(t *testing.T) {
	f := newFixture(t, 100)
	f.addBase(t, 0, "alpha")
	_, err := f.enqueueAircraft(t, "alpha", "interceptor", 1)
	require.NoError(t, err)

	f.tick(5)

	assert.Equal(t, 1, f.sink.count(production.EventBlockedCredits))
}

func TestRunTick_BlockedNoticeRearmsAfterProgress(t *testing.T) {
	// Arrange
	f := newFixture(t, 100)
	f.addBase(t, 0, "alpha")
	res, err := f.enqueueAircraft(t, "alpha", "interceptor", 2)
	require.NoError(t, err)
	f.tick(1)
	require.True(t, res.Order.CreditBlocked())

	// Act - funds arrive, one unit is produced, funds run out again
	require.NoError(t, f.campaign.Credits().Add(context.Background(), 4900, production.CreditMemo{}))
	f.tick(3)

	// Assert
	assert.True(t, res.Order.CreditBlocked())
	assert.Equal(t, 2, f.sink.count(production.EventBlockedCredits))
	assert.Equal(t, 1, res.Order.Amount())
}

func TestRunTick_SharedCreditsFollowBaseOrder(t *testing.T) {
	// Arrange - two bases can each afford one dropship, but not both
	f := newFixture(t, 800)
	first := f.addBase(t, 0, "alpha")
	second := f.addBase(t, 1, "bravo")
	_, err := f.enqueueAircraft(t, "bravo", "dropship", 1)
	require.NoError(t, err)
	_, err = f.enqueueAircraft(t, "alpha", "dropship", 1)
	require.NoError(t, err)

	// Act
	reports := f.tick(1)

	// Assert - alpha has the lower index and is served first
	assert.Len(t, first.Aircraft(), 1)
	assert.Empty(t, second.Aircraft())
	assert.Equal(t, 300, f.campaign.Credits().Balance())
	assert.Equal(t, 1, f.sink.count(production.EventBlockedCredits))
	assert.Equal(t, "bravo", reports[0].Events[len(reports[0].Events)-1].BaseID)
}

func TestRunTick_SpaceBlocked(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	b.SetCapacityMax(production.CapacityItems, 3)
	f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)

	f.tick(2)

	assert.Equal(t, 1, f.sink.count(production.EventBlockedSpace))
	assert.Equal(t, 0.0, f.queue("alpha").Head().PercentDone())
}

func TestRunTick_SkipsBaseWithoutProduction(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)
	b.SetUnderAttack(true)

	reports := f.tick(3)

	assert.Equal(t, 0.0, res.Order.PercentDone())
	assert.Empty(t, reports[2].Events)
	assert.Equal(t, 1, reports[2].BasesSkipped)
}

func TestRunTick_QuadraticWorkforce(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)
	b.Hire(production.EmployeeWorker, 5)

	f.tick(1)

	assert.InDelta(t, 0.025, res.Order.PercentDone(), 1e-12)
}

func TestRunTick_WorkspaceCapsWorkers(t *testing.T) {
	f := newFixture(t, 1000)
	b := f.addBase(t, 0, "alpha")
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)
	b.Hire(production.EmployeeWorker, 40)
	b.SetCapacityMax(production.CapacityWorkspace, 20)

	f.tick(1)

	assert.InDelta(t, 0.4, res.Order.PercentDone(), 1e-12)
}

func TestRunTick_AircraftCompletionStationsAircraft(t *testing.T) {
	f := newFixture(t, 10000)
	b := f.addBase(t, 0, "alpha")
	_, err := f.enqueueAircraft(t, "alpha", "interceptor", 1)
	require.NoError(t, err)

	f.tick(2)

	require.Len(t, b.Aircraft(), 1)
	assert.Equal(t, "interceptor", b.Aircraft()[0].TemplateID)
	assert.Equal(t, 5000, f.campaign.Credits().Balance())
}

func TestRunTick_DisassemblyYieldsComponentsAndFreesUFOSlot(t *testing.T) {
	// Arrange
	f := newFixture(t, 0)
	b := f.addBase(t, 0, "alpha")
	b.Add("ufo_scout", 1)
	b.SetCapacityCurrent(production.CapacityUFOSmall, 1)
	f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 1)

	// Act
	f.tick(1)

	// Assert
	assert.Equal(t, 3, b.Count("alloy"))
	assert.Equal(t, 2, b.Count("elerium"))
	assert.Equal(t, 2, b.Capacity(production.CapacityAntimatter).Current)
	assert.Equal(t, 3, b.Capacity(production.CapacityItems).Current)
	assert.Equal(t, 0, b.Capacity(production.CapacityUFOSmall).Current)
	assert.True(t, f.queue("alpha").IsEmpty())
	assert.Equal(t, 0, f.campaign.Credits().Balance())
}

func TestRunTick_DisassemblyAntimatterYieldStopsAtCapacity(t *testing.T) {
	// Arrange - antimatter store 9/10
	f := newFixture(t, 0)
	b := f.addBase(t, 0, "alpha")
	b.Add("elerium", 9)
	b.Add("ufo_scout", 1)
	b.SetCapacityCurrent(production.CapacityUFOSmall, 1)
	f.enqueueItem(t, "alpha", production.OrderKindDisassembly, "ufo_scout", 1)

	// Act
	f.tick(1)

	// Assert
	assert.Equal(t, 3, b.Count("alloy"))
	assert.Equal(t, 10, b.Count("elerium"))
	assert.Equal(t, production.Capacity{Max: 10, Current: 10}, b.Capacity(production.CapacityAntimatter))
	assert.True(t, f.queue("alpha").IsEmpty())
}

func TestRunTick_UnresolvedOrderRollsWithSingleNotice(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	f.addBase(t, 0, "alpha")
	q := f.queue("alpha")
	q.Append(production.ReconstructOrder("", production.OrderKindManufacture, nil, "plasma", "", 3, 0, true))
	res := f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)

	// Act
	f.tick(2)

	// Assert
	assert.Equal(t, 1, f.sink.count(production.EventUnresolved))
	assert.Equal(t, res.Order, q.Head())
	assert.InDelta(t, 0.2, res.Order.PercentDone(), 1e-12)
}

func TestRunTick_EachOrderEvaluatedOncePerTick(t *testing.T) {
	f := newFixture(t, 0)
	f.addBase(t, 0, "alpha")
	for i := 0; i < 3; i++ {
		_, err := f.enqueueAircraft(t, "alpha", "dropship", 1)
		require.NoError(t, err)
	}
	before := f.queue("alpha").Orders()

	f.tick(1)

	assert.Equal(t, before, f.queue("alpha").Orders())
	assert.Equal(t, 3, f.sink.count(production.EventBlockedCredits))
}

func TestRunTick_StrictInvariantPanics(t *testing.T) {
	f := newFixture(t, 0)
	f.addBase(t, 0, "alpha")
	f.queue("alpha").Append(production.ReconstructOrder("", production.OrderKindManufacture, production.ItemTarget{Item: mustItem(t, f, "rifle")}, "", "", 0, 0, false))

	settings := services.DefaultSettings()
	settings.StrictInvariants = true
	runner := services.NewTickRunner(settings, nil)

	assert.Panics(t, func() { runner.RunTick(context.Background(), f.world, 1) })
}

func TestRunTick_LenientInvariantDropsOrder(t *testing.T) {
	f := newFixture(t, 0)
	f.addBase(t, 0, "alpha")
	f.queue("alpha").Append(production.ReconstructOrder("", production.OrderKindManufacture, production.ItemTarget{Item: mustItem(t, f, "rifle")}, "", "", 0, 0, false))

	reports := f.tick(1)

	assert.True(t, f.queue("alpha").IsEmpty())
	require.Len(t, reports[0].Errors, 1)
	var violation *production.InvariantViolationError
	assert.ErrorAs(t, reports[0].Errors[0], &violation)
}

func mustItem(t *testing.T, f *fixture, id string) *production.ItemDefinition {
	t.Helper()
	def, ok := f.campaign.Catalog().Item(id)
	require.True(t, ok)
	return def
}

func TestRunTick_CostFactorScalesUnitPrice(t *testing.T) {
	// Arrange
	f := newFixture(t, 1000)
	f.settings.CostFactor = 1
	f.settings.CostDivisor = 2
	f.runner = services.NewTickRunner(f.settings, f.sink)
	b := f.addBase(t, 0, "alpha")
	f.enqueueItem(t, "alpha", production.OrderKindManufacture, "rifle", 1)

	// Act
	reports := f.tick(10)

	// Assert
	assert.Equal(t, 950, f.campaign.Credits().Balance())
	assert.Equal(t, 1, b.Count("rifle"))
	assert.Equal(t, 50, reports[len(reports)-1].CreditsSpent)
}
