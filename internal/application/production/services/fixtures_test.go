package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

type recordingSink struct {
	events []production.Event
}

func (s *recordingSink) Notify(ctx context.Context, e production.Event) {
	s.events = append(s.events, e)
}

func (s *recordingSink) count(t production.EventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func testCatalog(t *testing.T) *production.Catalog {
	t.Helper()
	items := []*production.ItemDefinition{
		{ID: "alloy", Name: "Alien Alloy", Price: 10, Size: 1, ProductionHours: production.NotProducible, Researched: true},
		{ID: "elerium", Name: "Elerium", Price: 50, Size: 1, ProductionHours: production.NotProducible, Researched: true, Antimatter: true},
		{ID: "rifle", Name: "Assault Rifle", Price: 100, Size: 4, ProductionHours: 10, Researched: true},
		{ID: "armour", Name: "Power Armour", Price: 200, Size: 2, ProductionHours: 1, Researched: true,
			Components: production.BillOfMaterials{{ItemID: "alloy", Quantity: 2}}},
		{ID: "laser", Name: "Laser Pistol", Price: 300, Size: 1, ProductionHours: 5, Researched: false},
		{ID: "ufo_scout", Name: "Scout Wreck", Size: 5, ProductionHours: production.NotProducible, Researched: true,
			Craft: production.HangarSizeSmall,
			Disassembly: &production.DisassemblyRecipe{Hours: 1, Components: production.BillOfMaterials{
				{ItemID: "alloy", Quantity: 3},
				{ItemID: "elerium", Quantity: 2},
			}}},
	}
	aircraft := []*production.AircraftDefinition{
		{ID: "interceptor", Name: "Interceptor", Price: 5000, ProductionHours: 2, Size: production.HangarSizeSmall, Researched: true},
		{ID: "dropship", Name: "Dropship", Price: 500, ProductionHours: 1, Size: production.HangarSizeLarge, Researched: true},
	}
	c, err := production.NewCatalog(items, aircraft)
	require.NoError(t, err)
	return c
}

type fixture struct {
	campaign *campaign.Campaign
	world    services.World
	sink     *recordingSink
	queues   *services.QueueService
	runner   *services.TickRunner
	settings services.Settings
}

func newFixture(t *testing.T, credits int) *fixture {
	t.Helper()
	c, err := campaign.New("campaign-1", "Test", testCatalog(t), 0, credits, nil)
	require.NoError(t, err)

	settings := services.DefaultSettings()
	sink := &recordingSink{}
	return &fixture{
		campaign: c,
		world:    services.WorldOf(c),
		sink:     sink,
		queues:   services.NewQueueService(settings, sink),
		runner:   services.NewTickRunner(settings, sink),
		settings: settings,
	}
}

// addBase founds a fully staffed base with one workshop and ten workers
func (f *fixture) addBase(t *testing.T, index int, id string) *base.Base {
	t.Helper()
	b, err := base.NewBase(index, id, id, f.campaign.Catalog())
	require.NoError(t, err)
	b.SetCommandCentre(true)
	b.SetWorkshops(1)
	b.Hire(production.EmployeeWorker, 10)
	b.SetCapacityMax(production.CapacityWorkspace, 10)
	b.SetCapacityMax(production.CapacityItems, 100)
	b.SetCapacityMax(production.CapacityAntimatter, 10)
	b.SetCapacityMax(production.CapacityAircraftSmall, 2)
	b.SetCapacityMax(production.CapacityAircraftLarge, 1)
	b.SetCapacityMax(production.CapacityUFOSmall, 2)
	require.NoError(t, f.campaign.FoundBase(b))
	return b
}

func (f *fixture) enqueueItem(t *testing.T, baseID string, kind production.OrderKind, itemID string, amount int) *services.EnqueueResult {
	t.Helper()
	res, err := f.queues.Enqueue(context.Background(), f.world, services.EnqueueRequest{
		BaseID: baseID,
		Kind:   kind,
		ItemID: itemID,
		Amount: amount,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) enqueueAircraft(t *testing.T, baseID string, aircraftID string, amount int) (*services.EnqueueResult, error) {
	t.Helper()
	return f.queues.Enqueue(context.Background(), f.world, services.EnqueueRequest{
		BaseID:     baseID,
		Kind:       production.OrderKindManufacture,
		AircraftID: aircraftID,
		Amount:     amount,
	})
}

func (f *fixture) tick(n int) []*services.TickReport {
	var reports []*services.TickReport
	for i := 0; i < n; i++ {
		hour := f.campaign.Clock().Advance()
		reports = append(reports, f.runner.RunTick(context.Background(), f.world, hour))
	}
	return reports
}

func (f *fixture) queue(baseID string) *production.Queue {
	return f.campaign.Queues().Queue(baseID)
}
