package helpers

import (
	"fmt"
	"time"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// FixedTime is the wall clock every fixture starts at
var FixedTime = time.Date(2084, time.March, 1, 0, 0, 0, 0, time.UTC)

// NewTestClock returns a mock wall clock at FixedTime
func NewTestClock() *shared.MockClock {
	return shared.NewMockClock(FixedTime)
}

// TestItems is the item catalog shared by integration and BDD tests
func TestItems() []*production.ItemDefinition {
	return []*production.ItemDefinition{
		{ID: "alloy", Name: "Alien Alloy", Price: 10, Size: 1, ProductionHours: production.NotProducible, Researched: true},
		{ID: "elerium", Name: "Elerium", Price: 50, Size: 1, ProductionHours: production.NotProducible, Researched: true, Antimatter: true},
		{ID: "rifle", Name: "Assault Rifle", Price: 100, Size: 4, ProductionHours: 10, Researched: true},
		{ID: "ammo", Name: "Rifle Magazine", Price: 10, Size: 1, ProductionHours: 1, Researched: true},
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
}

// TestAircraft is the aircraft catalog shared by integration and BDD tests
func TestAircraft() []*production.AircraftDefinition {
	return []*production.AircraftDefinition{
		{ID: "interceptor", Name: "Interceptor", Price: 5000, ProductionHours: 2, Size: production.HangarSizeSmall, Researched: true},
		{ID: "dropship", Name: "Dropship", Price: 500, ProductionHours: 1, Size: production.HangarSizeLarge, Researched: true},
	}
}

// NewTestCatalog builds the shared catalog and panics if it is inconsistent
func NewTestCatalog() *production.Catalog {
	c, err := production.NewCatalog(TestItems(), TestAircraft())
	if err != nil {
		panic(fmt.Sprintf("test catalog: %v", err))
	}
	return c
}

// StaffedBase returns the state of a base with a command centre, one workshop,
// ten workers and room for everything in the test catalog
func StaffedBase(index int, id string) base.State {
	return base.State{
		Index:         index,
		ID:            id,
		Name:          id,
		CommandCentre: true,
		Workshops:     1,
		Employees:     map[production.EmployeeType]int{production.EmployeeWorker: 10},
		Capacities: map[production.CapacityKind]production.Capacity{
			production.CapacityWorkspace:     {Max: 10, Current: 10},
			production.CapacityItems:         {Max: 100},
			production.CapacityAntimatter:    {Max: 10},
			production.CapacityAircraftSmall: {Max: 2},
			production.CapacityAircraftLarge: {Max: 1},
			production.CapacityUFOSmall:      {Max: 2},
		},
		Storage: map[string]int{},
	}
}
