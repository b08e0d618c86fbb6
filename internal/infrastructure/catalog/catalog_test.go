package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/catalog"
)

const catalogYAML = `
items:
  - id: alloy
    name: Alien Alloy
    price: 10
    size: 1
    researched: true
  - id: elerium
    name: Elerium
    price: 50
    size: 1
    researched: true
    antimatter: true
  - id: armour
    name: Power Armour
    price: 200
    size: 2
    production_hours: 12
    researched: true
    components:
      - item: alloy
        quantity: 2
  - id: ufo_scout
    name: Scout Wreck
    size: 5
    researched: true
    craft: small
    disassembly:
      hours: 4
      components:
        - item: alloy
          quantity: 3
aircraft:
  - id: interceptor
    name: Interceptor
    price: 5000
    production_hours: 20
    size: small
    researched: true
`

const scenarioYAML = `
id: test
name: Test Campaign
hour: 48
credits: 2500
bases:
  - id: alpha
    command_centre: true
    workshops: 1
    workers: 30
    capacities:
      workspace: {max: 20}
      items: {max: 100}
      ufo_small: {max: 2, current: 1}
    storage:
      alloy: 4
    aircraft:
      - template: interceptor
  - id: bravo
    name: Bravo Outpost
    workshops: 0
queues:
  - base: alpha
    orders:
      - item: armour
        amount: 2
      - item: ufo_scout
        amount: 1
        disassemble: true
`

func TestParseCatalog(t *testing.T) {
	cat, err := catalog.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	alloy, ok := cat.Item("alloy")
	require.True(t, ok)
	assert.False(t, alloy.IsProducible())

	armour, ok := cat.Item("armour")
	require.True(t, ok)
	assert.Equal(t, 12, armour.ProductionHours)
	assert.Equal(t, production.BillOfMaterials{{ItemID: "alloy", Quantity: 2}}, armour.Components)

	scout, ok := cat.Item("ufo_scout")
	require.True(t, ok)
	assert.True(t, scout.IsDisassemblable())
	assert.Equal(t, production.HangarSizeSmall, scout.Craft)

	ic, ok := cat.Aircraft("interceptor")
	require.True(t, ok)
	assert.Equal(t, production.HangarSizeSmall, ic.Size)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "  \n"},
		{"bad size", "aircraft:\n  - id: x\n    size: huge\n"},
		{"unknown component", "items:\n  - id: a\n    components:\n      - item: nope\n        quantity: 1\n"},
		{"duplicate item", "items:\n  - id: a\n  - id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.ParseCatalog([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := catalog.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScenarioSnapshot(t *testing.T) {
	// Arrange
	cat, err := catalog.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))

	// Act
	sc, err := catalog.LoadScenario(path)
	require.NoError(t, err)
	snap, err := sc.Snapshot(cat)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "test", snap.ID)
	assert.Equal(t, int64(48), snap.Hour)
	assert.Equal(t, 2500, snap.Credits)
	require.Len(t, snap.Bases, 2)

	alpha := snap.Bases[0]
	assert.Equal(t, 0, alpha.Index)
	assert.Equal(t, "alpha", alpha.Name)
	assert.Equal(t, 30, alpha.Employees[production.EmployeeWorker])
	assert.Equal(t, production.Capacity{Max: 20, Current: 20}, alpha.Capacities[production.CapacityWorkspace])
	assert.Equal(t, production.Capacity{Max: 2, Current: 1}, alpha.Capacities[production.CapacityUFOSmall])
	assert.Equal(t, 4, alpha.Storage["alloy"])
	require.Len(t, alpha.Aircraft, 1)
	assert.Equal(t, "Interceptor", alpha.Aircraft[0].Name)
	assert.NotEmpty(t, alpha.Aircraft[0].ID)

	assert.Equal(t, 1, snap.Bases[1].Index)
	assert.Equal(t, "Bravo Outpost", snap.Bases[1].Name)

	require.Len(t, snap.Queues, 1)
	orders := snap.Queues[0].Orders
	require.Len(t, orders, 2)
	assert.True(t, orders[0].IsManufacture)
	assert.False(t, orders[1].IsManufacture)

	// and the campaign restores cleanly
	c, unresolved, err := campaign.Restore(snap, cat, nil)
	require.NoError(t, err)
	assert.Empty(t, unresolved)
	assert.Equal(t, 2, c.Queues().Queue("alpha").Len())
}

func TestScenarioSnapshot_Errors(t *testing.T) {
	cat, err := catalog.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown template", "bases:\n  - id: a\n    aircraft:\n      - template: zeppelin\n"},
		{"unknown stored item", "bases:\n  - id: a\n    storage:\n      gold: 1\n"},
		{"duplicate base", "bases:\n  - id: a\n  - id: a\n"},
		{"queue for unknown base", "bases:\n  - id: a\nqueues:\n  - base: b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := catalog.ParseScenario([]byte(tt.doc))
			require.NoError(t, err)
			_, err = sc.Snapshot(cat)
			assert.Error(t, err)
		})
	}
}
