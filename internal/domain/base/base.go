package base

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// Aircraft is an aircraft stationed in a base hangar
type Aircraft struct {
	ID         string
	TemplateID string
	Name       string
	Size       production.HangarSize
}

// Base is a founded base: its buildings, staff, storage and hangars.
// It implements production.Site.
type Base struct {
	index int
	id    string
	name  string

	commandCentre bool
	workshops     int
	underAttack   bool

	employees  map[production.EmployeeType]int
	capacities map[production.CapacityKind]production.Capacity
	storage    map[string]int
	aircraft   []Aircraft

	catalog *production.Catalog
}

// NewBase creates an empty base
func NewBase(index int, id, name string, catalog *production.Catalog) (*Base, error) {
	if id == "" {
		return nil, fmt.Errorf("base id cannot be empty")
	}
	if index < 0 {
		return nil, fmt.Errorf("base index cannot be negative")
	}
	if catalog == nil {
		return nil, fmt.Errorf("base %s: catalog is required", id)
	}
	return &Base{
		index:      index,
		id:         id,
		name:       name,
		employees:  make(map[production.EmployeeType]int),
		capacities: make(map[production.CapacityKind]production.Capacity),
		storage:    make(map[string]int),
		catalog:    catalog,
	}, nil
}

func (b *Base) Index() int             { return b.index }
func (b *Base) ID() string             { return b.id }
func (b *Base) Name() string           { return b.name }
func (b *Base) IsUnderAttack() bool    { return b.underAttack }
func (b *Base) WorkshopCount() int     { return b.workshops }
func (b *Base) HasCommandCentre() bool { return b.commandCentre }

// SetCommandCentre builds or removes the command centre
func (b *Base) SetCommandCentre(built bool) { b.commandCentre = built }

// SetWorkshops sets the number of operational workshops
func (b *Base) SetWorkshops(n int) {
	if n < 0 {
		n = 0
	}
	b.workshops = n
}

// SetUnderAttack flags the base as attacked, which halts production
func (b *Base) SetUnderAttack(attacked bool) { b.underAttack = attacked }

// Hire sets the hired headcount of an employee pool
func (b *Base) Hire(kind production.EmployeeType, count int) {
	if count < 0 {
		count = 0
	}
	b.employees[kind] = count
}

// HiredCount returns the hired headcount of an employee pool
func (b *Base) HiredCount(kind production.EmployeeType) int {
	return b.employees[kind]
}

// SetCapacityMax sets the maximum of a capacity counter
func (b *Base) SetCapacityMax(kind production.CapacityKind, max int) {
	c := b.capacities[kind]
	c.Max = max
	b.capacities[kind] = c
}

// SetCapacityCurrent overrides a stored counter. Counters derived from
// storage or the aircraft list ignore the override.
func (b *Base) SetCapacityCurrent(kind production.CapacityKind, current int) {
	c := b.capacities[kind]
	c.Current = current
	b.capacities[kind] = c
}

// Capacity returns a counter. Item and antimatter usage is derived from storage,
// aircraft hangar usage from the stationed aircraft.
func (b *Base) Capacity(kind production.CapacityKind) production.Capacity {
	c := b.capacities[kind]
	switch kind {
	case production.CapacityItems:
		c.Current = b.storedSize(false)
	case production.CapacityAntimatter:
		c.Current = b.storedSize(true)
	case production.CapacityAircraftSmall:
		c.Current = b.countAircraft(production.HangarSizeSmall)
	case production.CapacityAircraftLarge:
		c.Current = b.countAircraft(production.HangarSizeLarge)
	}
	return c
}

func (b *Base) storedSize(antimatter bool) int {
	total := 0
	for itemID, n := range b.storage {
		def, ok := b.catalog.Item(itemID)
		if !ok || def.Antimatter != antimatter {
			continue
		}
		if antimatter {
			total += n
		} else {
			total += n * def.Size
		}
	}
	return total
}

func (b *Base) countAircraft(size production.HangarSize) int {
	n := 0
	for _, ac := range b.aircraft {
		if ac.Size == size {
			n++
		}
	}
	return n
}

// ProductionAllowed reports whether workshops can run this hour
func (b *Base) ProductionAllowed() bool {
	return !b.underAttack && b.workshops > 0 && b.employees[production.EmployeeWorker] > 0
}

// HasHangar reports whether the base has hangar capacity for aircraft of size
func (b *Base) HasHangar(size production.HangarSize) bool {
	return b.capacities[production.AircraftCapacityKind(size)].Max > 0
}

// Count returns the stored amount of an item
func (b *Base) Count(itemID string) int {
	return b.storage[itemID]
}

// Add puts n units of an item into storage. Antimatter is clamped to the free
// antimatter capacity; units beyond it are lost.
func (b *Base) Add(itemID string, n int) {
	if def, ok := b.catalog.Item(itemID); ok && def.Antimatter {
		free := b.capacities[production.CapacityAntimatter].Max - b.storedSize(true)
		n = min(n, free)
	}
	if n <= 0 {
		return
	}
	b.storage[itemID] += n
}

// Subtract takes n units of an item out of storage
func (b *Base) Subtract(itemID string, n int) error {
	if n <= 0 {
		return nil
	}
	have := b.storage[itemID]
	if have < n {
		return &ErrInsufficientStock{BaseID: b.id, ItemID: itemID, Requested: n, Available: have}
	}
	if have == n {
		delete(b.storage, itemID)
		return nil
	}
	b.storage[itemID] = have - n
	return nil
}

// Stock returns a copy of the storage, keyed by item id
func (b *Base) Stock() map[string]int {
	out := make(map[string]int, len(b.storage))
	for k, v := range b.storage {
		out[k] = v
	}
	return out
}

// StockIDs returns the ids of stored items, sorted
func (b *Base) StockIDs() []string {
	ids := make([]string, 0, len(b.storage))
	for id := range b.storage {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Aircraft returns the stationed aircraft
func (b *Base) Aircraft() []Aircraft {
	out := make([]Aircraft, len(b.aircraft))
	copy(out, b.aircraft)
	return out
}

// AddAircraft stations a newly built aircraft and returns its id
func (b *Base) AddAircraft(def *production.AircraftDefinition) (string, error) {
	kind := production.AircraftCapacityKind(def.Size)
	if b.Capacity(kind).Free() <= 0 {
		return "", &ErrNoHangarSpace{BaseID: b.id, Size: def.Size}
	}
	ac := Aircraft{
		ID:         uuid.New().String(),
		TemplateID: def.ID,
		Name:       def.Name,
		Size:       def.Size,
	}
	b.aircraft = append(b.aircraft, ac)
	return ac.ID, nil
}

// ReleaseUFOSlot frees one UFO hangar slot of size
func (b *Base) ReleaseUFOSlot(size production.HangarSize) error {
	kind := production.UFOCapacityKind(size)
	c := b.capacities[kind]
	if c.Current <= 0 {
		return &ErrNoUFOStored{BaseID: b.id, Size: size}
	}
	c.Current--
	b.capacities[kind] = c
	return nil
}

var _ production.Site = (*Base)(nil)
