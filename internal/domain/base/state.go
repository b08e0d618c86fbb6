package base

import (
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// State is the plain-data form of a base used by persistence and scenario loading
type State struct {
	Index         int
	ID            string
	Name          string
	CommandCentre bool
	Workshops     int
	UnderAttack   bool
	Employees     map[production.EmployeeType]int
	Capacities    map[production.CapacityKind]production.Capacity
	Storage       map[string]int
	Aircraft      []Aircraft
}

// State captures the base
func (b *Base) State() State {
	s := State{
		Index:         b.index,
		ID:            b.id,
		Name:          b.name,
		CommandCentre: b.commandCentre,
		Workshops:     b.workshops,
		UnderAttack:   b.underAttack,
		Employees:     make(map[production.EmployeeType]int, len(b.employees)),
		Capacities:    make(map[production.CapacityKind]production.Capacity, len(b.capacities)),
		Storage:       b.Stock(),
		Aircraft:      b.Aircraft(),
	}
	for k, v := range b.employees {
		s.Employees[k] = v
	}
	for k, v := range b.capacities {
		s.Capacities[k] = v
	}
	return s
}

// FromState rebuilds a base
func FromState(s State, catalog *production.Catalog) (*Base, error) {
	b, err := NewBase(s.Index, s.ID, s.Name, catalog)
	if err != nil {
		return nil, err
	}
	b.commandCentre = s.CommandCentre
	b.SetWorkshops(s.Workshops)
	b.underAttack = s.UnderAttack
	for k, v := range s.Employees {
		b.Hire(k, v)
	}
	for k, v := range s.Capacities {
		b.capacities[k] = v
	}
	for itemID, n := range s.Storage {
		if n > 0 {
			b.storage[itemID] = n
		}
	}
	b.aircraft = append(b.aircraft, s.Aircraft...)
	return b, nil
}
