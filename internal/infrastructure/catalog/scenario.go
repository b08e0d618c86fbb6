package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// Scenario is the starting state of a new campaign
type Scenario struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Hour    int64        `yaml:"hour"`
	Credits int          `yaml:"credits"`
	Bases   []BaseEntry  `yaml:"bases"`
	Queues  []QueueEntry `yaml:"queues"`
}

// BaseEntry is one founded base. Bases are indexed in file order.
type BaseEntry struct {
	ID            string                   `yaml:"id"`
	Name          string                   `yaml:"name"`
	CommandCentre bool                     `yaml:"command_centre"`
	Workshops     int                      `yaml:"workshops"`
	UnderAttack   bool                     `yaml:"under_attack"`
	Workers       int                      `yaml:"workers"`
	Capacities    map[string]CapacityEntry `yaml:"capacities"`
	Storage       map[string]int           `yaml:"storage"`
	Aircraft      []AircraftInstance       `yaml:"aircraft"`
}

// CapacityEntry is a capacity counter; current is derived when omitted
type CapacityEntry struct {
	Max     int  `yaml:"max"`
	Current *int `yaml:"current"`
}

// AircraftInstance is an aircraft already parked in a base
type AircraftInstance struct {
	ID       string `yaml:"id"`
	Template string `yaml:"template"`
	Name     string `yaml:"name"`
}

// QueueEntry lists pre-queued orders of a base, head first
type QueueEntry struct {
	Base   string       `yaml:"base"`
	Orders []OrderEntry `yaml:"orders"`
}

// OrderEntry is one pre-queued order
type OrderEntry struct {
	Item        string  `yaml:"item"`
	Aircraft    string  `yaml:"aircraft"`
	Amount      int     `yaml:"amount"`
	PercentDone float64 `yaml:"percent_done"`
	Disassemble bool    `yaml:"disassemble"`
}

// ParseScenario decodes a scenario document
func ParseScenario(data []byte) (*Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("scenario: document is empty")
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	return &s, nil
}

// LoadScenario reads a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Snapshot converts the scenario into campaign state. Aircraft sizes come
// from the catalog templates.
func (s *Scenario) Snapshot(cat *production.Catalog) (campaign.Snapshot, error) {
	snap := campaign.Snapshot{
		ID:      s.ID,
		Name:    s.Name,
		Hour:    s.Hour,
		Credits: s.Credits,
	}

	seen := make(map[string]bool, len(s.Bases))
	for i, b := range s.Bases {
		if b.ID == "" {
			return snap, fmt.Errorf("scenario: base %d has no id", i)
		}
		if seen[b.ID] {
			return snap, fmt.Errorf("scenario: duplicate base %s", b.ID)
		}
		seen[b.ID] = true

		st, err := b.state(i, cat)
		if err != nil {
			return snap, err
		}
		snap.Bases = append(snap.Bases, st)
	}

	for _, q := range s.Queues {
		if !seen[q.Base] {
			return snap, fmt.Errorf("scenario: queue for unknown base %s", q.Base)
		}
		rec := production.BaseQueueRecord{BaseID: q.Base}
		for _, o := range q.Orders {
			rec.Orders = append(rec.Orders, production.QueueRecord{
				OrderID:           uuid.New().String(),
				ItemID:            o.Item,
				AircraftID:        o.Aircraft,
				Amount:            o.Amount,
				PercentDone:       o.PercentDone,
				IsManufacture:     !o.Disassemble,
				MaterialsReserved: true,
			})
		}
		snap.Queues = append(snap.Queues, rec)
	}
	return snap, nil
}

func (b BaseEntry) state(index int, cat *production.Catalog) (base.State, error) {
	name := b.Name
	if name == "" {
		name = b.ID
	}
	st := base.State{
		Index:         index,
		ID:            b.ID,
		Name:          name,
		CommandCentre: b.CommandCentre,
		Workshops:     b.Workshops,
		UnderAttack:   b.UnderAttack,
		Employees:     map[production.EmployeeType]int{production.EmployeeWorker: b.Workers},
		Capacities:    make(map[production.CapacityKind]production.Capacity, len(b.Capacities)),
		Storage:       make(map[string]int, len(b.Storage)),
	}

	for kind, c := range b.Capacities {
		k := production.CapacityKind(strings.ToUpper(kind))
		capacity := production.Capacity{Max: c.Max}
		switch {
		case c.Current != nil:
			capacity.Current = *c.Current
		case k == production.CapacityWorkspace:
			capacity.Current = min(b.Workers, c.Max)
		}
		st.Capacities[k] = capacity
	}

	for itemID, n := range b.Storage {
		if _, ok := cat.Item(itemID); !ok {
			return st, fmt.Errorf("scenario: base %s stores unknown item %s", b.ID, itemID)
		}
		st.Storage[itemID] = n
	}

	for _, a := range b.Aircraft {
		tpl, ok := cat.Aircraft(a.Template)
		if !ok {
			return st, fmt.Errorf("scenario: base %s: unknown aircraft template %s", b.ID, a.Template)
		}
		id := a.ID
		if id == "" {
			id = uuid.New().String()
		}
		name := a.Name
		if name == "" {
			name = tpl.Name
		}
		st.Aircraft = append(st.Aircraft, base.Aircraft{ID: id, TemplateID: tpl.ID, Name: name, Size: tpl.Size})
	}
	return st, nil
}
