package production

import (
	"fmt"
	"sort"
)

// Catalog is the read-only set of item and aircraft definitions known to a campaign
type Catalog struct {
	items    map[string]*ItemDefinition
	aircraft map[string]*AircraftDefinition
}

// NewCatalog builds a catalog and checks that every bill of materials
// refers to known items
func NewCatalog(items []*ItemDefinition, aircraft []*AircraftDefinition) (*Catalog, error) {
	c := &Catalog{
		items:    make(map[string]*ItemDefinition, len(items)),
		aircraft: make(map[string]*AircraftDefinition, len(aircraft)),
	}

	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item definition without id")
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item definition: %s", item.ID)
		}
		if item.Size < 0 || item.Price < 0 {
			return nil, fmt.Errorf("item %s: size and price must not be negative", item.ID)
		}
		c.items[item.ID] = item
	}

	for _, ac := range aircraft {
		if ac.ID == "" {
			return nil, fmt.Errorf("aircraft definition without id")
		}
		if _, dup := c.aircraft[ac.ID]; dup {
			return nil, fmt.Errorf("duplicate aircraft definition: %s", ac.ID)
		}
		if !ac.Size.IsValid() {
			return nil, fmt.Errorf("aircraft %s: invalid hangar size %q", ac.ID, ac.Size)
		}
		c.aircraft[ac.ID] = ac
	}

	for _, item := range items {
		for _, comp := range item.Components {
			if err := c.checkComponent(item.ID, comp); err != nil {
				return nil, err
			}
		}
		if item.Disassembly != nil {
			for _, comp := range item.Disassembly.Components {
				if err := c.checkComponent(item.ID, comp); err != nil {
					return nil, err
				}
			}
		}
	}

	return c, nil
}

func (c *Catalog) checkComponent(owner string, comp Component) error {
	if comp.Quantity <= 0 {
		return fmt.Errorf("item %s: component %s has non-positive quantity", owner, comp.ItemID)
	}
	if _, ok := c.items[comp.ItemID]; !ok {
		return fmt.Errorf("item %s: unknown component %s", owner, comp.ItemID)
	}
	return nil
}

// Item looks up an item definition
func (c *Catalog) Item(id string) (*ItemDefinition, bool) {
	def, ok := c.items[id]
	return def, ok
}

// Aircraft looks up an aircraft definition
func (c *Catalog) Aircraft(id string) (*AircraftDefinition, bool) {
	def, ok := c.aircraft[id]
	return def, ok
}

// Items returns all item definitions sorted by id
func (c *Catalog) Items() []*ItemDefinition {
	out := make([]*ItemDefinition, 0, len(c.items))
	for _, def := range c.items {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AircraftTemplates returns all aircraft definitions sorted by id
func (c *Catalog) AircraftTemplates() []*AircraftDefinition {
	out := make([]*AircraftDefinition, 0, len(c.aircraft))
	for _, def := range c.aircraft {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve maps persisted references back to a target.
// It returns nil when neither id can be found.
func (c *Catalog) Resolve(itemID, aircraftID string) Target {
	if aircraftID != "" {
		if def, ok := c.aircraft[aircraftID]; ok {
			return AircraftTarget{Aircraft: def}
		}
		return nil
	}
	if itemID != "" {
		if def, ok := c.items[itemID]; ok {
			return ItemTarget{Item: def}
		}
	}
	return nil
}
