package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// File is the on-disk layout of the item and aircraft catalog
type File struct {
	Items    []ItemEntry     `yaml:"items"`
	Aircraft []AircraftEntry `yaml:"aircraft"`
}

// ItemEntry describes one storable item.
// Items without production_hours cannot be manufactured.
type ItemEntry struct {
	ID              string            `yaml:"id"`
	Name            string            `yaml:"name"`
	Price           int               `yaml:"price"`
	Size            int               `yaml:"size"`
	ProductionHours *int              `yaml:"production_hours"`
	Researched      bool              `yaml:"researched"`
	Antimatter      bool              `yaml:"antimatter"`
	Craft           string            `yaml:"craft"`
	Components      []ComponentEntry  `yaml:"components"`
	Disassembly     *DisassemblyEntry `yaml:"disassembly"`
}

// ComponentEntry is one bill-of-materials line
type ComponentEntry struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// DisassemblyEntry is the recipe for taking an item apart
type DisassemblyEntry struct {
	Hours      int              `yaml:"hours"`
	Components []ComponentEntry `yaml:"components"`
}

// AircraftEntry describes a producible aircraft template
type AircraftEntry struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Price           int    `yaml:"price"`
	ProductionHours int    `yaml:"production_hours"`
	Size            string `yaml:"size"`
	Researched      bool   `yaml:"researched"`
}

// ParseCatalog decodes and validates a catalog document
func ParseCatalog(data []byte) (*production.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog: document is empty")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return f.Build()
}

// LoadCatalog reads a catalog file
func LoadCatalog(path string) (*production.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Build converts the document into a domain catalog
func (f File) Build() (*production.Catalog, error) {
	items := make([]*production.ItemDefinition, 0, len(f.Items))
	for _, e := range f.Items {
		def, err := e.definition()
		if err != nil {
			return nil, err
		}
		items = append(items, def)
	}

	aircraft := make([]*production.AircraftDefinition, 0, len(f.Aircraft))
	for _, e := range f.Aircraft {
		size := production.HangarSize(strings.ToUpper(e.Size))
		if !size.IsValid() {
			return nil, fmt.Errorf("catalog: aircraft %s: invalid size %q", e.ID, e.Size)
		}
		aircraft = append(aircraft, &production.AircraftDefinition{
			ID:              e.ID,
			Name:            e.Name,
			Price:           e.Price,
			ProductionHours: e.ProductionHours,
			Size:            size,
			Researched:      e.Researched,
		})
	}

	c, err := production.NewCatalog(items, aircraft)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

func (e ItemEntry) definition() (*production.ItemDefinition, error) {
	def := &production.ItemDefinition{
		ID:              e.ID,
		Name:            e.Name,
		Price:           e.Price,
		Size:            e.Size,
		ProductionHours: production.NotProducible,
		Researched:      e.Researched,
		Antimatter:      e.Antimatter,
		Components:      bom(e.Components),
	}
	if e.ProductionHours != nil {
		def.ProductionHours = *e.ProductionHours
	}
	if e.Craft != "" {
		def.Craft = production.HangarSize(strings.ToUpper(e.Craft))
		if !def.Craft.IsValid() {
			return nil, fmt.Errorf("catalog: item %s: invalid craft size %q", e.ID, e.Craft)
		}
	}
	if e.Disassembly != nil {
		def.Disassembly = &production.DisassemblyRecipe{
			Hours:      e.Disassembly.Hours,
			Components: bom(e.Disassembly.Components),
		}
	}
	return def, nil
}

func bom(entries []ComponentEntry) production.BillOfMaterials {
	if len(entries) == 0 {
		return nil
	}
	out := make(production.BillOfMaterials, 0, len(entries))
	for _, c := range entries {
		out = append(out, production.Component{ItemID: c.Item, Quantity: c.Quantity})
	}
	return out
}
