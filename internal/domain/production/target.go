package production

// HangarSize classifies aircraft and UFO hangar slots
type HangarSize string

const (
	HangarSizeNone  HangarSize = ""
	HangarSizeSmall HangarSize = "SMALL"
	HangarSizeLarge HangarSize = "LARGE"
)

// IsValid checks if the hangar size names a real slot class
func (s HangarSize) IsValid() bool {
	return s == HangarSizeSmall || s == HangarSizeLarge
}

// NotProducible marks a definition without a manufacturing recipe
const NotProducible = -1

// DisassemblyRecipe describes what a single unit yields when taken apart
type DisassemblyRecipe struct {
	Components BillOfMaterials
	Hours      int
}

// ItemDefinition is a catalog entry for a storable item
type ItemDefinition struct {
	ID              string
	Name            string
	Price           int
	Size            int
	ProductionHours int
	Researched      bool
	Components      BillOfMaterials
	Disassembly     *DisassemblyRecipe
	// Craft is set for UFO craft items; disassembling one frees a UFO hangar slot
	Craft      HangarSize
	Antimatter bool
}

// IsProducible reports whether the item has a manufacturing recipe
func (d *ItemDefinition) IsProducible() bool {
	return d.ProductionHours >= 0
}

// IsDisassemblable reports whether the item can be taken apart
func (d *ItemDefinition) IsDisassemblable() bool {
	return d.Disassembly != nil && len(d.Disassembly.Components) > 0
}

// Yield returns the components one disassembled unit gives back
func (d *ItemDefinition) Yield() BillOfMaterials {
	if d.Disassembly == nil {
		return nil
	}
	return d.Disassembly.Components
}

// AircraftDefinition is a catalog entry for a producible aircraft template
type AircraftDefinition struct {
	ID              string
	Name            string
	Price           int
	ProductionHours int
	Size            HangarSize
	Researched      bool
}

// Target is what an order produces or takes apart.
// Exactly one variant is ever set: ItemTarget or AircraftTarget.
type Target interface {
	TargetID() string
	DisplayName() string
	isTarget()
}

// ItemTarget points an order at an item definition
type ItemTarget struct {
	Item *ItemDefinition
}

func (t ItemTarget) TargetID() string    { return t.Item.ID }
func (t ItemTarget) DisplayName() string { return t.Item.Name }
func (ItemTarget) isTarget()             {}

// AircraftTarget points an order at an aircraft template
type AircraftTarget struct {
	Aircraft *AircraftDefinition
}

func (t AircraftTarget) TargetID() string    { return t.Aircraft.ID }
func (t AircraftTarget) DisplayName() string { return t.Aircraft.Name }
func (AircraftTarget) isTarget()             {}
