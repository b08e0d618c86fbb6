package production

// Component is one line of a bill of materials
type Component struct {
	ItemID   string
	Quantity int
}

// BillOfMaterials lists the components consumed by one manufactured unit
// or yielded by one disassembled unit
type BillOfMaterials []Component

// Scaled returns the quantity of every component needed for amount units
func (b BillOfMaterials) Scaled(amount int) map[string]int {
	out := make(map[string]int, len(b))
	for _, c := range b {
		out[c.ItemID] += c.Quantity * amount
	}
	return out
}

// Footprint returns the storage space one unit's components occupy.
// Antimatter components are kept in their own store and are not counted.
func (b BillOfMaterials) Footprint(catalog *Catalog) int {
	total := 0
	for _, c := range b {
		def, ok := catalog.Item(c.ItemID)
		if !ok || def.Antimatter {
			continue
		}
		total += def.Size * c.Quantity
	}
	return total
}
