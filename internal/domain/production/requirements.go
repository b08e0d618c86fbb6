package production

import "fmt"

// StockReader is the read side of a storage ledger
type StockReader interface {
	Count(itemID string) int
}

// RequirementsMet returns how many of amount units can be started with the
// components currently in storage. Units are checked in order and the count
// stops at the first unit whose cumulative need is not covered, so the result
// is a prefix of the request.
func RequirementsMet(amount int, bom BillOfMaterials, storage StockReader) int {
	if amount <= 0 {
		return 0
	}
	if len(bom) == 0 {
		return amount
	}

	needs := bom.Scaled(1)
	for unit := 1; unit <= amount; unit++ {
		for itemID, perUnit := range needs {
			if storage.Count(itemID) < perUnit*unit {
				return unit - 1
			}
		}
	}
	return amount
}

// Reserve takes the components of amount units out of storage.
// A negative amount returns them (see Refund). Nothing is taken unless every
// component is covered.
func Reserve(storage StorageLedger, amount int, bom BillOfMaterials) error {
	if amount == 0 || len(bom) == 0 {
		return nil
	}
	if amount < 0 {
		Refund(storage, -amount, bom)
		return nil
	}

	scaled := bom.Scaled(amount)
	for itemID, n := range scaled {
		if have := storage.Count(itemID); have < n {
			return fmt.Errorf("cannot reserve %d x %s: only %d in storage", n, itemID, have)
		}
	}
	for _, c := range bom {
		if err := storage.Subtract(c.ItemID, c.Quantity*amount); err != nil {
			return fmt.Errorf("failed to reserve %s: %w", c.ItemID, err)
		}
	}
	return nil
}

// Refund returns the components of amount units to storage
func Refund(storage StorageLedger, amount int, bom BillOfMaterials) {
	if amount <= 0 {
		return
	}
	for _, c := range bom {
		storage.Add(c.ItemID, c.Quantity*amount)
	}
}
