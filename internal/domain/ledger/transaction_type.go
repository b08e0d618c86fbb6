package ledger

import "fmt"

// TransactionType is the kind of a credit movement
type TransactionType string

// Category groups transaction types in spend statements and metrics
type Category string

const (
	TransactionTypeInitialFunding TransactionType = "INITIAL_FUNDING"
	// Charged once per completed manufacture unit; disassembly is free
	TransactionTypeProductionCost TransactionType = "PRODUCTION_COST"
	TransactionTypeAdjustment     TransactionType = "ADJUSTMENT"
)

const (
	CategoryFunding         Category = "FUNDING"
	CategoryProductionCosts Category = "PRODUCTION_COSTS"
	CategoryAdjustments     Category = "ADJUSTMENTS"
)

var categoryOf = map[TransactionType]Category{
	TransactionTypeInitialFunding: CategoryFunding,
	TransactionTypeProductionCost: CategoryProductionCosts,
	TransactionTypeAdjustment:     CategoryAdjustments,
}

func (t TransactionType) String() string { return string(t) }
func (c Category) String() string        { return string(c) }

// IsValid reports whether t is a known type
func (t TransactionType) IsValid() bool {
	_, ok := categoryOf[t]
	return ok
}

// IsValid reports whether c is the category of some known type
func (c Category) IsValid() bool {
	for _, known := range categoryOf {
		if known == c {
			return true
		}
	}
	return false
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, ok := categoryOf[t]
	if !ok {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a ledger filter or stored column
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}

// ParseCategory parses a stored category column
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
