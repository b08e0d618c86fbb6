package production

import (
	"fmt"

	"github.com/google/uuid"
)

// OrderKind distinguishes manufacture from disassembly
type OrderKind string

const (
	// OrderKindManufacture builds units of the target from components
	OrderKindManufacture OrderKind = "MANUFACTURE"

	// OrderKindDisassembly takes units of the target item apart into components
	OrderKindDisassembly OrderKind = "DISASSEMBLY"
)

// IsValid checks if the kind is known
func (k OrderKind) IsValid() bool {
	return k == OrderKindManufacture || k == OrderKindDisassembly
}

// completionEpsilon absorbs float drift when summing per-tick fractions,
// e.g. ten additions of 0.1 landing at 0.9999999999999999.
const completionEpsilon = 1e-9

// Order is a single line of a base's production queue.
//
// Lifecycle: created by enqueue (possibly with a reduced amount), advanced by
// the tick runner while at the head of its queue, and destroyed either by
// cancellation (which refunds reservations) or when its last unit completes.
type Order struct {
	id     string
	kind   OrderKind
	target Target
	amount int

	percentDone       float64
	materialsReserved bool
	creditBlocked     bool
	spaceBlocked      bool
	unresolvedNoticed bool
	position          int

	// raw references kept for orders whose target did not resolve on load
	itemRef     string
	aircraftRef string
}

// NewOrder creates an order for amount units of target
func NewOrder(kind OrderKind, target Target, amount int) (*Order, error) {
	if !kind.IsValid() {
		return nil, &ValidationError{Reason: ReasonInvalidOrder, Detail: "unknown order kind " + string(kind)}
	}
	if target == nil {
		return nil, &ValidationError{Reason: ReasonInvalidOrder, Detail: "order has no target"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Reason: ReasonInvalidOrder, Detail: "amount must be positive"}
	}
	if _, ok := target.(AircraftTarget); ok && kind == OrderKindDisassembly {
		return nil, &ValidationError{Reason: ReasonNotDisassemblable, Detail: "aircraft cannot be disassembled"}
	}

	o := &Order{
		id:     uuid.New().String(),
		kind:   kind,
		target: target,
		amount: amount,
	}
	o.captureRefs()
	return o, nil
}

// ReconstructOrder rebuilds an order from a persisted record.
// A nil target is allowed; the raw references are kept so the order can be saved again.
func ReconstructOrder(
	id string,
	kind OrderKind,
	target Target,
	itemRef string,
	aircraftRef string,
	amount int,
	percentDone float64,
	materialsReserved bool,
) *Order {
	if id == "" {
		id = uuid.New().String()
	}
	o := &Order{
		id:                id,
		kind:              kind,
		target:            target,
		amount:            amount,
		percentDone:       percentDone,
		materialsReserved: materialsReserved,
		itemRef:           itemRef,
		aircraftRef:       aircraftRef,
	}
	o.captureRefs()
	return o
}

func (o *Order) captureRefs() {
	switch t := o.target.(type) {
	case ItemTarget:
		o.itemRef, o.aircraftRef = t.Item.ID, ""
	case AircraftTarget:
		o.itemRef, o.aircraftRef = "", t.Aircraft.ID
	}
}

// Getters

func (o *Order) ID() string              { return o.id }
func (o *Order) Kind() OrderKind         { return o.kind }
func (o *Order) Target() Target          { return o.target }
func (o *Order) Amount() int             { return o.amount }
func (o *Order) PercentDone() float64    { return o.percentDone }
func (o *Order) MaterialsReserved() bool { return o.materialsReserved }
func (o *Order) CreditBlocked() bool     { return o.creditBlocked }
func (o *Order) SpaceBlocked() bool      { return o.spaceBlocked }
func (o *Order) UnresolvedNoticed() bool { return o.unresolvedNoticed }
func (o *Order) Position() int           { return o.position }
func (o *Order) ItemRef() string         { return o.itemRef }
func (o *Order) AircraftRef() string     { return o.aircraftRef }

// IsResolved reports whether the order still points at a known definition
func (o *Order) IsResolved() bool {
	return o.target != nil
}

// IsDisassembly reports whether the order takes its target apart
func (o *Order) IsDisassembly() bool {
	return o.kind == OrderKindDisassembly
}

// Item returns the item definition for item orders
func (o *Order) Item() (*ItemDefinition, bool) {
	t, ok := o.target.(ItemTarget)
	if !ok {
		return nil, false
	}
	return t.Item, true
}

// Aircraft returns the aircraft definition for aircraft orders
func (o *Order) Aircraft() (*AircraftDefinition, bool) {
	t, ok := o.target.(AircraftTarget)
	if !ok {
		return nil, false
	}
	return t.Aircraft, true
}

// TargetRef returns the id of the target, resolved or not
func (o *Order) TargetRef() string {
	if o.aircraftRef != "" {
		return o.aircraftRef
	}
	return o.itemRef
}

// Hours returns the duration of a single unit of this order
func (o *Order) Hours() int {
	switch t := o.target.(type) {
	case ItemTarget:
		if o.kind == OrderKindDisassembly {
			if t.Item.Disassembly == nil {
				return 0
			}
			return t.Item.Disassembly.Hours
		}
		return t.Item.ProductionHours
	case AircraftTarget:
		return t.Aircraft.ProductionHours
	}
	return 0
}

// Advance adds fraction to the progress of the current unit and reports
// whether that unit is now complete
func (o *Order) Advance(fraction float64) bool {
	o.percentDone += fraction
	return o.percentDone >= 1.0-completionEpsilon
}

// CompleteUnit resets progress and decrements the remaining amount
func (o *Order) CompleteUnit() {
	o.percentDone = 0
	if o.amount > 0 {
		o.amount--
	}
}

// IsFinished reports whether every unit has been produced
func (o *Order) IsFinished() bool {
	return o.amount == 0
}

// ChangeAmount adjusts the remaining amount by delta. The result may not go below zero.
func (o *Order) ChangeAmount(delta int) error {
	if o.amount+delta < 0 {
		return &ValidationError{Reason: ReasonInvalidOrder, Detail: fmt.Sprintf("amount %d cannot drop by %d", o.amount, -delta)}
	}
	o.amount += delta
	return nil
}

// MarkReserved records that the bill of materials was taken from storage
func (o *Order) MarkReserved() {
	o.materialsReserved = true
}

// ReleaseReservation clears the reservation flag and reports whether it was set.
// Callers refund only when it returns true, so a refund can never fire twice.
func (o *Order) ReleaseReservation() bool {
	if !o.materialsReserved {
		return false
	}
	o.materialsReserved = false
	return true
}

// FlagCreditBlocked sets the one-shot credit notice flag and reports whether it was newly set
func (o *Order) FlagCreditBlocked() bool {
	if o.creditBlocked {
		return false
	}
	o.creditBlocked = true
	return true
}

// FlagSpaceBlocked sets the one-shot space notice flag and reports whether it was newly set
func (o *Order) FlagSpaceBlocked() bool {
	if o.spaceBlocked {
		return false
	}
	o.spaceBlocked = true
	return true
}

// FlagUnresolved sets the one-shot unresolved notice flag and reports whether it was newly set
func (o *Order) FlagUnresolved() bool {
	if o.unresolvedNoticed {
		return false
	}
	o.unresolvedNoticed = true
	return true
}

// RestoreNoticeFlags puts back the one-shot notice flags of a persisted order
func (o *Order) RestoreNoticeFlags(creditBlocked, spaceBlocked, unresolvedNoticed bool) {
	o.creditBlocked = creditBlocked
	o.spaceBlocked = spaceBlocked
	o.unresolvedNoticed = unresolvedNoticed
}

// ClearBlockedFlags re-arms the one-shot notices
func (o *Order) ClearBlockedFlags() {
	o.creditBlocked = false
	o.spaceBlocked = false
}
