package production

import "context"

// CapacityKind names a per-base capacity counter
type CapacityKind string

const (
	CapacityItems         CapacityKind = "ITEMS"
	CapacityWorkspace     CapacityKind = "WORKSPACE"
	CapacityAircraftSmall CapacityKind = "AIRCRAFT_SMALL"
	CapacityAircraftLarge CapacityKind = "AIRCRAFT_LARGE"
	CapacityUFOSmall      CapacityKind = "UFO_SMALL"
	CapacityUFOLarge      CapacityKind = "UFO_LARGE"
	CapacityAntimatter    CapacityKind = "ANTIMATTER"
)

// AircraftCapacityKind returns the hangar counter an aircraft of size occupies
func AircraftCapacityKind(size HangarSize) CapacityKind {
	if size == HangarSizeLarge {
		return CapacityAircraftLarge
	}
	return CapacityAircraftSmall
}

// UFOCapacityKind returns the UFO hangar counter a craft of size occupies
func UFOCapacityKind(size HangarSize) CapacityKind {
	if size == HangarSizeLarge {
		return CapacityUFOLarge
	}
	return CapacityUFOSmall
}

// Capacity is a max/current pair
type Capacity struct {
	Max     int
	Current int
}

// Free returns the remaining room
func (c Capacity) Free() int {
	return c.Max - c.Current
}

// EmployeeType names a hiring pool
type EmployeeType string

// EmployeeWorker is the pool that staffs workshops
const EmployeeWorker EmployeeType = "WORKER"

// BaseCapacityProvider exposes a base's capacities and building status
type BaseCapacityProvider interface {
	Capacity(kind CapacityKind) Capacity
	SetCapacityCurrent(kind CapacityKind, current int)
	ProductionAllowed() bool
	WorkshopCount() int
	HasCommandCentre() bool
	HasHangar(size HangarSize) bool
}

// WorkforceProvider reports hired employees
type WorkforceProvider interface {
	HiredCount(kind EmployeeType) int
}

// StorageLedger holds per-item counts of a base
type StorageLedger interface {
	Count(itemID string) int
	Add(itemID string, n int)
	Subtract(itemID string, n int) error
}

// FleetManager instantiates produced aircraft and frees UFO hangar slots
type FleetManager interface {
	AddAircraft(def *AircraftDefinition) (string, error)
	ReleaseUFOSlot(size HangarSize) error
}

// Site is the view of one base the production core works against
type Site interface {
	ID() string
	Name() string
	BaseCapacityProvider
	WorkforceProvider
	StorageLedger
	FleetManager
}

// BaseDirectory lists founded bases. BaseIDs must return a stable order;
// the tick runner spends shared credits in that order.
type BaseDirectory interface {
	BaseIDs() []string
	Site(baseID string) (Site, error)
}

// CreditLedger is the campaign-wide credit pool shared by every base
type CreditLedger interface {
	Balance() int
	Add(ctx context.Context, amount int, memo CreditMemo) error
	Subtract(ctx context.Context, amount int, memo CreditMemo) error
}

// CreditMemo describes a credit movement for the ledger journal
type CreditMemo struct {
	BaseID      string
	OrderID     string
	TargetID    string
	Description string
}

// NotificationSink receives production events as they happen
type NotificationSink interface {
	Notify(ctx context.Context, event Event)
}
