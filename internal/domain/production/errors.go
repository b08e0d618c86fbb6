package production

import "fmt"

// Reason identifies why an enqueue-time request was rejected
type Reason string

const (
	ReasonQueueFull         Reason = "QUEUE_FULL"
	ReasonNoWorkers         Reason = "NO_WORKERS"
	ReasonNoWorkshopSlot    Reason = "NO_WORKSHOP_SLOT"
	ReasonNoCommandCentre   Reason = "NO_COMMAND_CENTRE"
	ReasonNoHangar          Reason = "NO_HANGAR"
	ReasonNoHangarSpace     Reason = "NO_HANGAR_SPACE"
	ReasonNotProducible     Reason = "NOT_PRODUCIBLE"
	ReasonNotResearched     Reason = "NOT_RESEARCHED"
	ReasonNotDisassemblable Reason = "NOT_DISASSEMBLABLE"
	ReasonNotInStorage      Reason = "NOT_IN_STORAGE"
	ReasonNoMaterials       Reason = "NO_MATERIALS"
	ReasonAmountCapReached  Reason = "AMOUNT_CAP_REACHED"
	ReasonUnknownTarget     Reason = "UNKNOWN_TARGET"
	ReasonInvalidOrder      Reason = "INVALID_ORDER"
)

// ValidationError is the result of a rejected enqueue or amount change.
// The queue is left untouched when one is returned.
type ValidationError struct {
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("production request rejected (%s): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("production request rejected (%s)", e.Reason)
}

// InvariantViolationError signals a state the queue operations should have made impossible
type InvariantViolationError struct {
	BaseID    string
	Invariant string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violated in base %s: %s: %s", e.BaseID, e.Invariant, e.Detail)
}

// ErrQueueIndexOutOfRange indicates a queue position that does not exist
type ErrQueueIndexOutOfRange struct {
	BaseID string
	Index  int
	Length int
}

func (e *ErrQueueIndexOutOfRange) Error() string {
	return fmt.Sprintf("queue index %d out of range for base %s (length %d)", e.Index, e.BaseID, e.Length)
}

// ErrBaseNotFound indicates a base id with no founded base behind it
type ErrBaseNotFound struct {
	BaseID string
}

func (e *ErrBaseNotFound) Error() string {
	return fmt.Sprintf("base not found: %s", e.BaseID)
}
