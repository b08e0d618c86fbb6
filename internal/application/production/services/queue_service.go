package services

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// EnqueueRequest asks for a new order at the tail of a base's queue.
// Exactly one of ItemID and AircraftID is set.
type EnqueueRequest struct {
	BaseID     string
	Kind       production.OrderKind
	ItemID     string
	AircraftID string
	Amount     int
}

// EnqueueResult reports the created order. Granted may be lower than
// Requested when storage only covers part of the request.
type EnqueueResult struct {
	Order     *production.Order
	Index     int
	Requested int
	Granted   int
	Events    []production.Event
}

// Partial reports whether the order was created with a reduced amount
func (r *EnqueueResult) Partial() bool {
	return r.Granted < r.Requested
}

// AmountChange reports an IncreaseAmount or DecreaseAmount outcome
type AmountChange struct {
	Order   *production.Order
	Before  int
	After   int
	Removed bool
	Events  []production.Event
}

// QueueService implements the player-facing queue operations
type QueueService struct {
	settings Settings
	sink     production.NotificationSink
}

// NewQueueService creates a queue service. sink may be nil.
func NewQueueService(settings Settings, sink production.NotificationSink) *QueueService {
	return &QueueService{settings: settings, sink: sink}
}

// Settings returns the rules the service runs with
func (s *QueueService) Settings() Settings {
	return s.settings
}

// Enqueue validates a request against the base and appends a new order.
// Materials for manufacture are reserved, and disassembly source items are
// taken out of storage, before the order becomes visible.
func (s *QueueService) Enqueue(ctx context.Context, w World, req EnqueueRequest) (*EnqueueResult, error) {
	site, err := w.Bases.Site(req.BaseID)
	if err != nil {
		return nil, err
	}
	q := w.Queues.Queue(req.BaseID)

	target, err := s.resolveTarget(w.Catalog, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkQueueRoom(site, q); err != nil {
		return nil, err
	}
	if ac, ok := target.(production.AircraftTarget); ok {
		if err := checkHangar(site, ac.Aircraft); err != nil {
			return nil, err
		}
	}

	requested := req.Amount
	if requested <= 0 {
		return nil, &production.ValidationError{Reason: production.ReasonInvalidOrder, Detail: "amount must be positive"}
	}
	amount := requested
	if max := s.settings.Limits.MaxOrderAmount; max > 0 && amount > max {
		amount = max
	}

	granted, err := s.grantable(site, req.Kind, target, amount)
	if err != nil {
		return nil, err
	}

	order, err := production.NewOrder(req.Kind, target, granted)
	if err != nil {
		return nil, err
	}

	switch {
	case order.IsDisassembly():
		if err := site.Subtract(target.TargetID(), granted); err != nil {
			return nil, fmt.Errorf("failed to take %s out of storage: %w", target.TargetID(), err)
		}
	default:
		if item, ok := order.Item(); ok {
			if err := production.Reserve(site, granted, item.Components); err != nil {
				return nil, fmt.Errorf("failed to reserve materials: %w", err)
			}
			order.MarkReserved()
		}
	}

	q.Append(order)
	if err := s.checkInvariants(ctx, site, q); err != nil {
		if _, rmErr := q.RemoveAt(order.Position()); rmErr == nil {
			s.release(ctx, site, order, order.Amount())
		}
		return nil, err
	}

	started := production.OrderEvent(production.EventStarted, site, order)
	s.notify(ctx, started)

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "order queued", map[string]interface{}{
		"base":      site.ID(),
		"order_id":  order.ID(),
		"target":    target.TargetID(),
		"kind":      string(order.Kind()),
		"requested": requested,
		"granted":   granted,
	})

	return &EnqueueResult{
		Order:     order,
		Index:     order.Position(),
		Requested: requested,
		Granted:   granted,
		Events:    []production.Event{started},
	}, nil
}

func (s *QueueService) resolveTarget(catalog *production.Catalog, req EnqueueRequest) (production.Target, error) {
	if (req.ItemID == "") == (req.AircraftID == "") {
		return nil, &production.ValidationError{Reason: production.ReasonInvalidOrder, Detail: "exactly one of item or aircraft must be given"}
	}
	if req.AircraftID != "" {
		def, ok := catalog.Aircraft(req.AircraftID)
		if !ok {
			return nil, &production.ValidationError{Reason: production.ReasonUnknownTarget, Detail: req.AircraftID}
		}
		return production.AircraftTarget{Aircraft: def}, nil
	}
	def, ok := catalog.Item(req.ItemID)
	if !ok {
		return nil, &production.ValidationError{Reason: production.ReasonUnknownTarget, Detail: req.ItemID}
	}
	return production.ItemTarget{Item: def}, nil
}

// checkQueueRoom applies the enqueue limits in their fixed order:
// global queue length, hired workers, then per-workshop slots.
func (s *QueueService) checkQueueRoom(site production.Site, q *production.Queue) error {
	limits := s.settings.Limits
	if q.Len() >= limits.MaxQueueLength {
		return &production.ValidationError{Reason: production.ReasonQueueFull, Detail: fmt.Sprintf("%d orders queued", q.Len())}
	}
	if site.HiredCount(production.EmployeeWorker) <= 0 {
		return &production.ValidationError{Reason: production.ReasonNoWorkers, Detail: "no workers hired in " + site.Name()}
	}
	if q.Len() >= site.WorkshopCount()*limits.PerWorkshopLimit {
		return &production.ValidationError{Reason: production.ReasonNoWorkshopSlot, Detail: fmt.Sprintf("%d workshops hold at most %d orders", site.WorkshopCount(), site.WorkshopCount()*limits.PerWorkshopLimit)}
	}
	return nil
}

func checkHangar(site production.Site, def *production.AircraftDefinition) error {
	if !site.HasCommandCentre() {
		return &production.ValidationError{Reason: production.ReasonNoCommandCentre, Detail: site.Name()}
	}
	if !site.HasHangar(def.Size) {
		return &production.ValidationError{Reason: production.ReasonNoHangar, Detail: fmt.Sprintf("%s has no %s hangar", site.Name(), def.Size)}
	}
	if site.Capacity(production.AircraftCapacityKind(def.Size)).Free() <= 0 {
		return &production.ValidationError{Reason: production.ReasonNoHangarSpace, Detail: fmt.Sprintf("%s hangars of %s are full", def.Size, site.Name())}
	}
	return nil
}

// grantable checks producibility and returns how many units the order may hold
func (s *QueueService) grantable(site production.Site, kind production.OrderKind, target production.Target, amount int) (int, error) {
	switch t := target.(type) {
	case production.AircraftTarget:
		if kind == production.OrderKindDisassembly {
			return 0, &production.ValidationError{Reason: production.ReasonNotDisassemblable, Detail: t.Aircraft.ID}
		}
		if t.Aircraft.ProductionHours < 0 {
			return 0, &production.ValidationError{Reason: production.ReasonNotProducible, Detail: t.Aircraft.ID}
		}
		if !t.Aircraft.Researched {
			return 0, &production.ValidationError{Reason: production.ReasonNotResearched, Detail: t.Aircraft.ID}
		}
		return amount, nil

	case production.ItemTarget:
		item := t.Item
		if kind == production.OrderKindDisassembly {
			if !item.IsDisassemblable() {
				return 0, &production.ValidationError{Reason: production.ReasonNotDisassemblable, Detail: item.ID}
			}
			if !item.Researched {
				return 0, &production.ValidationError{Reason: production.ReasonNotResearched, Detail: item.ID}
			}
			stored := site.Count(item.ID)
			if stored <= 0 {
				return 0, &production.ValidationError{Reason: production.ReasonNotInStorage, Detail: item.ID}
			}
			if stored < amount {
				return stored, nil
			}
			return amount, nil
		}

		if !item.IsProducible() {
			return 0, &production.ValidationError{Reason: production.ReasonNotProducible, Detail: item.ID}
		}
		if !item.Researched {
			return 0, &production.ValidationError{Reason: production.ReasonNotResearched, Detail: item.ID}
		}
		producible := production.RequirementsMet(amount, item.Components, site)
		if producible <= 0 {
			return 0, &production.ValidationError{Reason: production.ReasonNoMaterials, Detail: item.ID}
		}
		return producible, nil
	}
	return 0, &production.ValidationError{Reason: production.ReasonInvalidOrder, Detail: "order has no target"}
}

// Cancel removes the order at index and refunds what it still holds
func (s *QueueService) Cancel(ctx context.Context, w World, baseID string, index int) (*production.Event, error) {
	site, err := w.Bases.Site(baseID)
	if err != nil {
		return nil, err
	}
	q := w.Queues.Queue(baseID)

	order, err := q.RemoveAt(index)
	if err != nil {
		return nil, err
	}
	s.release(ctx, site, order, order.Amount())

	e := production.OrderEvent(production.EventCancelled, site, order)
	s.notify(ctx, e)
	return &e, nil
}

// release returns what units of an order hold: source items for disassembly,
// reserved components for manufacture
func (s *QueueService) release(ctx context.Context, site production.Site, order *production.Order, units int) {
	if units <= 0 {
		return
	}
	item, isItem := order.Item()

	if order.IsDisassembly() {
		if isItem {
			site.Add(item.ID, units)
		}
		return
	}

	if !order.MaterialsReserved() {
		return
	}
	if !isItem {
		if !order.IsResolved() {
			common.LoggerFromContext(ctx).Log(common.LevelWarn, "cannot refund materials of unresolved order", map[string]interface{}{
				"base":     site.ID(),
				"order_id": order.ID(),
				"target":   order.TargetRef(),
			})
			order.ReleaseReservation()
		}
		return
	}

	if units >= order.Amount() {
		if !order.ReleaseReservation() {
			return
		}
	}
	production.Refund(site, units, item.Components)
}

// Move relocates the order at index by delta, clamped to the queue bounds
func (s *QueueService) Move(ctx context.Context, w World, baseID string, index, delta int) (int, error) {
	if _, err := w.Bases.Site(baseID); err != nil {
		return index, err
	}
	return w.Queues.Queue(baseID).Move(index, delta)
}

// RollToBottom moves the head order of a base to the tail
func (s *QueueService) RollToBottom(ctx context.Context, w World, baseID string) (bool, error) {
	if _, err := w.Bases.Site(baseID); err != nil {
		return false, err
	}
	return w.Queues.Queue(baseID).RollToBottom(), nil
}

// IncreaseAmount adds up to delta units to an order, bounded by the amount cap
// and by what the base can supply for the new units
func (s *QueueService) IncreaseAmount(ctx context.Context, w World, baseID string, index, delta int) (*AmountChange, error) {
	if delta <= 0 {
		return nil, &production.ValidationError{Reason: production.ReasonInvalidOrder, Detail: "increase must be positive"}
	}
	site, err := w.Bases.Site(baseID)
	if err != nil {
		return nil, err
	}
	order, err := w.Queues.Queue(baseID).At(index)
	if err != nil {
		return nil, err
	}
	if !order.IsResolved() {
		return nil, &production.ValidationError{Reason: production.ReasonUnknownTarget, Detail: order.TargetRef()}
	}

	if max := s.settings.Limits.MaxOrderAmount; max > 0 {
		room := max - order.Amount()
		if room <= 0 {
			return nil, &production.ValidationError{Reason: production.ReasonAmountCapReached, Detail: fmt.Sprintf("orders hold at most %d units", max)}
		}
		if delta > room {
			delta = room
		}
	}

	before := order.Amount()
	switch {
	case order.IsDisassembly():
		item, _ := order.Item()
		if stored := site.Count(item.ID); stored < delta {
			delta = stored
		}
		if delta <= 0 {
			return nil, &production.ValidationError{Reason: production.ReasonNotInStorage, Detail: item.ID}
		}
		if err := site.Subtract(item.ID, delta); err != nil {
			return nil, fmt.Errorf("failed to take %s out of storage: %w", item.ID, err)
		}

	default:
		if ac, ok := order.Aircraft(); ok {
			if site.Capacity(production.AircraftCapacityKind(ac.Size)).Free() <= 0 {
				return nil, &production.ValidationError{Reason: production.ReasonNoHangarSpace, Detail: ac.ID}
			}
			break
		}
		item, _ := order.Item()
		if !order.MaterialsReserved() && len(item.Components) > 0 {
			// extra units could not be refunded on cancel
			return nil, &production.ValidationError{Reason: production.ReasonNoMaterials, Detail: item.ID + " has no material reservation"}
		}
		if order.MaterialsReserved() {
			delta = production.RequirementsMet(delta, item.Components, site)
			if delta <= 0 {
				return nil, &production.ValidationError{Reason: production.ReasonNoMaterials, Detail: item.ID}
			}
			if err := production.Reserve(site, delta, item.Components); err != nil {
				return nil, fmt.Errorf("failed to reserve materials: %w", err)
			}
		}
	}

	if err := order.ChangeAmount(delta); err != nil {
		return nil, err
	}
	return &AmountChange{Order: order, Before: before, After: order.Amount()}, nil
}

// DecreaseAmount removes up to delta units from an order and refunds them.
// An order reduced to zero leaves the queue.
func (s *QueueService) DecreaseAmount(ctx context.Context, w World, baseID string, index, delta int) (*AmountChange, error) {
	if delta <= 0 {
		return nil, &production.ValidationError{Reason: production.ReasonInvalidOrder, Detail: "decrease must be positive"}
	}
	site, err := w.Bases.Site(baseID)
	if err != nil {
		return nil, err
	}
	q := w.Queues.Queue(baseID)
	order, err := q.At(index)
	if err != nil {
		return nil, err
	}

	before := order.Amount()
	if delta > before {
		delta = before
	}

	s.release(ctx, site, order, delta)
	if err := order.ChangeAmount(-delta); err != nil {
		return nil, err
	}

	change := &AmountChange{Order: order, Before: before, After: order.Amount()}
	if order.IsFinished() {
		if _, err := q.RemoveAt(order.Position()); err != nil {
			return nil, err
		}
		e := production.OrderEvent(production.EventCancelled, site, order)
		s.notify(ctx, e)
		change.Removed = true
		change.Events = append(change.Events, e)
	}
	return change, nil
}

// EmptyQueue cancels every order of a base, refunding each
func (s *QueueService) EmptyQueue(ctx context.Context, w World, baseID string) ([]production.Event, error) {
	site, err := w.Bases.Site(baseID)
	if err != nil {
		return nil, err
	}
	return s.emptyQueue(ctx, site, w.Queues.Queue(baseID)), nil
}

func (s *QueueService) emptyQueue(ctx context.Context, site production.Site, q *production.Queue) []production.Event {
	if q.IsEmpty() {
		return nil
	}
	var events []production.Event
	for _, order := range q.Clear() {
		s.release(ctx, site, order, order.Amount())
		events = append(events, production.OrderEvent(production.EventCancelled, site, order))
	}
	events = append(events, production.Event{Type: production.EventQueueEmptied, BaseID: site.ID(), BaseName: site.Name()})
	for _, e := range events {
		s.notify(ctx, e)
	}
	return events
}

// UpdateWorkshopCapacity recomputes the workspace in use after staff or
// buildings change. A base that lost all workspace loses its queue.
func (s *QueueService) UpdateWorkshopCapacity(ctx context.Context, w World, baseID string) ([]production.Event, error) {
	site, err := w.Bases.Site(baseID)
	if err != nil {
		return nil, err
	}

	workspace := site.Capacity(production.CapacityWorkspace)
	var events []production.Event
	if workspace.Max <= 0 {
		events = s.emptyQueue(ctx, site, w.Queues.Queue(baseID))
	}
	site.SetCapacityCurrent(production.CapacityWorkspace,
		production.EffectiveWorkers(site.HiredCount(production.EmployeeWorker), workspace.Max))
	return events, nil
}

// FreeSlots returns how many more orders a base can queue
func (s *QueueService) FreeSlots(w World, baseID string) (int, error) {
	site, err := w.Bases.Site(baseID)
	if err != nil {
		return 0, err
	}
	free := s.settings.Limits.Capacity(site.WorkshopCount()) - w.Queues.Queue(baseID).Len()
	if free < 0 {
		free = 0
	}
	return free, nil
}

func (s *QueueService) notify(ctx context.Context, e production.Event) {
	if s.sink != nil {
		s.sink.Notify(ctx, e)
	}
}

// checkInvariants verifies the queue bound after a mutation. With strict
// invariants the violation panics; otherwise it is logged and returned.
func (s *QueueService) checkInvariants(ctx context.Context, site production.Site, q *production.Queue) error {
	limit := s.settings.Limits.Capacity(site.WorkshopCount())
	if q.Len() <= limit {
		return nil
	}
	return raiseInvariant(ctx, s.settings.StrictInvariants, &production.InvariantViolationError{
		BaseID:    site.ID(),
		Invariant: "queue length",
		Detail:    fmt.Sprintf("%d orders exceed capacity %d", q.Len(), limit),
	})
}

func raiseInvariant(ctx context.Context, strict bool, err *production.InvariantViolationError) error {
	if strict {
		panic(err)
	}
	common.LoggerFromContext(ctx).Log(common.LevelError, err.Error(), map[string]interface{}{
		"base":      err.BaseID,
		"invariant": err.Invariant,
	})
	return err
}
