package services

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// TickReport summarises one simulated hour of production
type TickReport struct {
	Hour           int64
	Events         []production.Event
	Errors         []error
	BasesProcessed int
	BasesSkipped   int
	UnitsCompleted int
	OrdersFinished int
	CreditsSpent   int
}

// TickRunner advances every base's queue by one hour
type TickRunner struct {
	settings Settings
	sink     production.NotificationSink
}

// NewTickRunner creates a tick runner. sink may be nil.
func NewTickRunner(settings Settings, sink production.NotificationSink) *TickRunner {
	return &TickRunner{settings: settings, sink: sink}
}

// RunTick processes the head of every base queue once, visiting bases in the
// order the directory returns them. Credits are drawn from the shared pool
// in that same order, so an earlier base can leave a later one short within
// the same hour. A failing base never stops the others.
func (r *TickRunner) RunTick(ctx context.Context, w World, hour int64) *TickReport {
	report := &TickReport{Hour: hour}

	for _, baseID := range w.Bases.BaseIDs() {
		site, err := w.Bases.Site(baseID)
		if err != nil {
			report.Errors = append(report.Errors, err)
			continue
		}
		q := w.Queues.Queue(baseID)
		if q.IsEmpty() {
			continue
		}
		if !site.ProductionAllowed() {
			report.BasesSkipped++
			continue
		}

		report.BasesProcessed++
		if err := r.runBase(ctx, w, site, q, report); err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("base %s: %w", baseID, err))
		}
	}

	for i := range report.Events {
		report.Events[i].Hour = hour
		if r.sink != nil {
			r.sink.Notify(ctx, report.Events[i])
		}
	}

	if len(report.Events) > 0 || len(report.Errors) > 0 {
		common.LoggerFromContext(ctx).Log(common.LevelDebug, "production tick", map[string]interface{}{
			"hour":      hour,
			"events":    len(report.Events),
			"errors":    len(report.Errors),
			"completed": report.UnitsCompleted,
		})
	}
	return report
}

// runBase evaluates heads until one makes progress or every order has been
// looked at once. Blocked heads roll to the bottom so the next order gets
// its chance in the same hour.
func (r *TickRunner) runBase(ctx context.Context, w World, site production.Site, q *production.Queue, report *TickReport) error {
	seen := make(map[string]bool, q.Len())

	for !q.IsEmpty() {
		o := q.Head()
		if seen[o.ID()] {
			return nil
		}
		seen[o.ID()] = true

		if o.Amount() <= 0 {
			_, _ = q.RemoveAt(0)
			if err := raiseInvariant(ctx, r.settings.StrictInvariants, &production.InvariantViolationError{
				BaseID:    site.ID(),
				Invariant: "order amount",
				Detail:    fmt.Sprintf("order %s reached the head with amount %d", o.ID(), o.Amount()),
			}); err != nil {
				report.Events = append(report.Events, production.OrderEvent(production.EventInvariantBroken, site, o))
				report.Errors = append(report.Errors, err)
			}
			continue
		}

		if !o.IsResolved() {
			if o.FlagUnresolved() {
				report.Events = append(report.Events, production.OrderEvent(production.EventUnresolved, site, o))
			}
			q.RollToBottom()
			continue
		}

		cost := r.settings.UnitCost(o)
		if cost > w.Credits.Balance() {
			if o.FlagCreditBlocked() {
				report.Events = append(report.Events, production.OrderEvent(production.EventBlockedCredits, site, o))
			}
			q.RollToBottom()
			continue
		}

		if !r.hasRoom(w.Catalog, site, o) {
			if o.FlagSpaceBlocked() {
				report.Events = append(report.Events, production.OrderEvent(production.EventBlockedSpace, site, o))
			}
			q.RollToBottom()
			continue
		}

		if r.settings.RearmBlockNotices {
			o.ClearBlockedFlags()
		}

		workers := production.EffectiveWorkers(
			site.HiredCount(production.EmployeeWorker),
			site.Capacity(production.CapacityWorkspace).Max,
		)
		if !o.Advance(production.Fraction(workers, r.settings.referenceWorkers(), o.Hours())) {
			return nil
		}
		return r.completeUnit(ctx, w, site, q, o, cost, report)
	}
	return nil
}

// hasRoom checks whether the base can hold the output of one unit
func (r *TickRunner) hasRoom(catalog *production.Catalog, site production.Site, o *production.Order) bool {
	if ac, ok := o.Aircraft(); ok {
		return site.Capacity(production.AircraftCapacityKind(ac.Size)).Free() > 0
	}

	item, _ := o.Item()
	if o.IsDisassembly() {
		return site.Capacity(production.CapacityItems).Free() >= item.Yield().Footprint(catalog)
	}
	if item.Antimatter {
		return site.Capacity(production.CapacityAntimatter).Free() >= 1
	}
	return site.Capacity(production.CapacityItems).Free() >= item.Size
}

func (r *TickRunner) completeUnit(
	ctx context.Context,
	w World,
	site production.Site,
	q *production.Queue,
	o *production.Order,
	cost int,
	report *TickReport,
) error {
	if cost > 0 {
		memo := production.CreditMemo{
			BaseID:      site.ID(),
			OrderID:     o.ID(),
			TargetID:    o.TargetRef(),
			Description: "production of " + o.Target().DisplayName(),
		}
		if err := w.Credits.Subtract(ctx, cost, memo); err != nil {
			return fmt.Errorf("failed to charge %d credits: %w", cost, err)
		}
		report.CreditsSpent += cost
	}

	o.CompleteUnit()
	report.UnitsCompleted++

	var effectErr error
	switch t := o.Target().(type) {
	case production.AircraftTarget:
		if _, err := site.AddAircraft(t.Aircraft); err != nil {
			effectErr = fmt.Errorf("failed to station %s: %w", t.Aircraft.ID, err)
		}
	case production.ItemTarget:
		if o.IsDisassembly() {
			for _, c := range t.Item.Yield() {
				site.Add(c.ItemID, c.Quantity)
			}
			if t.Item.Craft.IsValid() {
				if err := site.ReleaseUFOSlot(t.Item.Craft); err != nil {
					common.LoggerFromContext(ctx).Log(common.LevelWarn, "no UFO hangar slot to release", map[string]interface{}{
						"base":   site.ID(),
						"target": t.Item.ID,
						"error":  err.Error(),
					})
				}
			}
		} else {
			site.Add(t.Item.ID, 1)
		}
	}

	report.Events = append(report.Events, production.OrderEvent(production.EventUnitCompleted, site, o))

	if o.IsFinished() {
		if _, err := q.RemoveAt(0); err != nil {
			return err
		}
		o.ReleaseReservation()
		report.OrdersFinished++
		report.Events = append(report.Events, production.OrderEvent(production.EventFinished, site, o))
		if q.IsEmpty() {
			report.Events = append(report.Events, production.Event{
				Type:     production.EventQueueEmpty,
				BaseID:   site.ID(),
				BaseName: site.Name(),
			})
		}
	}
	return effectErr
}
