package production

// QueueRecord is the persisted form of one order
type QueueRecord struct {
	OrderID           string
	ItemID            string
	Amount            int
	PercentDone       float64
	IsManufacture     bool
	AircraftID        string
	MaterialsReserved bool

	// one-shot notice flags, so a stalled order is announced once across reloads
	CreditBlocked     bool
	SpaceBlocked      bool
	UnresolvedNoticed bool
}

// BaseQueueRecord is the persisted form of one base's queue
type BaseQueueRecord struct {
	BaseID string
	Orders []QueueRecord
}

// Snapshot converts a queue into records in processing order
func Snapshot(q *Queue) BaseQueueRecord {
	rec := BaseQueueRecord{BaseID: q.baseID, Orders: make([]QueueRecord, 0, len(q.orders))}
	for _, o := range q.orders {
		rec.Orders = append(rec.Orders, QueueRecord{
			OrderID:           o.id,
			ItemID:            o.itemRef,
			Amount:            o.amount,
			PercentDone:       o.percentDone,
			IsManufacture:     o.kind == OrderKindManufacture,
			AircraftID:        o.aircraftRef,
			MaterialsReserved: o.materialsReserved,
			CreditBlocked:     o.creditBlocked,
			SpaceBlocked:      o.spaceBlocked,
			UnresolvedNoticed: o.unresolvedNoticed,
		})
	}
	return rec
}

// RestoreResult reports which records did not resolve against the catalog
type RestoreResult struct {
	Queue      *Queue
	Unresolved []QueueRecord
}

// Restore rebuilds a queue from records. Records whose item or aircraft id is
// unknown are kept with a nil target and reported back to the caller.
func Restore(rec BaseQueueRecord, catalog *Catalog) RestoreResult {
	q := NewQueue(rec.BaseID)
	res := RestoreResult{Queue: q}

	for _, r := range rec.Orders {
		kind := OrderKindDisassembly
		if r.IsManufacture {
			kind = OrderKindManufacture
		}
		target := catalog.Resolve(r.ItemID, r.AircraftID)
		if target == nil {
			res.Unresolved = append(res.Unresolved, r)
		}
		o := ReconstructOrder(
			r.OrderID,
			kind,
			target,
			r.ItemID,
			r.AircraftID,
			r.Amount,
			r.PercentDone,
			r.MaterialsReserved,
		)
		o.RestoreNoticeFlags(r.CreditBlocked, r.SpaceBlocked, r.UnresolvedNoticed)
		q.Append(o)
	}
	return res
}
