package production

// Limits bounds queue length and order size
type Limits struct {
	MaxQueueLength   int
	PerWorkshopLimit int
	MaxOrderAmount   int
}

// DefaultLimits mirrors the campaign defaults
func DefaultLimits() Limits {
	return Limits{
		MaxQueueLength:   256,
		PerWorkshopLimit: 5,
		MaxOrderAmount:   500,
	}
}

// Capacity returns how many orders a base with the given workshop count may queue
func (l Limits) Capacity(workshops int) int {
	perWorkshop := workshops * l.PerWorkshopLimit
	if perWorkshop < l.MaxQueueLength {
		return perWorkshop
	}
	return l.MaxQueueLength
}

// Queue is the ordered list of orders of one base; index 0 is the head
type Queue struct {
	baseID string
	orders []*Order
}

// NewQueue creates an empty queue for a base
func NewQueue(baseID string) *Queue {
	return &Queue{baseID: baseID}
}

// BaseID returns the owning base
func (q *Queue) BaseID() string { return q.baseID }

// Len returns the number of orders
func (q *Queue) Len() int { return len(q.orders) }

// IsEmpty reports whether there is nothing queued
func (q *Queue) IsEmpty() bool { return len(q.orders) == 0 }

// Orders returns a copy of the orders in processing order
func (q *Queue) Orders() []*Order {
	out := make([]*Order, len(q.orders))
	copy(out, q.orders)
	return out
}

// Head returns the order currently in production, or nil
func (q *Queue) Head() *Order {
	if len(q.orders) == 0 {
		return nil
	}
	return q.orders[0]
}

// At returns the order at index
func (q *Queue) At(index int) (*Order, error) {
	if index < 0 || index >= len(q.orders) {
		return nil, &ErrQueueIndexOutOfRange{BaseID: q.baseID, Index: index, Length: len(q.orders)}
	}
	return q.orders[index], nil
}

// IndexOf returns the position of the order with the given id, or -1
func (q *Queue) IndexOf(orderID string) int {
	for i, o := range q.orders {
		if o.id == orderID {
			return i
		}
	}
	return -1
}

// Append adds an order at the tail
func (q *Queue) Append(o *Order) {
	o.position = len(q.orders)
	q.orders = append(q.orders, o)
}

// RemoveAt detaches the order at index and shifts later orders down.
// Refunds are the caller's concern.
func (q *Queue) RemoveAt(index int) (*Order, error) {
	o, err := q.At(index)
	if err != nil {
		return nil, err
	}
	copy(q.orders[index:], q.orders[index+1:])
	q.orders[len(q.orders)-1] = nil
	q.orders = q.orders[:len(q.orders)-1]
	q.reindex(index)
	return o, nil
}

// Move relocates the order at index by delta, clamped to the queue bounds.
// It returns the new index.
func (q *Queue) Move(index, delta int) (int, error) {
	o, err := q.At(index)
	if err != nil {
		return index, err
	}

	dest := index + delta
	if dest < 0 {
		dest = 0
	}
	if dest > len(q.orders)-1 {
		dest = len(q.orders) - 1
	}
	if dest == index {
		return index, nil
	}

	if dest > index {
		copy(q.orders[index:dest], q.orders[index+1:dest+1])
	} else {
		copy(q.orders[dest+1:index+1], q.orders[dest:index])
	}
	q.orders[dest] = o

	lo, hi := index, dest
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		q.orders[i].position = i
	}
	return dest, nil
}

// RollToBottom moves the head order to the tail. No-op below two orders.
func (q *Queue) RollToBottom() bool {
	if len(q.orders) < 2 {
		return false
	}
	_, _ = q.Move(0, len(q.orders)-1)
	return true
}

// Clear drops every order and returns them in their former order
func (q *Queue) Clear() []*Order {
	out := q.orders
	q.orders = nil
	return out
}

func (q *Queue) reindex(from int) {
	for i := from; i < len(q.orders); i++ {
		q.orders[i].position = i
	}
}
