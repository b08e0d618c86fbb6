package production

import "sort"

// Book holds the production queue of every base in a campaign
type Book struct {
	queues map[string]*Queue
}

// NewBook creates an empty book
func NewBook() *Book {
	return &Book{queues: make(map[string]*Queue)}
}

// Queue returns the queue of a base, creating an empty one on first use
func (b *Book) Queue(baseID string) *Queue {
	q, ok := b.queues[baseID]
	if !ok {
		q = NewQueue(baseID)
		b.queues[baseID] = q
	}
	return q
}

// Replace installs a queue for its base, dropping any previous one
func (b *Book) Replace(q *Queue) {
	b.queues[q.baseID] = q
}

// BaseIDs returns the ids of all bases with a queue, ascending
func (b *Book) BaseIDs() []string {
	ids := make([]string, 0, len(b.queues))
	for id := range b.queues {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalOrders counts orders across every base
func (b *Book) TotalOrders() int {
	n := 0
	for _, q := range b.queues {
		n += q.Len()
	}
	return n
}
