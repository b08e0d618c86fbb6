package base

import (
	"fmt"
	"sort"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// Registry holds the founded bases of a campaign and serves them to the
// production core in ascending base index order
type Registry struct {
	bases map[string]*Base
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{bases: make(map[string]*Base)}
}

// Found registers a base
func (r *Registry) Found(b *Base) error {
	if _, exists := r.bases[b.id]; exists {
		return fmt.Errorf("base %s already founded", b.id)
	}
	for _, other := range r.bases {
		if other.index == b.index {
			return fmt.Errorf("base index %d already used by %s", b.index, other.id)
		}
	}
	r.bases[b.id] = b
	return nil
}

// Get returns a base by id
func (r *Registry) Get(baseID string) (*Base, error) {
	b, ok := r.bases[baseID]
	if !ok {
		return nil, &production.ErrBaseNotFound{BaseID: baseID}
	}
	return b, nil
}

// All returns every base in iteration order
func (r *Registry) All() []*Base {
	out := make([]*Base, 0, len(r.bases))
	for _, b := range r.bases {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

// BaseIDs returns base ids sorted by base index
func (r *Registry) BaseIDs() []string {
	all := r.All()
	ids := make([]string, len(all))
	for i, b := range all {
		ids[i] = b.id
	}
	return ids
}

// Site returns the production view of a base
func (r *Registry) Site(baseID string) (production.Site, error) {
	b, err := r.Get(baseID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Len returns the number of founded bases
func (r *Registry) Len() int {
	return len(r.bases)
}

var _ production.BaseDirectory = (*Registry)(nil)
