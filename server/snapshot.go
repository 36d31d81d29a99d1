package server

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	nt "cafedash/entity"
)

// snapshot is the shared, read-only order list; it is replaced, never edited.
type snapshot struct {
	mu      sync.RWMutex
	orders  []nt.Order
	byID    map[string]int
	fetched time.Time
}

func (snap *snapshot) replace(orders []nt.Order, at time.Time) (err error) {

	orders = nt.Normalize(append([]nt.Order{}, orders...))

	byID := make(map[string]int, len(orders))
	for i, order := range orders {
		if _, dup := byID[order.ID]; dup {
			err = errors.Errorf("duplicate order id %q", order.ID)
			return
		}
		byID[order.ID] = i
	}

	snap.mu.Lock()
	defer snap.mu.Unlock()

	snap.orders = orders
	snap.byID = byID
	snap.fetched = at
	return
}

// clear empties the snapshot so nothing stale is served as fresh.
func (snap *snapshot) clear() {

	snap.mu.Lock()
	defer snap.mu.Unlock()

	snap.orders = nil
	snap.byID = nil
	snap.fetched = time.Time{}
}

func (snap *snapshot) get() (orders []nt.Order, fetched time.Time) {

	snap.mu.RLock()
	defer snap.mu.RUnlock()

	return snap.orders, snap.fetched
}

func (snap *snapshot) lookup(id string) (order nt.Order, err error) {

	snap.mu.RLock()
	defer snap.mu.RUnlock()

	idx, ok := snap.byID[id]
	if !ok {
		err = errors.Wrapf(nt.ErrNotFound, "id %q", id)
		return
	}
	order = snap.orders[idx]
	return
}
