// Package memo is an in-memory order store.
package memo

import (
	"sync"

	"github.com/pkg/errors"

	nt "cafedash/entity"
	"cafedash/query"
)

// Memo holds an order snapshot and the current filtered, sorted view of it.
type Memo struct {
	name string

	mu     sync.RWMutex
	orders []nt.Order
	filter nt.FilterState
	srt    nt.Sort
	descs  []nt.Descriptor
	view   []nt.Order
	byID   map[string]int
}

func New(name string) *Memo {
	return &Memo{
		name:  name,
		srt:   nt.DefaultSort,
		descs: []nt.Descriptor{},
		view:  []nt.Order{},
		byID:  map[string]int{},
	}
}

// Name returns the name of the data source.
func (mm *Memo) Name() string {
	return mm.name
}

// Load replaces the snapshot wholesale.
func (mm *Memo) Load(orders []nt.Order) (err error) {

	snapshot := nt.Normalize(append([]nt.Order{}, orders...))

	byID := make(map[string]int, len(snapshot))
	for i, order := range snapshot {
		if _, dup := byID[order.ID]; dup {
			err = errors.Errorf("duplicate order id %q", order.ID)
			return
		}
		byID[order.ID] = i
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.orders = snapshot
	mm.byID = byID
	mm.refresh()
	return
}

// SetView sets filter and sort.
func (mm *Memo) SetView(filter nt.FilterState, srt nt.Sort) (err error) {

	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.filter = filter
	mm.srt = srt
	mm.refresh()
	return
}

// GetView returns the active descriptors and filtered count.
func (mm *Memo) GetView() (descs []nt.Descriptor, count int, err error) {

	mm.mu.RLock()
	defer mm.mu.RUnlock()

	return mm.descs, len(mm.view), nil
}

// GetPage of orders from the current view.
func (mm *Memo) GetPage(offset, size int) (orders []nt.Order, err error) {

	mm.mu.RLock()
	defer mm.mu.RUnlock()

	if offset < 0 || size < 0 {
		err = errors.Errorf("bad page request offset %d size %d", offset, size)
		return
	}

	lo := min(offset, len(mm.view))
	hi := min(offset+size, len(mm.view))
	orders = append([]nt.Order{}, mm.view[lo:hi]...)
	return
}

// GetOrder returns one order from the snapshot regardless of filter.
func (mm *Memo) GetOrder(id string) (order nt.Order, err error) {

	mm.mu.RLock()
	defer mm.mu.RUnlock()

	idx, ok := mm.byID[id]
	if !ok {
		err = errors.Wrapf(nt.ErrNotFound, "id %q", id)
		return
	}
	order = mm.orders[idx]
	return
}

// Orders returns the whole snapshot.
func (mm *Memo) Orders() []nt.Order {

	mm.mu.RLock()
	defer mm.mu.RUnlock()

	return mm.orders
}

// unexported

func (mm *Memo) refresh() {
	mm.descs = query.Build(mm.filter)
	mm.view = query.SortOrders(query.Apply(mm.orders, mm.descs), mm.srt)
}
