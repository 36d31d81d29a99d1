package query

import (
	"sort"
	"strings"
	"time"

	nt "cafedash/entity"
)

// DefaultPageSize is used when no positive page size is given.
const DefaultPageSize = 10

// SortOrders returns a stably sorted copy of orders.
// Unsortable columns leave list order unchanged.
func SortOrders(orders []nt.Order, srt nt.Sort) []nt.Order {

	sorted := append([]nt.Order{}, orders...)
	if srt.Column == nt.SortTimestamp {
		return sortByTime(sorted, srt.Desc)
	}

	less := lessFunc(srt.Column)
	if less == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if srt.Desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

func lessFunc(col nt.SortColumn) func(a, b nt.Order) bool {
	switch col {
	case nt.SortID:
		return func(a, b nt.Order) bool { return strings.Compare(a.ID, b.ID) < 0 }
	case nt.SortTotalPrice:
		return func(a, b nt.Order) bool { return a.TotalPrice < b.TotalPrice }
	case nt.SortDiscount:
		return func(a, b nt.Order) bool { return a.Discount < b.Discount }
	}
	return nil
}

type timeKey struct {
	order nt.Order
	tm    time.Time
	ok    bool
}

// sortByTime orders by instant, then raw text, with unparsable timestamps
// last in either direction.
func sortByTime(orders []nt.Order, desc bool) []nt.Order {

	keys := make([]timeKey, len(orders))
	for i, order := range orders {
		tm, err := order.Time()
		keys[i] = timeKey{order: order, tm: tm, ok: err == nil}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ok != b.ok {
			return a.ok
		}
		if desc {
			a, b = b, a
		}
		if a.ok && !a.tm.Equal(b.tm) {
			return a.tm.Before(b.tm)
		}
		return a.order.Timestamp < b.order.Timestamp
	})

	for i, key := range keys {
		orders[i] = key.order
	}
	return orders
}

// PageSize normalizes a requested page size.
func PageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return size
}

// PageCount returns the number of pages needed for total rows.
func PageCount(total, size int) int {
	size = PageSize(size)
	return (total + size - 1) / size
}

// ClampPage bounds a page index to the valid range for total rows.
func ClampPage(page, total, size int) int {

	last := max(0, PageCount(total, size)-1)
	if page < 0 {
		return 0
	}
	if page > last {
		return last
	}
	return page
}

// Paginate returns the clamped page index and its slice of orders.
func Paginate(orders []nt.Order, page, size int) (int, []nt.Order) {

	size = PageSize(size)
	page = ClampPage(page, len(orders), size)

	lo := page * size
	hi := min(lo+size, len(orders))
	if lo >= hi {
		return page, []nt.Order{}
	}
	return page, orders[lo:hi]
}
