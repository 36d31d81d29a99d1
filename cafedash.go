// Package cafedash is a terminal dashboard for browsing café orders.
package cafedash

import (
	nt "cafedash/entity"
)

// Store specifies a backing datastore for the order snapshot.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// Load replaces the snapshot
	Load(orders []nt.Order) (err error)
	// SetView Filter and Sort
	SetView(filter nt.FilterState, srt nt.Sort) (err error)
	// GetView descriptors and count
	GetView() (descs []nt.Descriptor, count int, err error)
	// GetPage of orders
	GetPage(offset, size int) (orders []nt.Order, err error)
	// GetOrder returns one order regardless of filter
	GetOrder(id string) (order nt.Order, err error)
}
