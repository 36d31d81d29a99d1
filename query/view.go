package query

import (
	nt "cafedash/entity"
)

// Params select a view of the snapshot.
type Params struct {
	Filter   nt.FilterState
	Sort     nt.Sort
	Page     int
	PageSize int
}

// View is what the presentation layer renders.
type View struct {
	Orders      []nt.Order      `json:"orders"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	PageCount   int             `json:"page_count"`
	PageSize    int             `json:"page_size"`
	Sort        nt.Sort         `json:"sort"`
	Descriptors []nt.Descriptor `json:"descriptors"`
}

// Derive builds, applies, sorts and pages in one pass.
func Derive(orders []nt.Order, params Params) View {

	descs := Build(params.Filter)
	filtered := Apply(orders, descs)
	sorted := SortOrders(filtered, params.Sort)

	size := PageSize(params.PageSize)
	page, rows := Paginate(sorted, params.Page, size)

	return View{
		Orders:      rows,
		Total:       len(filtered),
		Page:        page,
		PageCount:   PageCount(len(filtered), size),
		PageSize:    size,
		Sort:        params.Sort,
		Descriptors: descs,
	}
}
