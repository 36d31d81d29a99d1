package filter

import nt "cafedash/entity"

type FilterMsg interface {
	isFilterMsg()
}

func (SizeMsg) isFilterMsg() {}
func (OpenMsg) isFilterMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// OpenMsg seeds the dialog with the current filter inputs
type OpenMsg struct {
	Filter nt.FilterState
}
