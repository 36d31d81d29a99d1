// Package message holds bubbletea messages passed between panels and the model.
package message

import nt "cafedash/entity"

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// LoadedMsg signals the store snapshot was replaced
// Err is set when the fetch failed and the snapshot is empty
type LoadedMsg struct {
	Count int
	Err   error
}

// GetPageMsg signals to load the page of the current view
type GetPageMsg struct {
	Page int
}

// PageMsg contains a page of orders and where it sits in the view
type PageMsg struct {
	Orders      []nt.Order
	Total       int
	Page        int
	PageCount   int
	PageSize    int
	Descriptors []nt.Descriptor
}

// SelectedMsg signals the selected order changed
type SelectedMsg struct {
	Row int
	Id  string
}

// SetFilterMsg carries edited filter inputs back to the model
type SetFilterMsg struct {
	Filter nt.FilterState
}

// CloseFilterMsg signals the filter dialog is done
type CloseFilterMsg struct{}
