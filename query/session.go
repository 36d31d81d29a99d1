package query

import (
	"slices"

	nt "cafedash/entity"
)

// Session is the serializable filter, sort and page state of one viewer.
type Session struct {
	Filter   nt.FilterState `yaml:"filter,omitempty" json:"filter"`
	Sort     nt.Sort        `yaml:"sort,omitempty" json:"sort"`
	Page     int            `yaml:"-" json:"page"`
	PageSize int            `yaml:"page_size,omitempty" json:"page_size"`
}

// NewSession returns a session with default sort and page size.
func NewSession(pageSize int) Session {
	return Session{
		Filter:   nt.FilterState{Mode: nt.ModeAnd},
		Sort:     nt.DefaultSort,
		PageSize: PageSize(pageSize),
	}
}

// Params returns the derivation parameters for the session.
func (sn Session) Params() Params {
	return Params{
		Filter:   sn.Filter,
		Sort:     sn.Sort,
		Page:     sn.Page,
		PageSize: sn.PageSize,
	}
}

// View derives the view and records the effective page.
func (sn Session) View(orders []nt.Order) (Session, View) {
	view := Derive(orders, sn.Params())
	sn.Page = view.Page
	return sn, view
}

// Action is a user input that changes session state.
type Action interface {
	isAction()
}

func (SetSearch) isAction()   {}
func (SetMode) isAction()     {}
func (ToggleValue) isAction() {}
func (SetValues) isAction()   {}
func (SetPriceMin) isAction() {}
func (SetPriceMax) isAction() {}
func (SetSort) isAction()     {}
func (ToggleSort) isAction()  {}
func (SetPage) isAction()     {}
func (NextPage) isAction()    {}
func (PrevPage) isAction()    {}
func (Reset) isAction()       {}

type SetSearch struct{ Input string }

type SetMode struct{ Mode nt.SearchMode }

type ToggleValue struct {
	Attribute nt.Attribute
	Value     string
}

type SetValues struct {
	Attribute nt.Attribute
	Values    []string
}

type SetPriceMin struct{ Text string }

type SetPriceMax struct{ Text string }

type SetSort struct{ Sort nt.Sort }

// ToggleSort flips direction on the current column or starts ascending on a new one.
type ToggleSort struct{ Column nt.SortColumn }

type SetPage struct{ Page int }

type NextPage struct{}

type PrevPage struct{}

// Reset clears all filter inputs and returns to the first page.
type Reset struct{}

// Update applies an action, returning the new session.
// Page bounds are enforced when the session is next viewed.
func Update(sn Session, action Action) Session {

	switch act := action.(type) {
	case SetSearch:
		sn.Filter.Search = act.Input
	case SetMode:
		sn.Filter.Mode = act.Mode.Normal()
	case ToggleValue:
		sn.Filter = sn.Filter.WithSelected(act.Attribute, toggle(sn.Filter.Selected(act.Attribute), act.Value))
	case SetValues:
		sn.Filter = sn.Filter.WithSelected(act.Attribute, append([]string{}, act.Values...))
	case SetPriceMin:
		sn.Filter.PriceMin = act.Text
	case SetPriceMax:
		sn.Filter.PriceMax = act.Text
	case SetSort:
		sn.Sort = act.Sort
	case ToggleSort:
		if sn.Sort.Column == act.Column {
			sn.Sort.Desc = !sn.Sort.Desc
		} else {
			sn.Sort = nt.Sort{Column: act.Column}
		}
	case SetPage:
		sn.Page = act.Page
	case NextPage:
		sn.Page++
	case PrevPage:
		sn.Page = max(0, sn.Page-1)
	case Reset:
		sn.Filter = nt.FilterState{Mode: nt.ModeAnd}
		sn.Page = 0
	}

	return sn
}

func toggle(selected []string, value string) []string {

	idx := slices.Index(selected, value)
	if idx < 0 {
		return append(append([]string{}, selected...), value)
	}

	out := append([]string{}, selected[:idx]...)
	return append(out, selected[idx+1:]...)
}
