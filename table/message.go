package table

import nt "cafedash/entity"

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()    {}
func (ColumnsMsg) isTableMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

type ColumnsMsg struct {
	Columns []nt.Column
}
