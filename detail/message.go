package detail

import nt "cafedash/entity"

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg()  {}
func (OrderMsg) isDetailMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

type OrderMsg struct {
	Order nt.Order
}
