package cafedash

import (
	tea "charm.land/bubbletea/v2"

	"cafedash/detail"
	"cafedash/message"
	"cafedash/query"
	"cafedash/table"
)

// fetchOrders pulls a fresh snapshot into the store
// a failed fetch or load leaves the store empty rather than stale
func (m Model) fetchOrders() tea.Cmd {

	return func() tea.Msg {

		orders, err := m.Fetcher.FetchOrders(m.ctx)
		if err == nil {
			err = m.Store.Load(orders)
		}
		if err != nil {
			return m.loadEmpty(err)
		}

		return message.LoadedMsg{Count: len(orders)}
	}
}

// loadEmpty clears the store after a failed fetch or load
func (m Model) loadEmpty(cause error) tea.Msg {

	err := m.Store.Load(nil)
	if err != nil {
		return message.ErrorMsg{Err: err}
	}
	return message.LoadedMsg{Err: cause}
}

// getPage gets a page of orders from the store, clamping to the view
func (m Model) getPage(page int) tea.Cmd {

	size := m.Session.PageSize

	return func() tea.Msg {

		descs, count, err := m.Store.GetView()
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		page = query.ClampPage(page, count, size)
		orders, err := m.Store.GetPage(page*size, size)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return message.PageMsg{
			Orders:      orders,
			Total:       count,
			Page:        page,
			PageCount:   query.PageCount(count, size),
			PageSize:    size,
			Descriptors: descs,
		}
	}
}

// getOrder gets a full order from the store
func (m Model) getOrder(id string) tea.Cmd {
	return func() tea.Msg {
		order, err := m.Store.GetOrder(id)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return detail.OrderMsg{Order: order}
	}
}

// setView pushes session filter and sort to the store and gets a page
func (m Model) setView() tea.Cmd {

	err := m.Store.SetView(m.Session.Filter, m.Session.Sort)
	if err != nil {
		return message.ErrorCmd(err)
	}

	return m.getPage(m.Session.Page)
}

// reloadLayout loads layout from file and updates columns
func (m Model) reloadLayout() (Model, tea.Cmd) {

	layout, err := LoadLayout(m.LayoutFile)
	if err != nil {
		return m, message.ErrorCmd(err)
	}

	m.Layout = layout
	m.TablePanel, _ = m.TablePanel.Update(table.ColumnsMsg{Columns: layout.Columns})
	return m, nil
}
