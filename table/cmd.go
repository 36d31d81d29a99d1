package table

import (
	tea "charm.land/bubbletea/v2"

	"cafedash/message"
)

func (pnl TablePanel) selectedCmd() tea.Cmd {

	id, err := pnl.SelectedId()
	if err != nil {
		return nil
	}

	row := pnl.page*pnl.pageSize + pnl.selected + 1

	return func() tea.Msg {
		return message.SelectedMsg{
			Row: row,
			Id:  id,
		}
	}
}

func pageCmd(page int) tea.Cmd {
	return message.GetPageCmd(page)
}
