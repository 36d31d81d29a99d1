package message

import tea "charm.land/bubbletea/v2"

// GetPageCmd returns a command to request a page of the view
func GetPageCmd(page int) tea.Cmd {
	return func() tea.Msg {
		return GetPageMsg{Page: page}
	}
}

// ErrorCmd returns a command to surface an error
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
