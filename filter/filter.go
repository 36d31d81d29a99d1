package filter

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "cafedash/entity"
	"cafedash/message"
	"cafedash/query"
	"cafedash/style"
)

// FilterPanel displays a modal dialog for editing filter inputs.
// Every edit is sent to the model so the table follows along.
type FilterPanel struct {
	state         nt.FilterState
	selectedField fieldType // Which row is selected
	cursor        int       // Option under cursor on categorical rows

	width  int
	height int
}

type fieldType int

const (
	fieldSearch fieldType = iota
	fieldMode
	fieldGender
	fieldOrderType
	fieldWeather
	fieldTimeSlot
	fieldMin
	fieldMax
	fieldCount
)

var fieldAttributes = map[fieldType]nt.Attribute{
	fieldGender:    nt.Gender,
	fieldOrderType: nt.OrderType,
	fieldWeather:   nt.Weather,
	fieldTimeSlot:  nt.TimeSlot,
}

var fieldNames = map[fieldType]string{
	fieldSearch:    "検索語",
	fieldMode:      "検索モード",
	fieldGender:    nt.Gender.Label(),
	fieldOrderType: nt.OrderType.Label(),
	fieldWeather:   nt.Weather.Label(),
	fieldTimeSlot:  nt.TimeSlot.Label(),
	fieldMin:       "価格(下限)",
	fieldMax:       "価格(上限)",
}

func NewFilterPanel() FilterPanel {
	return FilterPanel{
		state:         nt.FilterState{Mode: nt.ModeAnd},
		selectedField: fieldSearch,
	}
}

func (pnl FilterPanel) Init() tea.Cmd {
	return nil
}

// Filter returns the inputs being edited
func (pnl FilterPanel) Filter() nt.FilterState {
	return pnl.state
}

func (pnl FilterPanel) Update(msg tea.Msg) (FilterPanel, tea.Cmd) {
	switch msg := msg.(type) {

	case OpenMsg:
		pnl.state = msg.Filter
		pnl.selectedField = fieldSearch
		pnl.cursor = 0

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

func (pnl FilterPanel) handleKey(msg tea.KeyPressMsg) (FilterPanel, tea.Cmd) {

	attr, categorical := fieldAttributes[pnl.selectedField]

	switch msg.String() {
	case "esc", "enter":
		return pnl, func() tea.Msg { return message.CloseFilterMsg{} }

	case "tab", "down":
		pnl.selectedField = (pnl.selectedField + 1) % fieldCount
		pnl.cursor = 0
		return pnl, nil

	case "shift+tab", "up":
		pnl.selectedField = (pnl.selectedField + fieldCount - 1) % fieldCount
		pnl.cursor = 0
		return pnl, nil

	case "left":
		if categorical {
			pnl.cursor = max(0, pnl.cursor-1)
			return pnl, nil
		}
		if pnl.selectedField == fieldMode {
			return pnl.apply(query.SetMode{Mode: flip(pnl.state.Mode)})
		}

	case "right":
		if categorical {
			pnl.cursor = min(len(nt.Options[attr])-1, pnl.cursor+1)
			return pnl, nil
		}
		if pnl.selectedField == fieldMode {
			return pnl.apply(query.SetMode{Mode: flip(pnl.state.Mode)})
		}

	case "space":
		if categorical {
			return pnl.apply(query.ToggleValue{Attribute: attr, Value: nt.Options[attr][pnl.cursor]})
		}
		if pnl.selectedField == fieldMode {
			return pnl.apply(query.SetMode{Mode: flip(pnl.state.Mode)})
		}
		if pnl.selectedField == fieldSearch {
			return pnl.setText(pnl.state.Search + " ")
		}

	case "backspace":
		text, ok := pnl.text()
		if ok && text != "" {
			runes := []rune(text)
			return pnl.setText(string(runes[:len(runes)-1]))
		}

	case "ctrl+u":
		if _, ok := pnl.text(); ok {
			return pnl.setText("")
		}

	default:
		text, ok := pnl.text()
		if ok && msg.Text != "" {
			return pnl.setText(text + msg.Text)
		}
	}

	return pnl, nil
}

// apply runs an action through the session reducer and reports the new filter
func (pnl FilterPanel) apply(action query.Action) (FilterPanel, tea.Cmd) {

	sn := query.Update(query.Session{Filter: pnl.state}, action)
	pnl.state = sn.Filter

	state := pnl.state
	return pnl, func() tea.Msg {
		return message.SetFilterMsg{Filter: state}
	}
}

func (pnl FilterPanel) text() (string, bool) {
	return pnl.textOf(pnl.selectedField)
}

func (pnl FilterPanel) textOf(field fieldType) (string, bool) {
	switch field {
	case fieldSearch:
		return pnl.state.Search, true
	case fieldMin:
		return pnl.state.PriceMin, true
	case fieldMax:
		return pnl.state.PriceMax, true
	}
	return "", false
}

func (pnl FilterPanel) setText(text string) (FilterPanel, tea.Cmd) {
	switch pnl.selectedField {
	case fieldSearch:
		return pnl.apply(query.SetSearch{Input: text})
	case fieldMin:
		return pnl.apply(query.SetPriceMin{Text: text})
	case fieldMax:
		return pnl.apply(query.SetPriceMax{Text: text})
	}
	return pnl, nil
}

func flip(mode nt.SearchMode) nt.SearchMode {
	if mode.Normal() == nt.ModeOr {
		return nt.ModeAnd
	}
	return nt.ModeOr
}

var (
	hlStyle    = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Width(12)
)

// Render renders the dialog box
func (pnl FilterPanel) Render() string {

	var content strings.Builder
	content.WriteString("絞り込み\n\n")

	for field := fieldSearch; field < fieldCount; field++ {
		isSelected := field == pnl.selectedField

		rowPrefix := "  "
		if isSelected {
			rowPrefix = "> "
		}

		content.WriteString(fmt.Sprintf("%s%s %s\n", rowPrefix, labelStyle.Render(fieldNames[field]), pnl.renderValue(field, isSelected)))
	}

	badges := query.Badges(query.Build(pnl.state))
	if len(badges) > 0 {
		content.WriteString("\n" + style.MutedStyle.Render(strings.Join(badges, "  ")))
	}

	// Context-aware help text
	_, categorical := fieldAttributes[pnl.selectedField]

	var helpText string
	switch {
	case pnl.selectedField == fieldMode:
		helpText = "Space/←→: AND/OR  Tab/↑↓: change row  Enter/Esc: close"
	case categorical:
		helpText = "←→: choose  Space: toggle  Tab/↑↓: change row  Enter/Esc: close"
	default:
		helpText = "type to edit  Ctrl+U: clear  Tab/↑↓: change row  Enter/Esc: close"
	}
	content.WriteString("\n\n" + style.MutedStyle.Render(helpText))

	return style.DialogStyle.Width(72).Render(content.String())
}

func (pnl FilterPanel) View() tea.View {

	dialog := pnl.Render()

	// Center the dialog
	vPad := max(0, (pnl.height-lipgloss.Height(dialog))/2)
	hPad := max(0, (pnl.width-lipgloss.Width(dialog))/2)

	dialogLayer := lipgloss.NewLayer("filter", dialog).
		X(hPad).
		Y(vPad)

	return tea.NewView(dialogLayer)
}

func (pnl FilterPanel) renderValue(field fieldType, isSelected bool) string {

	switch field {
	case fieldSearch, fieldMin, fieldMax:
		text, _ := pnl.textOf(field)

		if isSelected {
			return hlStyle.Render(text + "_")
		}
		return text

	case fieldMode:
		mode := string(pnl.state.Mode.Normal())
		if isSelected {
			return hlStyle.Render(mode)
		}
		return mode
	}

	attr := fieldAttributes[field]
	selected := pnl.state.Selected(attr)

	opts := []string{}
	for i, opt := range nt.Options[attr] {
		box := "[ ]"
		if slices.Contains(selected, opt) {
			box = "[x]"
		}
		rendered := box + " " + opt
		if isSelected && i == pnl.cursor {
			rendered = hlStyle.Render(rendered)
		}
		opts = append(opts, rendered)
	}
	return strings.Join(opts, "  ")
}
