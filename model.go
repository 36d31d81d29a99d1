package cafedash

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"cafedash/detail"
	nt "cafedash/entity"
	"cafedash/filter"
	"cafedash/message"
	"cafedash/query"
	"cafedash/source"
	"cafedash/table"
)

const (
	footerHeight = 2
)

// Model is the bubbletea model for the order dashboard TUI.
type Model struct {
	Store       Store
	Fetcher     source.Fetcher
	Layout      *Layout
	LayoutFile  string
	logger      nt.Logger
	ctx         context.Context
	errorString string

	CurrentScreen Screen
	Session       query.Session
	Badges        []string

	TablePanel  table.TablePanel
	DetailPanel detail.DetailPanel
	FilterPanel filter.FilterPanel

	Width  int
	Height int
}

// NewModel creates a new bt model.
// A missing layout file falls back to the default layout.
func NewModel(ctx context.Context, store Store, fetcher source.Fetcher, layoutFile string, lgr nt.Logger) (model Model, err error) {

	layout := DefaultLayout()
	if layoutFile != "" {
		layout, err = LoadLayout(layoutFile)
		if err != nil {
			return
		}
	}

	err = store.SetView(layout.Filter, layout.Sort)
	if err != nil {
		return
	}

	model = Model{
		Store:         store,
		Fetcher:       fetcher,
		Layout:        layout,
		LayoutFile:    layoutFile,
		logger:        lgr,
		ctx:           ctx,
		CurrentScreen: TableScreen,
		Session:       layout.Session,
		TablePanel:    table.NewTablePanel(layout.Columns),
		DetailPanel:   detail.NewDetailPanel(),
		FilterPanel:   filter.NewFilterPanel(),
	}

	return
}

func (m Model) Init() tea.Cmd {
	return m.fetchOrders()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.LoadedMsg:
		if msg.Err != nil {
			m.logger.Error(m.ctx, "failed to load orders", msg.Err)
			m.errorString = msg.Err.Error()
		} else {
			m.logger.Info(m.ctx, "loaded orders", "count", msg.Count)
			m.errorString = ""
		}
		return m, m.setView()

	case message.GetPageMsg:
		m.Session = query.Update(m.Session, query.SetPage{Page: msg.Page})
		return m, m.getPage(m.Session.Page)

	case message.PageMsg:
		m.Session.Page = msg.Page
		m.Badges = query.Badges(msg.Descriptors)

		var cmd tea.Cmd
		m.TablePanel, cmd = m.TablePanel.Update(msg)
		return m, cmd

	case message.SelectedMsg:
		return m, nil

	case message.SetFilterMsg:
		m.Session.Filter = msg.Filter
		return m, m.setView()

	case message.CloseFilterMsg:
		m.CurrentScreen = TableScreen
		return m, nil

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case detail.OrderMsg:
		var cmd tea.Cmd
		m.DetailPanel, cmd = m.DetailPanel.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		if m.CurrentScreen == FilterScreen {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.FilterPanel, cmd = m.FilterPanel.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		height := max(0, msg.Height-footerHeight)
		m.TablePanel, _ = m.TablePanel.Update(table.SizeMsg{Width: msg.Width, Height: height})
		m.DetailPanel, _ = m.DetailPanel.Update(detail.SizeMsg{Width: msg.Width, Height: height})
		m.FilterPanel, _ = m.FilterPanel.Update(filter.SizeMsg{Width: msg.Width, Height: msg.Height})
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.CurrentScreen != TableScreen {
			return m.switchToTable()
		}
		return m, tea.Quit

	case "right", "l", "enter":
		if m.CurrentScreen == TableScreen {
			return m.switchToDetail()
		}
		return m, nil

	case "left", "h":
		if m.CurrentScreen == DetailScreen {
			return m.switchToTable()
		}
		return m, nil
	}

	if m.CurrentScreen == DetailScreen {
		var cmd tea.Cmd
		m.DetailPanel, cmd = m.DetailPanel.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/", "f":
		m.CurrentScreen = FilterScreen
		m.FilterPanel, _ = m.FilterPanel.Update(filter.OpenMsg{Filter: m.Session.Filter})
		return m, nil

	case "x":
		m.Session = query.Update(m.Session, query.Reset{})
		return m, m.setView()

	case "s":
		m.Session = query.Update(m.Session, query.ToggleSort{Column: nextSortColumn(m.Session.Sort.Column)})
		return m, m.setView()

	case "S":
		m.Session = query.Update(m.Session, query.ToggleSort{Column: m.Session.Sort.Column})
		return m, m.setView()

	case "R":
		return m, m.fetchOrders()

	case "r":
		return m.reloadLayout()
	}

	var cmd tea.Cmd
	m.TablePanel, cmd = m.TablePanel.Update(msg)
	return m, cmd
}

func (m Model) switchToDetail() (Model, tea.Cmd) {

	id, err := m.TablePanel.SelectedId()
	if err != nil {
		return m, nil
	}

	m.CurrentScreen = DetailScreen
	m.DetailPanel.Focused = true
	return m, m.getOrder(id)
}

func (m Model) switchToTable() (Model, tea.Cmd) {

	m.CurrentScreen = TableScreen
	m.DetailPanel.Focused = false
	return m, nil
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.CurrentScreen {
	case DetailScreen:
		screenContent = m.DetailPanel.Render()
	default:
		screenContent = m.TablePanel.Render()
	}

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(lipgloss.NewLayer("screen", screenContent))
	canvas.Compose(lipgloss.NewLayer("footer", m.footer().Render(m.Width)).Y(m.Height - footerHeight))

	if m.CurrentScreen == FilterScreen {
		dialog := m.FilterPanel.Render()
		x := max(0, (m.Width-lipgloss.Width(dialog))/2)
		y := max(0, (m.Height-lipgloss.Height(dialog))/2)
		canvas.Compose(lipgloss.NewLayer("filter", dialog).X(x).Y(y))
	}

	view := tea.NewView(canvas)
	view.AltScreen = true
	return view
}

func (m Model) footer() Footer {

	row, total := m.TablePanel.Position()
	page, count := m.TablePanel.Pages()

	return Footer{
		Row:       row,
		Total:     total,
		Page:      page,
		PageCount: count,
		Sort:      m.Session.Sort,
		Badges:    m.Badges,
		Source:    m.Store.Name(),
		Error:     m.errorString,
	}
}

// nextSortColumn cycles through the sortable columns
func nextSortColumn(current nt.SortColumn) nt.SortColumn {

	idx := slices.Index(nt.SortColumns, current)
	return nt.SortColumns[(idx+1)%len(nt.SortColumns)]
}
