package table

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pkg/errors"

	nt "cafedash/entity"
	"cafedash/message"
	"cafedash/style"
)

// TablePanel shows one page of orders and tracks the selected row
type TablePanel struct {
	selected   int // Row within page
	selectLast bool

	page      int
	pageCount int
	pageSize  int
	total     int

	width  int
	height int

	columns []nt.Column
	orders  []nt.Order
	table   *table.Table
}

func NewTablePanel(columns []nt.Column) TablePanel {

	lgt := table.New()
	style.StyleTable(lgt)

	tablePanel := TablePanel{
		table: lgt,
	}

	return tablePanel.setColumns(columns)
}

func (pnl TablePanel) Init() tea.Cmd {
	return nil
}

func (pnl TablePanel) Update(msg tea.Msg) (TablePanel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case ColumnsMsg:
		pnl = pnl.setColumns(msg.Columns)

	case message.PageMsg:
		pnl.orders = msg.Orders
		pnl.total = msg.Total
		pnl.page = msg.Page
		pnl.pageCount = msg.PageCount
		pnl.pageSize = msg.PageSize

		if pnl.selectLast {
			pnl.selected = len(pnl.orders) - 1
			pnl.selectLast = false
		}
		pnl.selected = max(0, min(pnl.selected, len(pnl.orders)-1))
		return pnl, pnl.selectedCmd()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if pnl.selected > 0 {
				pnl.selected--
				break
			}
			if pnl.page > 0 {
				pnl.selectLast = true
				return pnl, pageCmd(pnl.page - 1)
			}

		case "down", "j":
			if pnl.selected < len(pnl.orders)-1 {
				pnl.selected++
				break
			}
			if pnl.page < pnl.pageCount-1 {
				pnl.selected = 0
				return pnl, pageCmd(pnl.page + 1)
			}

		case "pgdown", "n", "ctrl+d":
			if pnl.page < pnl.pageCount-1 {
				pnl.selected = 0
				return pnl, pageCmd(pnl.page + 1)
			}

		case "pgup", "p", "ctrl+u":
			if pnl.page > 0 {
				pnl.selected = 0
				return pnl, pageCmd(pnl.page - 1)
			}

		case "g":
			pnl.selected = 0

		case "G":
			pnl.selected = max(0, len(pnl.orders)-1)

		default:
			return pnl, nil
		}

		return pnl, pnl.selectedCmd()
	}

	return pnl, nil
}

// Render renders the current page
func (pnl TablePanel) Render() string {

	pnl.table.ClearRows()
	if len(pnl.orders) == 0 {
		return pnl.table.String() + "\n" + style.MutedStyle.Render("  該当する注文はありません")
	}

	pnl.table.StyleFunc(style.RowStyler(pnl.selected, pnl.amounts()))
	for _, order := range pnl.orders {
		pnl.table.Row(pnl.row(order)...)
	}

	return pnl.table.String()
}

func (pnl TablePanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// SelectedId returns the id of the currently selected order
func (pnl TablePanel) SelectedId() (id string, err error) {

	ln := len(pnl.orders)
	if ln == 0 || pnl.selected >= ln {
		err = errors.Errorf("index %d is out of bounds of %d orders", pnl.selected, ln)
		return
	}

	id = pnl.orders[pnl.selected].ID
	return
}

// Position returns the 1-indexed absolute row and the filtered total
func (pnl TablePanel) Position() (row, total int) {

	if len(pnl.orders) == 0 {
		return 0, 0
	}
	return pnl.page*pnl.pageSize + pnl.selected + 1, pnl.total
}

// Pages returns the 1-indexed page and the page count
func (pnl TablePanel) Pages() (page, count int) {

	if pnl.pageCount == 0 {
		return 0, 0
	}
	return pnl.page + 1, pnl.pageCount
}

// unexported

func (pnl TablePanel) row(order nt.Order) []string {

	row := []string{}
	for _, col := range pnl.columns {
		row = append(row, truncate(Cell(order, col), col.Width))
	}
	return row
}

func (pnl TablePanel) amounts() []bool {

	amounts := make([]bool, len(pnl.columns))
	for i, col := range pnl.columns {
		switch col.Field {
		case "total_price", "discount", "final_price":
			amounts[i] = true
		}
	}
	return amounts
}

func (pnl TablePanel) setColumns(columns []nt.Column) TablePanel {

	visible := []nt.Column{}
	for _, col := range columns {
		if col.Hidden {
			continue
		}
		visible = append(visible, col)
	}

	var headers []string
	for _, col := range visible {
		headers = append(headers, pad(col.Heading(), col.Width+1))
	}

	pnl.table.Headers(headers...)
	pnl.columns = visible

	return pnl
}

// Cell formats one field of an order for display
func Cell(order nt.Order, col nt.Column) string {

	switch col.Field {
	case "id":
		return order.ID
	case "timestamp":
		if col.Format != "" {
			tm, err := order.Time()
			if err == nil {
				return tm.Format(col.Format)
			}
			return order.Timestamp
		}
		return nt.FormatTimestamp(order.Timestamp)
	case "gender_name":
		return order.GenderName
	case "order_type_name":
		return order.OrderTypeName
	case "weather_name":
		return order.WeatherName
	case "time_slot_name":
		return order.TimeSlotName
	case "total_price":
		return nt.Yen(order.TotalPrice)
	case "discount":
		return nt.Yen(order.Discount)
	case "final_price":
		return nt.Yen(order.FinalPrice)
	case "items":
		names := []string{}
		for _, item := range order.Items {
			names = append(names, item.MenuItemName)
		}
		return strings.Join(names, ", ")
	}
	return ""
}

// help

// truncate and pad measure display width so wide characters line up
func truncate(in string, width int) string {

	if width <= 0 || lipgloss.Width(in) <= width {
		return in
	}

	var out strings.Builder
	for _, ch := range in {
		if lipgloss.Width(out.String()+string(ch)) > width-1 {
			break
		}
		out.WriteRune(ch)
	}

	return out.String() + style.MutedStyle.Render("…")
}

func pad(in string, width int) string {

	gap := width - lipgloss.Width(in)
	if gap <= 0 {
		return in
	}
	return fmt.Sprintf("%s%s", in, strings.Repeat(" ", gap))
}
