package detail

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	nt "cafedash/entity"
	"cafedash/style"
)

// DetailPanel shows one order with its items
type DetailPanel struct {
	order        *nt.Order
	contentLines []string // Rendered content split into lines (cached)

	// Display state
	Width        int
	height       int
	Focused      bool
	ScrollOffset int // Line offset for scrolling content
}

func NewDetailPanel() DetailPanel {
	return DetailPanel{}
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case OrderMsg:
		pnl.order = &msg.Order
		pnl.contentLines = Lines(msg.Order)
		pnl.ScrollOffset = 0

	case SizeMsg:
		pnl.Width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = 0

	case tea.KeyPressMsg:
		if !pnl.Focused {
			return pnl, nil
		}

		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			// Only allow scrolling if content exceeds viewport
			if pnl.height > 0 && len(pnl.contentLines) > pnl.height {
				maxScroll := len(pnl.contentLines) - pnl.height
				if pnl.ScrollOffset < maxScroll {
					pnl.ScrollOffset++
				}
			}
		}
	}

	return pnl, nil
}

// Render renders the visible part of the order
func (pnl DetailPanel) Render() string {
	if pnl.order == nil {
		return "Loading order..."
	}

	// Show visible portion based on scroll offset and height
	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return strings.Join(visibleLines, "\n")
}

func (pnl DetailPanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

var categoryIcons = map[string]string{
	"ドリンク":   "☕",
	"サンドイッチ": "🥪",
	"ケーキ":    "🍰",
}

// Icon returns the icon for a menu category, a cup when unknown
func Icon(category string) string {
	icon, ok := categoryIcons[category]
	if !ok {
		return "☕"
	}
	return icon
}

// Lines renders an order as display lines
func Lines(order nt.Order) []string {

	lines := []string{
		style.HeadStyle.Render("注文 " + order.ID),
		"",
		field("日時", nt.FormatTimestamp(order.Timestamp)),
		field("性別", order.GenderName),
		field("注文タイプ", order.OrderTypeName),
		field("天気", order.WeatherName),
		field("時間帯", order.TimeSlotName),
		"",
		style.HeadStyle.Render(fmt.Sprintf("商品 (%d)", len(order.Items))),
	}

	if len(order.Items) == 0 {
		lines = append(lines, style.MutedStyle.Render("  商品はありません"))
	}
	for _, item := range order.Items {
		line := fmt.Sprintf("  %s %s  %s", Icon(item.CategoryName), item.MenuItemName, style.MutedStyle.Render(item.CategoryName))
		price := nt.Yen(item.Price)
		if item.Price != item.MenuItemPrice {
			price = fmt.Sprintf("%s %s", style.MutedStyle.Render(nt.Yen(item.MenuItemPrice)), price)
		}
		lines = append(lines, line+"  "+price)
	}

	lines = append(lines,
		"",
		field("小計", nt.Yen(order.TotalPrice)),
		field("割引", nt.Yen(order.Discount)),
		field("合計", nt.Yen(order.FinalPrice)),
	)

	return lines
}

func field(label, value string) string {
	return fmt.Sprintf("  %s %s", style.MutedStyle.Width(10).Render(label), value)
}
