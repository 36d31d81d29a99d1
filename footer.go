package cafedash

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	nt "cafedash/entity"
	"cafedash/style"
)

// Footer is what the bottom two lines report.
type Footer struct {
	Row       int
	Total     int
	Page      int
	PageCount int
	Sort      nt.Sort
	Badges    []string
	Source    string
	Error     string
}

// Render renders the footer at the given width.
func (ftr Footer) Render(width int) string {

	dir := "↑"
	if ftr.Sort.Desc {
		dir = "↓"
	}

	left := fmt.Sprintf("%d/%d  page %d/%d  sort %s %s", ftr.Row, ftr.Total, ftr.Page, ftr.PageCount, ftr.Sort.Column, dir)
	top := spread(left, ftr.Source, width)

	bottom := strings.Join(ftr.Badges, "  ")
	if ftr.Error != "" {
		return style.FooterStyle.Render(top) + "\n" + style.ErrorStyle.Render(ftr.Error)
	}

	return style.FooterStyle.Render(top) + "\n" + style.FooterStyle.Render(bottom)
}

func spread(left, right string, width int) string {

	padding := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", padding) + right
}
