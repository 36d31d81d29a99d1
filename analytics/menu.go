package analytics

import (
	"cmp"
	"slices"
	"strings"

	nt "cafedash/entity"
)

// MenuItem is a catalog entry recovered from the items sold.
type MenuItem struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	CategoryName string  `json:"category_name"`
	Price        float64 `json:"price"`
}

// CategoryCount is how many catalog entries a category holds.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// AllCategories selects every category in FilterMenu.
const AllCategories = "all"

// Menu lists the distinct menu items found in orders, by category then id.
// The list price is the one seen on the first line for an item.
func Menu(orders []nt.Order) []MenuItem {

	type key struct {
		id   int
		name string
	}

	seen := map[key]bool{}
	out := []MenuItem{}
	for _, order := range orders {
		for _, item := range order.Items {
			k := key{item.MenuItem, item.MenuItemName}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, MenuItem{
				ID:           item.MenuItem,
				Name:         item.MenuItemName,
				CategoryName: item.CategoryName,
				Price:        item.MenuItemPrice,
			})
		}
	}

	slices.SortFunc(out, func(a, b MenuItem) int {
		return cmp.Or(
			cmp.Compare(a.CategoryName, b.CategoryName),
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out
}

// FilterMenu keeps items whose name or category contains search, ignoring
// case, and whose category matches. Blank or "all" category keeps every one.
func FilterMenu(items []MenuItem, search, category string) []MenuItem {

	search = strings.ToLower(strings.TrimSpace(search))
	anyCategory := category == "" || category == AllCategories

	out := []MenuItem{}
	for _, item := range items {
		if !anyCategory && item.CategoryName != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.CategoryName), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// MenuCategories counts catalog entries per category, by category name.
func MenuCategories(items []MenuItem) []CategoryCount {

	counts := map[string]int{}
	for _, item := range items {
		counts[item.CategoryName]++
	}

	out := []CategoryCount{}
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}

	slices.SortFunc(out, func(a, b CategoryCount) int {
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}
