package analytics

import (
	"cmp"
	"slices"

	nt "cafedash/entity"
)

const (
	DefaultBestsellers = 10
	DefaultCombos      = 10
	DefaultOccurrence  = 2
	popularPerSlot     = 5
)

// ItemSales totals the item lines of one menu item.
type ItemSales struct {
	Category      string  `json:"category"`
	MenuItem      string  `json:"menu_item"`
	MenuItemPrice float64 `json:"menu_item_price"`
	TotalOrders   int     `json:"total_orders"`
	TotalSales    float64 `json:"total_sales"`
}

// Bestsellers ranks menu items by item lines sold.
// A non-positive limit means the default of ten.
func Bestsellers(orders []nt.Order, limit int) []ItemSales {

	if limit <= 0 {
		limit = DefaultBestsellers
	}
	return truncate(itemSales(orders), limit)
}

// DineInPopular ranks dine-in menu items within each time slot, top five each.
func DineInPopular(orders []nt.Order) map[string][]ItemSales {

	bySlot := map[string][]nt.Order{}
	for _, order := range orders {
		if order.OrderTypeName != nt.DineIn {
			continue
		}
		bySlot[order.TimeSlotName] = append(bySlot[order.TimeSlotName], order)
	}

	out := map[string][]ItemSales{}
	for slot, slotOrders := range bySlot {
		out[slot] = truncate(itemSales(slotOrders), popularPerSlot)
	}
	return out
}

// PopularByType ranks menu items sold in orders of one order type,
// such as nt.DineIn or nt.Takeout. A non-positive limit means ten.
func PopularByType(orders []nt.Order, orderType string, limit int) []ItemSales {

	if limit <= 0 {
		limit = DefaultBestsellers
	}

	matched := []nt.Order{}
	for _, order := range orders {
		if order.OrderTypeName == orderType {
			matched = append(matched, order)
		}
	}
	return truncate(itemSales(matched), limit)
}

// Combo is a pair of menu items and the number of orders containing both.
type Combo struct {
	Items           [2]string `json:"items"`
	OccurrenceCount int       `json:"occurrence_count"`
}

// Combos finds pairs of distinct menu items ordered together at least
// minOccurrence times, most frequent first.
// Non-positive arguments fall back to two occurrences and ten pairs.
func Combos(orders []nt.Order, minOccurrence, limit int) []Combo {

	if minOccurrence <= 0 {
		minOccurrence = DefaultOccurrence
	}
	if limit <= 0 {
		limit = DefaultCombos
	}

	counts := map[[2]string]int{}
	for _, order := range orders {
		names := []string{}
		for _, item := range order.Items {
			names = append(names, item.MenuItemName)
		}
		slices.Sort(names)
		names = slices.Compact(names)

		for i := range names {
			for j := i + 1; j < len(names); j++ {
				counts[[2]string{names[i], names[j]}]++
			}
		}
	}

	out := []Combo{}
	for pair, count := range counts {
		if count < minOccurrence {
			continue
		}
		out = append(out, Combo{Items: pair, OccurrenceCount: count})
	}

	slices.SortFunc(out, func(a, b Combo) int {
		return cmp.Or(
			cmp.Compare(b.OccurrenceCount, a.OccurrenceCount),
			cmp.Compare(a.Items[0], b.Items[0]),
			cmp.Compare(a.Items[1], b.Items[1]),
		)
	})
	return truncate(out, limit)
}

// DiscountSales totals discounted orders in one time slot.
type DiscountSales struct {
	TimeSlot                 string  `json:"time_slot"`
	TotalOrders              int     `json:"total_orders"`
	TotalDiscount            float64 `json:"total_discount"`
	AvgDiscount              float64 `json:"avg_discount"`
	TotalSalesBeforeDiscount float64 `json:"total_sales_before_discount"`
	TotalSalesAfterDiscount  float64 `json:"total_sales_after_discount"`
}

// DiscountAnalysis summarizes orders with a non-zero discount per time slot.
func DiscountAnalysis(orders []nt.Order) []DiscountSales {

	groups := map[string]*DiscountSales{}
	for _, order := range orders {
		if order.Discount == 0 {
			continue
		}
		ds, ok := groups[order.TimeSlotName]
		if !ok {
			ds = &DiscountSales{TimeSlot: order.TimeSlotName}
			groups[order.TimeSlotName] = ds
		}
		ds.TotalOrders++
		ds.TotalDiscount += order.Discount
		ds.TotalSalesBeforeDiscount += order.TotalPrice
		ds.TotalSalesAfterDiscount += order.TotalPrice - order.Discount
	}

	out := []DiscountSales{}
	for _, ds := range groups {
		ds.AvgDiscount = average(ds.TotalDiscount, ds.TotalOrders)
		out = append(out, *ds)
	}

	slices.SortFunc(out, func(a, b DiscountSales) int {
		return cmp.Compare(a.TimeSlot, b.TimeSlot)
	})
	return out
}

// unexported

func itemSales(orders []nt.Order) []ItemSales {

	type key struct {
		category, name string
		price          float64
	}

	groups := map[key]*ItemSales{}
	for _, order := range orders {
		for _, item := range order.Items {
			k := key{item.CategoryName, item.MenuItemName, item.MenuItemPrice}
			is, ok := groups[k]
			if !ok {
				is = &ItemSales{Category: k.category, MenuItem: k.name, MenuItemPrice: k.price}
				groups[k] = is
			}
			is.TotalOrders++
			is.TotalSales += item.Price
		}
	}

	out := []ItemSales{}
	for _, is := range groups {
		out = append(out, *is)
	}

	slices.SortFunc(out, func(a, b ItemSales) int {
		return cmp.Or(
			cmp.Compare(b.TotalOrders, a.TotalOrders),
			cmp.Compare(b.TotalSales, a.TotalSales),
			cmp.Compare(a.MenuItem, b.MenuItem),
		)
	})
	return out
}
