package query

import (
	"slices"
	"strings"

	nt "cafedash/entity"
)

// Apply returns the orders accepted by every descriptor, in input order.
func Apply(orders []nt.Order, descs []nt.Descriptor) []nt.Order {

	matched := make([]nt.Order, 0, len(orders))
	for _, order := range orders {
		if AcceptAll(descs, order) {
			matched = append(matched, order)
		}
	}
	return matched
}

// AcceptAll reports whether every descriptor accepts the order.
func AcceptAll(descs []nt.Descriptor, order nt.Order) bool {
	for _, desc := range descs {
		if !Accept(desc, order) {
			return false
		}
	}
	return true
}

// Accept evaluates a single gate.
func Accept(desc nt.Descriptor, order nt.Order) bool {
	switch desc.Kind {
	case nt.TextSearch:
		return acceptText(desc, order.Items)
	case nt.CategoricalSet:
		if len(desc.Values) == 0 {
			return true
		}
		return slices.Contains(desc.Values, order.Label(desc.Attribute))
	case nt.NumericRange:
		return acceptRange(desc, order.TotalPrice)
	}
	return true
}

func acceptText(desc nt.Descriptor, items []nt.OrderItem) bool {

	if len(desc.Terms) == 0 {
		return true
	}

	// lowercase item text once per order rather than once per term
	haystack := make([]string, 0, len(items)*2)
	for _, item := range items {
		haystack = append(haystack, strings.ToLower(item.MenuItemName), strings.ToLower(item.CategoryName))
	}

	found := func(term string) bool {
		term = strings.ToLower(term)
		for _, text := range haystack {
			if strings.Contains(text, term) {
				return true
			}
		}
		return false
	}

	if desc.Mode.Normal() == nt.ModeOr {
		return slices.ContainsFunc(desc.Terms, found)
	}

	for _, term := range desc.Terms {
		if !found(term) {
			return false
		}
	}
	return true
}

func acceptRange(desc nt.Descriptor, price float64) bool {

	if desc.Min != nil && price < *desc.Min {
		return false
	}
	if desc.Max != nil && price > *desc.Max {
		return false
	}
	return true
}
