// Package query filters, sorts and pages an in-memory order snapshot.
package query

import (
	"math"
	"strconv"
	"strings"

	nt "cafedash/entity"
)

// Tokenize splits raw search input into lowercase terms.
// Runs of whitespace collapse to one separator and empty tokens are dropped.
func Tokenize(input string) []string {

	fields := strings.Fields(input)
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		terms = append(terms, strings.ToLower(field))
	}
	return terms
}

// ParseBound parses a price bound, returning nil for blank, non-numeric
// or non-finite text.
func ParseBound(text string) *float64 {

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return nil
	}
	return &val
}

// Build converts filter inputs into descriptors, one per active attribute.
func Build(state nt.FilterState) (descs []nt.Descriptor) {

	descs = []nt.Descriptor{}

	terms := Tokenize(state.Search)
	if len(terms) > 0 {
		descs = append(descs, nt.Descriptor{
			Attribute: nt.Items,
			Kind:      nt.Items.Kind(),
			Terms:     terms,
			Mode:      state.Mode.Normal(),
		})
	}

	for _, attr := range nt.Categorical {
		selected := state.Selected(attr)
		if len(selected) == 0 {
			continue
		}
		descs = append(descs, nt.Descriptor{
			Attribute: attr,
			Kind:      attr.Kind(),
			Values:    append([]string{}, selected...),
		})
	}

	lo, hi := ParseBound(state.PriceMin), ParseBound(state.PriceMax)
	if lo != nil || hi != nil {
		descs = append(descs, nt.Descriptor{
			Attribute: nt.TotalPrice,
			Kind:      nt.TotalPrice.Kind(),
			Min:       lo,
			Max:       hi,
		})
	}

	return
}

// Badges renders the summary line of each descriptor.
func Badges(descs []nt.Descriptor) []string {

	badges := make([]string, len(descs))
	for i, desc := range descs {
		badges[i] = desc.Badge()
	}
	return badges
}
