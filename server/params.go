package server

import (
	"net/url"
	"strconv"
	"strings"

	nt "cafedash/entity"
	"cafedash/query"
)

var attributeParams = map[nt.Attribute]string{
	nt.Gender:    "gender",
	nt.OrderType: "order_type",
	nt.Weather:   "weather",
	nt.TimeSlot:  "time_slot",
}

// ParseSession reads filter, sort and page from query params.
// Anything unparsable falls back to its default rather than erroring.
func ParseSession(values url.Values, pageSize int) query.Session {

	size, err := strconv.Atoi(values.Get("page_size"))
	if err != nil || size <= 0 {
		size = pageSize
	}
	sn := query.NewSession(size)

	sn = query.Update(sn, query.SetSearch{Input: values.Get("q")})
	sn = query.Update(sn, query.SetMode{Mode: nt.SearchMode(values.Get("mode"))})
	for _, attr := range nt.Categorical {
		sn = query.Update(sn, query.SetValues{Attribute: attr, Values: listParam(values, attributeParams[attr])})
	}
	sn = query.Update(sn, query.SetPriceMin{Text: values.Get("min")})
	sn = query.Update(sn, query.SetPriceMax{Text: values.Get("max")})

	col := nt.SortColumn(values.Get("sort"))
	if col.Sortable() {
		sn = query.Update(sn, query.SetSort{Sort: nt.Sort{Column: col}})
	}
	desc, err := strconv.ParseBool(values.Get("desc"))
	if err == nil {
		sn.Sort.Desc = desc
	}

	page, err := strconv.Atoi(values.Get("page"))
	if err == nil {
		sn = query.Update(sn, query.SetPage{Page: page})
	}

	return sn
}

// listParam accepts repeated params and comma separated values.
func listParam(values url.Values, key string) []string {

	out := []string{}
	for _, raw := range values[key] {
		for _, val := range strings.Split(raw, ",") {
			val = strings.TrimSpace(val)
			if val != "" {
				out = append(out, val)
			}
		}
	}
	return out
}
