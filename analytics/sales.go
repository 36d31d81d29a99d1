package analytics

import (
	"cmp"
	"slices"
	"time"

	nt "cafedash/entity"
)

// Summary totals a set of orders.
type Summary struct {
	TotalAmount   float64 `json:"total_amount"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	TotalDiscount float64 `json:"total_discount"`
	NetSales      float64 `json:"net_sales"`
}

func SalesSummary(orders []nt.Order) Summary {

	var sum Summary
	for _, order := range orders {
		sum.TotalAmount += order.TotalPrice
		sum.TotalDiscount += order.Discount
		sum.TotalOrders++
	}
	sum.NetSales = sum.TotalAmount - sum.TotalDiscount
	sum.AvgOrderValue = average(sum.TotalAmount, sum.TotalOrders)
	return sum
}

// Period is a calendar bucket size.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod falls back to daily.
func ParsePeriod(text string) Period {
	switch Period(text) {
	case Weekly:
		return Weekly
	case Monthly:
		return Monthly
	}
	return Daily
}

// Start truncates a date to the start of its bucket; weeks start on Monday.
func (period Period) Start(tm time.Time) time.Time {

	day := dateOf(tm)
	switch period {
	case Weekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return day
}

// End is the last date of the bucket starting at start.
func (period Period) End(start time.Time) time.Time {
	switch period {
	case Weekly:
		return start.AddDate(0, 0, 6)
	case Monthly:
		return start.AddDate(0, 1, -1)
	}
	return start
}

// PeriodSales totals one calendar bucket.
type PeriodSales struct {
	Period        string  `json:"period"`
	TotalSales    float64 `json:"total_sales"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	TotalDiscount float64 `json:"total_discount"`
	NetSales      float64 `json:"net_sales"`
}

// SalesByPeriod buckets orders by date, skipping unparsable timestamps.
func SalesByPeriod(orders []nt.Order, period Period) []PeriodSales {

	buckets := map[string]*PeriodSales{}
	for _, order := range orders {
		tm, err := order.Time()
		if err != nil {
			continue
		}

		key := period.Start(tm).Format(dateLayout)
		ps, ok := buckets[key]
		if !ok {
			ps = &PeriodSales{Period: key}
			buckets[key] = ps
		}
		ps.TotalSales += order.TotalPrice
		ps.TotalDiscount += order.Discount
		ps.TotalOrders++
	}

	out := []PeriodSales{}
	for _, ps := range buckets {
		ps.NetSales = ps.TotalSales - ps.TotalDiscount
		ps.AvgOrderValue = average(ps.TotalSales, ps.TotalOrders)
		out = append(out, *ps)
	}

	slices.SortFunc(out, func(a, b PeriodSales) int {
		return cmp.Compare(a.Period, b.Period)
	})
	return out
}

// FactorSales totals orders sharing one label.
type FactorSales struct {
	Name          string  `json:"name"`
	TotalSales    float64 `json:"total_sales"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// SalesByFactor groups by a categorical attribute, biggest sales first.
func SalesByFactor(orders []nt.Order, attr nt.Attribute) []FactorSales {

	groups := map[string]*FactorSales{}
	for _, order := range orders {
		name := order.Label(attr)
		fs, ok := groups[name]
		if !ok {
			fs = &FactorSales{Name: name}
			groups[name] = fs
		}
		fs.TotalSales += order.TotalPrice
		fs.TotalOrders++
	}

	out := []FactorSales{}
	for _, fs := range groups {
		fs.AvgOrderValue = average(fs.TotalSales, fs.TotalOrders)
		out = append(out, *fs)
	}

	slices.SortFunc(out, func(a, b FactorSales) int {
		return cmp.Or(cmp.Compare(b.TotalSales, a.TotalSales), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// CategorySales totals item lines of one category.
type CategorySales struct {
	Category   string  `json:"category"`
	TotalSales float64 `json:"total_sales"`
	ItemsSold  int     `json:"items_sold"`
}

// SalesByCategory sums realized item prices per category, biggest first.
// A non-positive limit returns every category.
func SalesByCategory(orders []nt.Order, limit int) []CategorySales {

	groups := map[string]*CategorySales{}
	for _, order := range orders {
		for _, item := range order.Items {
			cs, ok := groups[item.CategoryName]
			if !ok {
				cs = &CategorySales{Category: item.CategoryName}
				groups[item.CategoryName] = cs
			}
			cs.TotalSales += item.Price
			cs.ItemsSold++
		}
	}

	out := []CategorySales{}
	for _, cs := range groups {
		out = append(out, *cs)
	}

	slices.SortFunc(out, func(a, b CategorySales) int {
		return cmp.Or(cmp.Compare(b.TotalSales, a.TotalSales), cmp.Compare(a.Category, b.Category))
	})
	return truncate(out, limit)
}

// TakeoutRate is the percentage of takeout orders, zero when empty.
func TakeoutRate(orders []nt.Order) float64 {

	if len(orders) == 0 {
		return 0
	}

	takeout := 0
	for _, order := range orders {
		if order.OrderTypeName == nt.Takeout {
			takeout++
		}
	}
	return float64(takeout) / float64(len(orders)) * 100
}

// HourlySales totals one hour of the day.
type HourlySales struct {
	Hour       int     `json:"hour"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int     `json:"order_count"`
}

// SalesByHour groups by the hour of the order's own timestamp.
func SalesByHour(orders []nt.Order) []HourlySales {

	groups := map[int]*HourlySales{}
	for _, order := range orders {
		tm, err := order.Time()
		if err != nil {
			continue
		}
		hs, ok := groups[tm.Hour()]
		if !ok {
			hs = &HourlySales{Hour: tm.Hour()}
			groups[tm.Hour()] = hs
		}
		hs.TotalSales += order.TotalPrice
		hs.OrderCount++
	}

	out := []HourlySales{}
	for _, hs := range groups {
		out = append(out, *hs)
	}

	slices.SortFunc(out, func(a, b HourlySales) int {
		return cmp.Compare(a.Hour, b.Hour)
	})
	return out
}

// CrossSales totals one weather and time slot pair.
type CrossSales struct {
	Weather       string  `json:"weather"`
	TimeSlot      string  `json:"time_slot"`
	TotalSales    float64 `json:"total_sales"`
	OrderCount    int     `json:"order_count"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// WeatherTimeSlot cross tabulates weather against time slot.
func WeatherTimeSlot(orders []nt.Order) []CrossSales {

	type key struct{ weather, slot string }

	groups := map[key]*CrossSales{}
	for _, order := range orders {
		k := key{order.WeatherName, order.TimeSlotName}
		cs, ok := groups[k]
		if !ok {
			cs = &CrossSales{Weather: k.weather, TimeSlot: k.slot}
			groups[k] = cs
		}
		cs.TotalSales += order.TotalPrice
		cs.OrderCount++
	}

	out := []CrossSales{}
	for _, cs := range groups {
		cs.AvgOrderValue = average(cs.TotalSales, cs.OrderCount)
		out = append(out, *cs)
	}

	slices.SortFunc(out, func(a, b CrossSales) int {
		return cmp.Or(cmp.Compare(a.Weather, b.Weather), cmp.Compare(a.TimeSlot, b.TimeSlot))
	})
	return out
}

// Count is a label and how many orders carry it.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Distribution counts orders per label of a categorical attribute, most first.
func Distribution(orders []nt.Order, attr nt.Attribute) []Count {

	counts := map[string]int{}
	for _, order := range orders {
		counts[order.Label(attr)]++
	}

	out := []Count{}
	for name, count := range counts {
		out = append(out, Count{Name: name, Count: count})
	}

	slices.SortFunc(out, func(a, b Count) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// unexported

func average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func truncate[T any](list []T, limit int) []T {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
