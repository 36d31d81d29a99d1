package analytics

import (
	"time"

	nt "cafedash/entity"
	"cafedash/query"
)

const popularCategories = 5

// Demographics breaks orders down by customer attributes.
type Demographics struct {
	GenderDistribution []Count `json:"gender_distribution"`
}

// Dashboard rolls up one day, week or month.
type Dashboard struct {
	Period         Period          `json:"period"`
	Start          string          `json:"start"`
	End            string          `json:"end"`
	SalesSummary   Summary         `json:"sales_summary"`
	Orders         []nt.Order      `json:"orders"`
	TakeoutRate    float64         `json:"takeout_rate"`
	PopularItems   []CategorySales `json:"popular_items"`
	CustomerCount  int             `json:"customer_count"`
	AvgOrderValue  float64         `json:"avg_order_value"`
	TotalDiscount  float64         `json:"total_discount"`
	HourlySales    []HourlySales   `json:"hourly_sales,omitempty"`
	Weather        []Count         `json:"weather_distribution,omitempty"`
	SalesBreakdown []PeriodSales   `json:"sales_breakdown,omitempty"`
	Demographics   Demographics    `json:"customer_demographics"`
}

// LatestDate is the calendar date of the newest parsable order.
func LatestDate(orders []nt.Order) (latest time.Time, ok bool) {

	for _, order := range orders {
		tm, err := order.Time()
		if err != nil {
			continue
		}
		day := dateOf(tm)
		if !ok || day.After(latest) {
			latest, ok = day, true
		}
	}
	return
}

// TargetDate parses a YYYY-MM-DD date, falling back to the latest order date
// and then to today when blank. Unparsable text is reported as not ok.
func TargetDate(orders []nt.Order, text string, now time.Time) (target time.Time, ok bool) {

	if text != "" {
		parsed := parseDate(text)
		if parsed == nil {
			return
		}
		return *parsed, true
	}

	target, ok = LatestDate(orders)
	if !ok {
		target, ok = dateOf(now), true
	}
	return
}

// BuildDashboard rolls up the period containing target.
func BuildDashboard(orders []nt.Order, period Period, target time.Time) Dashboard {

	start := period.Start(target)
	end := period.End(start)

	inPeriod := query.SortOrders(Within(orders, DateRange(start, end)), nt.Sort{Column: nt.SortTimestamp})
	summary := SalesSummary(inPeriod)

	dash := Dashboard{
		Period:        period,
		Start:         start.Format(dateLayout),
		End:           end.Format(dateLayout),
		SalesSummary:  summary,
		Orders:        inPeriod,
		TakeoutRate:   TakeoutRate(inPeriod),
		PopularItems:  SalesByCategory(inPeriod, popularCategories),
		CustomerCount: summary.TotalOrders,
		AvgOrderValue: summary.AvgOrderValue,
		TotalDiscount: summary.TotalDiscount,
		Demographics: Demographics{
			GenderDistribution: Distribution(inPeriod, nt.Gender),
		},
	}

	switch period {
	case Daily:
		dash.HourlySales = SalesByHour(inPeriod)
	case Weekly:
		dash.Weather = Distribution(inPeriod, nt.Weather)
		dash.SalesBreakdown = SalesByPeriod(inPeriod, Daily)
	case Monthly:
		dash.Weather = Distribution(inPeriod, nt.Weather)
		dash.SalesBreakdown = SalesByPeriod(inPeriod, Weekly)
	}

	return dash
}
