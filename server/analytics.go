package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"cafedash/analytics"
	nt "cafedash/entity"
)

// report fetches the snapshot, narrows it to start_date and end_date, and
// sends whatever build makes of it.
func (svr *Server) report(build func(orders []nt.Order, r *http.Request) any) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		orders, err := svr.orders(r.Context())
		if err != nil {
			svr.sendError(w, r, http.StatusBadGateway, err)
			return
		}

		values := r.URL.Query()
		rng := analytics.ParseRange(values.Get("start_date"), values.Get("end_date"))

		svr.sendJSON(w, r, http.StatusOK, build(analytics.Within(orders, rng), r))
	}
}

func salesSummary(orders []nt.Order, _ *http.Request) any {
	return analytics.SalesSummary(orders)
}

func categorySales(orders []nt.Order, r *http.Request) any {
	return analytics.SalesByCategory(orders, intParam(r, "limit"))
}

func salesByWeather(orders []nt.Order, _ *http.Request) any {
	return analytics.SalesByFactor(orders, nt.Weather)
}

func salesByGender(orders []nt.Order, _ *http.Request) any {
	return analytics.SalesByFactor(orders, nt.Gender)
}

func weatherTimeSlot(orders []nt.Order, _ *http.Request) any {
	return analytics.WeatherTimeSlot(orders)
}

func hourlySales(orders []nt.Order, _ *http.Request) any {
	return analytics.SalesByHour(orders)
}

func periodSales(orders []nt.Order, r *http.Request) any {
	return analytics.SalesByPeriod(orders, analytics.ParsePeriod(r.URL.Query().Get("period")))
}

func bestsellers(orders []nt.Order, r *http.Request) any {
	return analytics.Bestsellers(orders, intParam(r, "limit"))
}

func discountAnalysis(orders []nt.Order, _ *http.Request) any {
	return analytics.DiscountAnalysis(orders)
}

func dineInBySlot(orders []nt.Order, _ *http.Request) any {
	return analytics.DineInPopular(orders)
}

func dineInPopular(orders []nt.Order, r *http.Request) any {
	return analytics.PopularByType(orders, nt.DineIn, intParam(r, "limit"))
}

func takeoutPopular(orders []nt.Order, r *http.Request) any {
	return analytics.PopularByType(orders, nt.Takeout, intParam(r, "limit"))
}

func comboAnalysis(orders []nt.Order, r *http.Request) any {
	return analytics.Combos(orders, intParam(r, "min_occurrence"), intParam(r, "limit"))
}

func menuItems(orders []nt.Order, r *http.Request) any {
	values := r.URL.Query()
	return analytics.FilterMenu(analytics.Menu(orders), values.Get("q"), values.Get("category"))
}

func menuCategories(orders []nt.Order, _ *http.Request) any {
	return analytics.MenuCategories(analytics.Menu(orders))
}

func (svr *Server) dashboard(w http.ResponseWriter, r *http.Request) {

	period := analytics.Period(chi.URLParam(r, "period"))
	if period != analytics.Daily && period != analytics.Weekly && period != analytics.Monthly {
		svr.sendError(w, r, http.StatusNotFound, errors.Errorf("unknown dashboard %q", period))
		return
	}

	orders, err := svr.orders(r.Context())
	if err != nil {
		svr.sendError(w, r, http.StatusBadGateway, err)
		return
	}

	target, ok := analytics.TargetDate(orders, r.URL.Query().Get("date"), svr.now())
	if !ok {
		svr.sendError(w, r, http.StatusBadRequest, errors.New("invalid date format"))
		return
	}

	svr.sendJSON(w, r, http.StatusOK, analytics.BuildDashboard(orders, period, target))
}

// intParam is zero when missing or malformed.
func intParam(r *http.Request, key string) int {
	val, _ := strconv.Atoi(r.URL.Query().Get(key))
	return val
}
