package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafedash/analytics"
	nt "cafedash/entity"
	"cafedash/metrics"
	"cafedash/store/storetest"
	"cafedash/util/utiltest"
)

type fakeFetcher struct {
	calls       int
	invalidated int
	orders      []nt.Order
	err         error
}

func (ff *fakeFetcher) FetchOrders(ctx context.Context) ([]nt.Order, error) {
	ff.calls++
	return ff.orders, ff.err
}

func (ff *fakeFetcher) Invalidate(ctx context.Context) error {
	ff.invalidated++
	return nil
}

type clock struct{ now time.Time }

func (clk *clock) Now() time.Time { return clk.now }

func setup(t *testing.T) (*Server, *fakeFetcher, *clock) {

	ff := &fakeFetcher{orders: storetest.Scenario()}
	clk := &clock{now: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)}

	cfg := &Config{}
	svr := cfg.New(ff, metrics.NewRegistry(), utiltest.NopLogger{})
	svr.now = clk.Now

	return svr, ff, clk
}

func get(t *testing.T, svr *Server, method, target string, out any) int {

	rec := httptest.NewRecorder()
	svr.Router().ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	if out != nil {
		err := json.Unmarshal(rec.Body.Bytes(), out)
		require.NoError(t, err, rec.Body.String())
	}
	return rec.Code
}

func TestParseSession(t *testing.T) {

	values, err := url.ParseQuery("q=コーヒー+ケーキ&mode=or&gender=女性&weather=晴れ,雨&weather=曇り&min=abc&max=1000&sort=total_price&desc=true&page=2&page_size=5")
	require.NoError(t, err)

	sn := ParseSession(values, 10)
	assert.Equal(t, nt.FilterState{
		Search:     "コーヒー ケーキ",
		Mode:       nt.ModeOr,
		Genders:    []string{"女性"},
		OrderTypes: []string{},
		Weathers:   []string{"晴れ", "雨", "曇り"},
		TimeSlots:  []string{},
		PriceMin:   "abc",
		PriceMax:   "1000",
	}, sn.Filter)
	assert.Equal(t, nt.Sort{Column: nt.SortTotalPrice, Desc: true}, sn.Sort)
	assert.Equal(t, 2, sn.Page)
	assert.Equal(t, 5, sn.PageSize)

	sn = ParseSession(url.Values{"sort": {"items"}, "page_size": {"-3"}}, 0)
	assert.Equal(t, nt.DefaultSort, sn.Sort)
	assert.Equal(t, 10, sn.PageSize)
	assert.Equal(t, nt.ModeAnd, sn.Filter.Mode)
}

func TestListOrders(t *testing.T) {

	svr, ff, _ := setup(t)

	var resp struct {
		Orders []nt.Order `json:"orders"`
		Total  int        `json:"total"`
		Page   int        `json:"page"`
		Badges []string   `json:"badges"`
	}

	code := get(t, svr, "GET", "/api/orders?gender=女性&max=1000", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"O3"}, storetest.IDs(resp.Orders))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, []string{"性別: 女性", "価格: 0円 - 1,000円"}, resp.Badges)

	// page past the end is clamped
	code = get(t, svr, "GET", "/api/orders?page=9&sort=id", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Page)
	assert.Equal(t, []string{"O1", "O2", "O3"}, storetest.IDs(resp.Orders))

	// snapshot reused within max age
	assert.Equal(t, 1, ff.calls)
}

func TestSnapshotExpires(t *testing.T) {

	svr, ff, clk := setup(t)

	get(t, svr, "GET", "/api/orders", nil)
	clk.now = clk.now.Add(61 * time.Second)
	get(t, svr, "GET", "/api/orders", nil)

	assert.Equal(t, 2, ff.calls)
}

func TestFetchFailure(t *testing.T) {

	svr, ff, clk := setup(t)

	get(t, svr, "GET", "/api/orders", nil)

	ff.err = errors.New("backend down")
	clk.now = clk.now.Add(time.Hour)

	var resp errorResponse
	code := get(t, svr, "GET", "/api/orders", &resp)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, resp.Error, "backend down")

	orders, _ := svr.snap.get()
	assert.Empty(t, orders)
}

func TestGetOrder(t *testing.T) {

	svr, _, _ := setup(t)

	var order nt.Order
	code := get(t, svr, "GET", "/api/orders/O2", &order)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ケーキ", order.Items[0].MenuItemName)

	code = get(t, svr, "GET", "/api/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRefresh(t *testing.T) {

	svr, ff, _ := setup(t)

	var resp refreshResponse
	code := get(t, svr, "POST", "/api/orders/refresh", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, resp.Count)

	code = get(t, svr, "POST", "/api/orders/refresh", &resp)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, 2, ff.calls)
	assert.Equal(t, 2, ff.invalidated)
}

func TestSalesRoutes(t *testing.T) {

	svr, _, _ := setup(t)

	var summary analytics.Summary
	code := get(t, svr, "GET", "/api/sales/sales_summary", &summary)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 2600.0, summary.TotalAmount)
	assert.Equal(t, 2550.0, summary.NetSales)

	code = get(t, svr, "GET", "/api/sales/sales_summary?start_date=2024-03-02", &summary)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, summary.TotalOrders)

	var cats []analytics.CategorySales
	code = get(t, svr, "GET", "/api/sales/category_sales?limit=1", &cats)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, cats, 1)
	assert.Equal(t, "ケーキ", cats[0].Category)

	var periods []analytics.PeriodSales
	code = get(t, svr, "GET", "/api/sales/period_sales?period=monthly", &periods)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, periods, 1)
	assert.Equal(t, "2024-03-01", periods[0].Period)

	for _, path := range []string{
		"/api/sales/sales_by_weather",
		"/api/sales/sales_by_gender",
		"/api/sales/weather_timeslot_analysis",
		"/api/sales/hourly_sales",
		"/api/products/bestsellers?limit=2",
		"/api/products/discount_analysis",
		"/api/products/dine_in_popular_items",
		"/api/menu-items/categories",
	} {
		code = get(t, svr, "GET", path, nil)
		assert.Equal(t, http.StatusOK, code, path)
	}
}

func TestProductRoutes(t *testing.T) {

	svr, _, _ := setup(t)

	var popular []analytics.ItemSales
	code := get(t, svr, "GET", "/api/products/dine_in_popular", &popular)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, popular, 2)
	assert.Equal(t, "コーヒー", popular[0].MenuItem)
	assert.Equal(t, 2, popular[0].TotalOrders)

	code = get(t, svr, "GET", "/api/products/takeout_popular?limit=5", &popular)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, popular, 1)
	assert.Equal(t, "ケーキ", popular[0].MenuItem)

	var combos []analytics.Combo
	code = get(t, svr, "GET", "/api/products/combo_analysis?min_occurrence=1", &combos)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []analytics.Combo{{Items: [2]string{"ケーキ", "コーヒー"}, OccurrenceCount: 1}}, combos)

	code = get(t, svr, "GET", "/api/products/combo_analysis", &combos)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, combos)
}

func TestMenuItems(t *testing.T) {

	svr, _, _ := setup(t)

	var items []analytics.MenuItem
	code := get(t, svr, "GET", "/api/menu-items", &items)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, items, 2)

	code = get(t, svr, "GET", "/api/menu-items?"+url.Values{"category": {"ケーキ"}}.Encode(), &items)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, items, 1)
	assert.Equal(t, "ケーキ", items[0].Name)

	code = get(t, svr, "GET", "/api/menu-items?"+url.Values{"q": {"コー"}, "category": {"all"}}.Encode(), &items)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, items, 1)
	assert.Equal(t, "コーヒー", items[0].Name)
}

func TestDashboard(t *testing.T) {

	svr, _, _ := setup(t)

	var dash analytics.Dashboard
	code := get(t, svr, "GET", "/api/dashboard/daily", &dash)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-01", dash.Start)
	assert.Equal(t, 3, dash.CustomerCount)

	code = get(t, svr, "GET", "/api/dashboard/weekly?date=2024-03-10", &dash)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-04", dash.Start)
	assert.Equal(t, 0, dash.CustomerCount)

	code = get(t, svr, "GET", "/api/dashboard/weekly?date=10-03-2024", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = get(t, svr, "GET", "/api/dashboard/yearly", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetricsRoute(t *testing.T) {

	svr, _, _ := setup(t)
	get(t, svr, "GET", "/api/orders", nil)

	rec := httptest.NewRecorder()
	svr.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "cafedash_fetches_total 1"))
}
