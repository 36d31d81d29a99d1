package duck

import (
	"testing"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "cafedash/entity"
	"cafedash/query"
	"cafedash/store/storetest"
)

func TestBuildWhereClause(t *testing.T) {

	where, args := buildWhereClause(nil)
	assert.Equal(t, "", where)
	assert.Nil(t, args)

	where, args = buildWhereClause(query.Build(nt.FilterState{
		Genders:  []string{"男性", "女性"},
		PriceMin: "500",
		PriceMax: "1000",
	}))
	assert.Equal(t, "WHERE o.gender_name IN (?, ?) AND (o.total_price >= ? AND o.total_price <= ?)", where)
	assert.Equal(t, []any{"男性", "女性", 500.0, 1000.0}, args)
}

func TestBuildFilterExprSearch(t *testing.T) {

	descs := query.Build(nt.FilterState{Search: "Latte  cake", Mode: nt.ModeOr})
	require.Len(t, descs, 1)

	expr, args := buildFilterExpr(descs[0])
	assert.Contains(t, expr, ") OR EXISTS")
	assert.Equal(t, []any{"latte", "latte", "cake", "cake"}, args)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "ORDER BY o.total_price DESC, o.seq", orderBy(nt.Sort{Column: nt.SortTotalPrice, Desc: true}))
	assert.Equal(t, "ORDER BY o.seq", orderBy(nt.Sort{Column: "items"}))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestDuckMatchesEvaluator(t *testing.T) {

	dk, err := New("test")
	require.NoError(t, err)
	defer dk.Close()

	orders := storetest.Scenario()
	require.NoError(t, dk.Load(orders))

	filters := []nt.FilterState{
		{},
		{Genders: []string{"女性"}, PriceMax: "1000"},
		{Search: "コーヒー ケーキ", Mode: nt.ModeAnd},
		{Search: "コーヒー ケーキ", Mode: nt.ModeOr},
		{OrderTypes: []string{nt.DineIn}, Weathers: []string{"晴れ"}},
	}
	for _, filter := range filters {
		srt := nt.Sort{Column: nt.SortTotalPrice}
		require.NoError(t, dk.SetView(filter, srt))

		_, count, err := dk.GetView()
		require.NoError(t, err)

		page, err := dk.GetPage(0, 10)
		require.NoError(t, err)

		want := query.SortOrders(query.Apply(orders, query.Build(filter)), srt)
		assert.Equal(t, len(want), count)
		assert.Equal(t, storetest.IDs(want), storetest.IDs(page))
	}
}

func TestDuckTimestampOrderMatchesMemo(t *testing.T) {

	dk, err := New("test")
	require.NoError(t, err)
	defer dk.Close()

	orders := []nt.Order{
		{ID: "C", Timestamp: "2024-03-01 07:00 bad"},
		{ID: "B", Timestamp: "2024-03-01T05:00:00Z"},
		{ID: "D", Timestamp: "2024-03-01 06:00 bad"},
		{ID: "A", Timestamp: "2024-03-01T10:00:00+09:00"},
	}
	require.NoError(t, dk.Load(orders))

	for _, desc := range []bool{false, true} {
		srt := nt.Sort{Column: nt.SortTimestamp, Desc: desc}
		require.NoError(t, dk.SetView(nt.FilterState{}, srt))

		page, err := dk.GetPage(0, 10)
		require.NoError(t, err)
		assert.Equal(t, storetest.IDs(query.SortOrders(orders, srt)), storetest.IDs(page))
	}
}

func TestDuckReloadAndLookup(t *testing.T) {

	dk, err := New("test")
	require.NoError(t, err)
	defer dk.Close()

	require.NoError(t, dk.Load(storetest.Scenario()))
	require.NoError(t, dk.Load(storetest.Many(12)))

	_, count, err := dk.GetView()
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	page, err := dk.GetPage(10, 10)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	_, err = dk.GetOrder("O3")
	assert.True(t, errors.Is(err, nt.ErrNotFound))

	require.NoError(t, dk.Load(storetest.Scenario()))
	order, err := dk.GetOrder("O3")
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "コーヒー", order.Items[0].MenuItemName)
	assert.Equal(t, 550.0, order.FinalPrice)
}
