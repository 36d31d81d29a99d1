package cafedash

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "cafedash/entity"
	"cafedash/message"
	"cafedash/store/memo"
	"cafedash/store/storetest"
	"cafedash/util/utiltest"
)

type fakeFetcher struct {
	orders []nt.Order
	err    error
}

func (ff *fakeFetcher) FetchOrders(ctx context.Context) ([]nt.Order, error) {
	return ff.orders, ff.err
}

func key(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(text)[0], Text: text}
}

// drive feeds msg to the model and follows commands until none remain
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd == nil {
			break
		}
		msg = cmd()
	}
	return m
}

func newModel(t *testing.T, fetcher *fakeFetcher) Model {
	t.Helper()

	m, err := NewModel(context.Background(), memo.New("test"), fetcher, "", utiltest.NopLogger{})
	require.NoError(t, err)

	m = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	return drive(t, m, m.Init()())
}

func TestInitLoadsFirstPage(t *testing.T) {

	m := newModel(t, &fakeFetcher{orders: storetest.Many(25)})

	row, total := m.TablePanel.Position()
	assert.Equal(t, 1, row)
	assert.Equal(t, 25, total)

	page, count := m.TablePanel.Pages()
	assert.Equal(t, 1, page)
	assert.Equal(t, 3, count)

	// newest first
	id, err := m.TablePanel.SelectedId()
	require.NoError(t, err)
	assert.Equal(t, "o024", id)
}

func TestPagingKeys(t *testing.T) {

	m := newModel(t, &fakeFetcher{orders: storetest.Many(25)})

	m = drive(t, m, key("n"))
	page, _ := m.TablePanel.Pages()
	assert.Equal(t, 2, page)
	assert.Equal(t, 1, m.Session.Page)

	m = drive(t, m, key("n"))
	m = drive(t, m, key("n"))
	row, _ := m.TablePanel.Position()
	assert.Equal(t, 21, row)
	assert.Equal(t, 2, m.Session.Page)

	m = drive(t, m, key("p"))
	assert.Equal(t, 1, m.Session.Page)
}

func TestFilterShrinksView(t *testing.T) {

	m := newModel(t, &fakeFetcher{orders: storetest.Many(45)})

	m = drive(t, m, message.GetPageMsg{Page: 4})
	assert.Equal(t, 4, m.Session.Page)

	m = drive(t, m, message.SetFilterMsg{Filter: nt.FilterState{PriceMax: "1500"}})
	assert.Equal(t, 1, m.Session.Page)
	assert.Equal(t, []string{"価格: 0円 - 1,500円"}, m.Badges)

	_, total := m.TablePanel.Position()
	assert.Equal(t, 15, total)
}

func TestFilterDialog(t *testing.T) {

	m := newModel(t, &fakeFetcher{orders: storetest.Scenario()})

	m = drive(t, m, key("/"))
	assert.Equal(t, FilterScreen, m.CurrentScreen)

	// keys go to the dialog, not the table
	m = drive(t, m, key("q"))
	assert.Equal(t, FilterScreen, m.CurrentScreen)
	assert.Equal(t, "q", m.Session.Filter.Search)

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "", m.Session.Filter.Search)

	// down to gender, right to 女性, toggle
	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeySpace})
	assert.Equal(t, []string{"女性"}, m.Session.Filter.Genders)

	_, total := m.TablePanel.Position()
	assert.Equal(t, 2, total)

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, TableScreen, m.CurrentScreen)

	m = drive(t, m, key("x"))
	_, total = m.TablePanel.Position()
	assert.Equal(t, 3, total)
	assert.Empty(t, m.Badges)
}

func TestSortKeys(t *testing.T) {

	m := newModel(t, &fakeFetcher{orders: storetest.Scenario()})

	m = drive(t, m, key("s"))
	assert.Equal(t, nt.Sort{Column: nt.SortID}, m.Session.Sort)
	id, _ := m.TablePanel.SelectedId()
	assert.Equal(t, "O1", id)

	m = drive(t, m, key("S"))
	assert.Equal(t, nt.Sort{Column: nt.SortID, Desc: true}, m.Session.Sort)
	id, _ = m.TablePanel.SelectedId()
	assert.Equal(t, "O3", id)
}

func TestDetailScreen(t *testing.T) {

	m := newModel(t, &fakeFetcher{orders: storetest.Scenario()})

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, DetailScreen, m.CurrentScreen)
	assert.Contains(t, m.DetailPanel.Render(), "O3")

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, TableScreen, m.CurrentScreen)
}

func TestFetchFailure(t *testing.T) {

	fetcher := &fakeFetcher{orders: storetest.Scenario()}
	m := newModel(t, fetcher)

	fetcher.err = errors.New("connection refused")
	m = drive(t, m, key("R"))

	assert.Equal(t, "connection refused", m.errorString)
	row, total := m.TablePanel.Position()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, total)
	assert.Contains(t, m.footer().Render(120), "connection refused")

	fetcher.err = nil
	m = drive(t, m, key("R"))
	assert.Equal(t, "", m.errorString)
	_, total = m.TablePanel.Position()
	assert.Equal(t, 3, total)
}

func TestLoadFailureEmptiesTable(t *testing.T) {

	fetcher := &fakeFetcher{orders: storetest.Scenario()}
	lgr := &utiltest.Recorder{}

	m, err := NewModel(context.Background(), memo.New("test"), fetcher, "", lgr)
	require.NoError(t, err)
	m = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	m = drive(t, m, m.Init()())

	_, total := m.TablePanel.Position()
	require.Equal(t, 3, total)

	fetcher.orders = append(storetest.Scenario(), storetest.Scenario()[0])
	m = drive(t, m, key("R"))

	assert.Contains(t, m.errorString, "duplicate order id")
	_, total = m.TablePanel.Position()
	assert.Equal(t, 0, total)
	assert.NotContains(t, m.TablePanel.Render(), "O1")

	require.Len(t, lgr.Errors(), 1)
	assert.Contains(t, lgr.Errors()[0], "failed to load orders")
}

func TestQuit(t *testing.T) {

	m := newModel(t, &fakeFetcher{})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNextSortColumn(t *testing.T) {

	assert.Equal(t, nt.SortID, nextSortColumn(nt.SortTimestamp))
	assert.Equal(t, nt.SortTimestamp, nextSortColumn(nt.SortDiscount))
	assert.Equal(t, nt.SortTimestamp, nextSortColumn("bogus"))
}

func TestLoadLayout(t *testing.T) {

	layout, err := LoadLayout("layout.yaml")
	require.NoError(t, err)

	assert.Len(t, layout.Columns, 10)
	assert.True(t, layout.Columns[8].Hidden)
	assert.Equal(t, nt.DefaultSort, layout.Sort)
	assert.Equal(t, 10, layout.PageSize)
	assert.Equal(t, nt.ModeAnd, layout.Filter.Mode)

	_, err = LoadLayout("nope.yaml")
	assert.Error(t, err)
}

func TestFooter(t *testing.T) {

	ftr := Footer{Row: 3, Total: 25, Page: 1, PageCount: 3, Sort: nt.DefaultSort, Source: "api", Badges: []string{"性別: 女性"}}
	out := ftr.Render(80)

	assert.Contains(t, out, "3/25")
	assert.Contains(t, out, "page 1/3")
	assert.Contains(t, out, "sort timestamp ↓")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "性別: 女性")
}
