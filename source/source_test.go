package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafedash/util/utiltest"
)

const ordersJson = `[
  {"id": "O1", "timestamp": "2024-03-01T09:00:00+09:00", "gender": 1, "gender_name": "男性",
   "total_price": 800, "discount": 0, "final_price": 800,
   "items": [{"id": "i1", "menu_item": 3, "menu_item_name": "コーヒー", "menu_item_price": 800,
              "category_name": "ドリンク", "price": 800}]},
  {"id": "O2", "timestamp": "2024-03-01T12:00:00+09:00", "gender_name": "女性", "total_price": 1200,
   "items": null}
]`

func TestDecode(t *testing.T) {

	orders, err := Decode([]byte(ordersJson))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "コーヒー", orders[0].Items[0].MenuItemName)
	assert.Equal(t, 3, orders[0].Items[0].MenuItem)
	assert.NotNil(t, orders[1].Items)
	assert.Empty(t, orders[1].Items)

	orders, err = Decode([]byte(`  {"count": 1, "results": [{"id": "O9"}]}`))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "O9", orders[0].ID)
	assert.NotNil(t, orders[0].Items)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestClientFetchOrders(t *testing.T) {

	var path string
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ordersJson))
	}))
	defer svr.Close()

	clt := NewClient(svr.URL+"/api/", time.Second, utiltest.NopLogger{})
	orders, err := clt.FetchOrders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/orders/", path)
	assert.Len(t, orders, 2)
}

func TestClientFetchOrdersStatus(t *testing.T) {

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer svr.Close()

	clt := NewClient(svr.URL, time.Second, utiltest.NopLogger{})
	_, err := clt.FetchOrders(context.Background())
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestClientFetchOrdersCancelled(t *testing.T) {

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer svr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clt := NewClient(svr.URL, time.Second, utiltest.NopLogger{})
	_, err := clt.FetchOrders(ctx)
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {

	clt := NewClient("", 0, utiltest.NopLogger{})
	assert.Equal(t, DefaultBaseURL, clt.BaseURL)
	assert.Equal(t, 10*time.Second, clt.client.Timeout)
}

func TestFileFetchOrders(t *testing.T) {

	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(ordersJson), 0644))

	orders, err := File{Path: path}.FetchOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = File{Path: path + ".missing"}.FetchOrders(context.Background())
	assert.Error(t, err)
}
