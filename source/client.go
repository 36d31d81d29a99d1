package source

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	nt "cafedash/entity"
)

// DefaultBaseURL is where the backend api lives by default.
const DefaultBaseURL = "http://localhost:8000/api"

// Client fetches orders from the backend api.
type Client struct {
	BaseURL string
	client  *http.Client
	logger  nt.Logger
}

// NewClient creates a client; a non-positive timeout means 10s.
func NewClient(baseURL string, timeout time.Duration, lgr nt.Logger) *Client {

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  lgr,
	}
}

// FetchOrders gets all orders.
func (clt *Client) FetchOrders(ctx context.Context) (orders []nt.Order, err error) {

	url := clt.BaseURL + "/orders/"

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to create request")
		return
	}
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := clt.client.Do(request)
	if err != nil {
		err = errors.Wrapf(err, "failed to get %s", url)
		return
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		err = errors.Wrapf(err, "failed to read response from %s", url)
		return
	}

	if response.StatusCode != http.StatusOK {
		err = errors.Errorf("unexpected status %d from %s", response.StatusCode, url)
		return
	}

	orders, err = Decode(data)
	if err != nil {
		return
	}

	clt.logger.Info(ctx, "fetched orders", "url", url, "count", len(orders), "elapsed", time.Since(start).String())
	return
}
