// Package source fetches order snapshots from the backend api or a file.
package source

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	nt "cafedash/entity"
)

// Fetcher supplies a full order snapshot.
type Fetcher interface {
	FetchOrders(ctx context.Context) (orders []nt.Order, err error)
}

// Decode parses a list of orders, accepting a bare array or a paginated
// envelope with a "results" array.
func Decode(data []byte) (orders []nt.Order, err error) {

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var envelope struct {
			Results []nt.Order `json:"results"`
		}
		err = json.Unmarshal(data, &envelope)
		if err != nil {
			err = errors.Wrapf(err, "failed to decode order envelope")
			return
		}
		orders = nt.Normalize(envelope.Results)
		return
	}

	err = json.Unmarshal(data, &orders)
	if err != nil {
		err = errors.Wrapf(err, "failed to decode orders")
		return
	}

	orders = nt.Normalize(orders)
	return
}
