package source

import (
	"context"
	"os"

	"github.com/pkg/errors"

	nt "cafedash/entity"
)

// File reads orders from a json file, handy offline.
type File struct {
	Path string
}

// FetchOrders reads and decodes the file.
func (fl File) FetchOrders(ctx context.Context) (orders []nt.Order, err error) {

	data, err := os.ReadFile(fl.Path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", fl.Path)
		return
	}

	return Decode(data)
}
