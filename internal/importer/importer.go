package importer

import (
	"io"

	"github.com/stockroomhq/stockroom/internal/item"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]item.CreateParams, error)
}
