package importer

import (
	"fmt"
	"io"

	"github.com/stockroomhq/stockroom/internal/importer/csvitems"
	"github.com/stockroomhq/stockroom/internal/item"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: csvitems.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]item.CreateParams, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
