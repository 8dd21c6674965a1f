// Package csvitems reads item lists from CSV exports. The header row is
// located by scanning for the required columns, so files with preamble rows
// (titles, export metadata) still parse.
package csvitems

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/stockroomhq/stockroom/internal/encoding"
	"github.com/stockroomhq/stockroom/internal/item"
)

const (
	colName        = "name"
	colQuantity    = "quantity"
	colPrice       = "price"
	colNote        = "note"
	colTag         = "tag"
	colMinQuantity = "min_quantity"
	colAmountType  = "type"
)

var requiredCols = []string{colName, colQuantity}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]item.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: expected at least the columns %q", requiredCols)
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps normalized column names to their position in a row.
type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasRequiredCols(cols) {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func hasRequiredCols(cols colIndex) bool {
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]item.CreateParams, error) {
	var items []item.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		name := cellValue(row, cols, colName)
		if name == "" {
			continue // footer or blank row
		}

		quantity, err := parseInt(cellValue(row, cols, colQuantity))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity: %w", rowNum, err)
		}

		minQuantity, err := parseInt(cellValue(row, cols, colMinQuantity))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid min_quantity: %w", rowNum, err)
		}

		price := decimal.Zero
		if s := cellValue(row, cols, colPrice); s != "" {
			price, err = decimal.NewFromString(normalizeDecimal(s))
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price %q", rowNum, s)
			}
		}

		amountType := item.AmountType(strings.ToLower(cellValue(row, cols, colAmountType)))
		switch amountType {
		case item.AmountQuantity, item.AmountWeight, item.AmountVolume:
		case "":
			amountType = item.AmountQuantity
		default:
			return nil, fmt.Errorf("row %d: unknown amount type %q", rowNum, amountType)
		}

		items = append(items, item.CreateParams{
			Name:        name,
			Note:        cellValue(row, cols, colNote),
			Price:       price,
			Quantity:    quantity,
			MinQuantity: minQuantity,
			Tag:         cellValue(row, cols, colTag),
			AmountType:  amountType,
		})
	}

	return items, nil
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.ParseInt(s, 10, 64)
}

// normalizeDecimal accepts "1.234,56" and "1234,56" style European input.
func normalizeDecimal(s string) string {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return s
}
