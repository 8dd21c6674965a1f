package csvitems_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/importer/csvitems"
	"github.com/stockroomhq/stockroom/internal/item"
)

func TestParser_Parse(t *testing.T) {
	p := csvitems.NewParser()

	t.Run("BasicFile", func(t *testing.T) {
		input := "name,quantity,price,tag\n" +
			"Hammer,10,12.50,tools\n" +
			"Bolts,250,0.05,fasteners\n"

		items, err := p.Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "Hammer", items[0].Name)
		assert.Equal(t, int64(10), items[0].Quantity)
		assert.True(t, items[0].Price.Equal(decimal.RequireFromString("12.50")))
		assert.Equal(t, "tools", items[0].Tag)
		assert.Equal(t, item.AmountQuantity, items[0].AmountType)
	})

	t.Run("HeaderAfterPreambleRows", func(t *testing.T) {
		input := "Stockroom Export\n" +
			"Generated 2024-06-15\n" +
			"\n" +
			"name,quantity\n" +
			"Hammer,10\n"

		items, err := p.Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Hammer", items[0].Name)
	})

	t.Run("EuropeanDecimals", func(t *testing.T) {
		input := "name,quantity,price\n" +
			"Machine,1,\"1.234,56\"\n"

		items, err := p.Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Price.Equal(decimal.RequireFromString("1234.56")))
	})

	t.Run("BlankNameRowsAreSkipped", func(t *testing.T) {
		input := "name,quantity\n" +
			"Hammer,10\n" +
			",0\n" +
			"Bolts,5\n"

		items, err := p.Parse(strings.NewReader(input))

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("OptionalColumns", func(t *testing.T) {
		input := "name,quantity,min_quantity,note,type\n" +
			"Flour,3,1,organic,weight\n"

		items, err := p.Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].MinQuantity)
		assert.Equal(t, "organic", items[0].Note)
		assert.Equal(t, item.AmountWeight, items[0].AmountType)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		input := "foo,bar\n1,2\n"

		_, err := p.Parse(strings.NewReader(input))

		assert.ErrorContains(t, err, "no header row found")
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		input := "name,quantity\nHammer,many\n"

		_, err := p.Parse(strings.NewReader(input))

		assert.ErrorContains(t, err, "invalid quantity")
	})

	t.Run("InvalidPrice", func(t *testing.T) {
		input := "name,quantity,price\nHammer,1,cheap\n"

		_, err := p.Parse(strings.NewReader(input))

		assert.ErrorContains(t, err, "invalid price")
	})

	t.Run("UnknownAmountType", func(t *testing.T) {
		input := "name,quantity,type\nHammer,1,pieces\n"

		_, err := p.Parse(strings.NewReader(input))

		assert.ErrorContains(t, err, "unknown amount type")
	})

	t.Run("Windows1252Input", func(t *testing.T) {
		// "Schraubenzieher groß" with 0xDF for the sharp s.
		input := []byte("name,quantity\nSchraubenzieher gro\xdf,4\n")

		items, err := p.Parse(strings.NewReader(string(input)))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Schraubenzieher groß", items[0].Name)
	})
}
