package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with German characters should pass through unchanged.
	input := "name,quantity\nSchraubenzieher groß,4\nMaßband,2\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Maßband,2\n".
	// In Windows-1252: ß = 0xDF
	encoded := []byte{
		'M', 'a', 0xDF, 'b', 'a', 'n', 'd', ',', '2', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(encoded))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Maßband,2\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("name,quantity\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "name,quantity\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 little endian with BOM.
	input := []byte{0xFF, 0xFE, 'n', 0, 'a', 0, 'm', 0, 'e', 0, '\n', 0}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "name\n", string(got))
}
