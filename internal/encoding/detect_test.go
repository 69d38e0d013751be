package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/folio/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "symbol,trade_date,notes\nNESTLEIND,2024-07-01,Société Générale\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Crédit;Débit\n" with é = 0xE9
	input := []byte{'C', 'r', 0xE9, 'd', 'i', 't', ';', 'D', 0xE9, 'b', 'i', 't', '\n'}

	got, _ := readAll(t, input)
	assert.Equal(t, "Crédit;Débit\n", got)
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("symbol,price\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, "symbol,price\n", got)
	assert.Equal(t, encoding.UTF8BOM, charset)
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := enc.Bytes([]byte("symbol,quantity\nINFY,10\n"))
	require.NoError(t, err)

	got, charset := readAll(t, input)
	assert.Equal(t, "symbol,quantity\nINFY,10\n", got)
	assert.Equal(t, encoding.UTF16LE, charset)
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("INFY,2024-07-01,BUY,10,1500.50\n"), 500)

	got, _ := readAll(t, input)
	assert.Equal(t, string(input), got)
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, charset := readAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_RuneAcrossSniffWindow(t *testing.T) {
	// 4095 ASCII bytes put the two-byte "é" across the 4096 byte window.
	input := append(bytes.Repeat([]byte("a"), 4095), []byte("é\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, string(input), got)
	assert.Equal(t, encoding.UTF8, charset)
}
