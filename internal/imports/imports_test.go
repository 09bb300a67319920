package imports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildSheet writes an xlsx workbook with the given header and rows.
func buildSheet(t *testing.T, header []any, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseSheet_FullRowMapsVerbatim(t *testing.T) {
	buf := buildSheet(t,
		[]any{"Title", "Price", "Wholesale Price", "Stock", "Product Code"},
		[]any{"Blue Pen", 10.5, 8, 120, "PEN-01"},
	)

	rows, err := ParseSheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	products := ProductRows(rows)
	require.Len(t, products, 1)
	assert.Equal(t, "Blue Pen", products[0].Title)
	assert.Equal(t, 10.5, products[0].Price)
	assert.Equal(t, 8.0, products[0].WholesalePrice)
	assert.Equal(t, 120, products[0].Stock)
	assert.Equal(t, "PEN-01", products[0].ProductCode)
}

func TestParseSheet_MissingStockDefaultsToZero(t *testing.T) {
	buf := buildSheet(t,
		[]any{"Title", "Price"},
		[]any{"Eraser", 5},
	)

	rows, err := ParseSheet(buf)
	require.NoError(t, err)

	products := ProductRows(rows)
	require.Len(t, products, 1)
	assert.Equal(t, 0, products[0].Stock, "missing Stock column defaults to 0")
	assert.Equal(t, "", products[0].ProductCode, "missing text column defaults to empty")
}

func TestParseSheet_SkipsEmptyRows(t *testing.T) {
	buf := buildSheet(t,
		[]any{"Name", "Email"},
		[]any{"Amal", "amal@school.test"},
		[]any{"", ""},
		[]any{"Binu", ""},
	)

	rows, err := ParseSheet(buf)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	students := StudentRows(rows)
	assert.Equal(t, "Amal", students[0].Name)
	assert.Equal(t, "", students[1].Email)
}

func TestParseSheet_MalformedFile(t *testing.T) {
	_, err := ParseSheet(strings.NewReader("this is not a spreadsheet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid spreadsheet")
}

func TestParseSheet_HeaderOnly(t *testing.T) {
	buf := buildSheet(t, []any{"Name"})
	_, err := ParseSheet(buf)
	assert.Error(t, err, "a header with no data rows is rejected")
}

func TestStudentRows_BalanceParsing(t *testing.T) {
	rows := []Row{{"name": "Amal", "balance": "150.75"}, {"name": "Binu", "balance": "not-a-number"}}
	students := StudentRows(rows)
	assert.Equal(t, 150.75, students[0].Balance)
	assert.Equal(t, 0.0, students[1].Balance, "unparseable numbers default to zero")
}

func TestPreviewStore(t *testing.T) {
	store := NewPreviewStore()

	p, rows := store.Get("sid", KindProducts)
	assert.Nil(t, p)
	assert.Nil(t, rows)

	preview := &Preview{Kind: KindProducts, FileName: "items.xlsx", ParsedAt: time.Now(),
		Products: []RowPreview{{Cells: []string{"Blue Pen"}}}}
	store.Put("sid", preview, []Row{{"title": "Blue Pen"}})

	got, gotRows := store.Get("sid", KindProducts)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Count())
	assert.Len(t, gotRows, 1)

	// Previews are scoped per session and kind.
	other, _ := store.Get("other-sid", KindProducts)
	assert.Nil(t, other)
	byKind, _ := store.Get("sid", KindStudents)
	assert.Nil(t, byKind)

	store.Delete("sid", KindProducts)
	gone, _ := store.Get("sid", KindProducts)
	assert.Nil(t, gone)
}
