// Package imports implements spreadsheet bulk import for students,
// teachers, and products. A file is parsed into a preview held server-side
// per session; nothing is submitted to the backend until the user confirms
// the preview, and a failed submit keeps the preview so they can retry.
package imports

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
)

// Kind selects the import target.
type Kind string

const (
	KindStudents Kind = "students"
	KindTeachers Kind = "teachers"
	KindProducts Kind = "products"
)

// Valid reports whether k names a known import target.
func (k Kind) Valid() bool {
	return k == KindStudents || k == KindTeachers || k == KindProducts
}

// Row is one spreadsheet row keyed by its column header (lower-cased,
// trimmed). Missing columns are simply absent keys.
type Row map[string]string

// ParseSheet reads the first sheet of an xlsx workbook. The first row is
// the header; every following non-empty row becomes a Row. A malformed
// file returns an error and no rows, so nothing partial ever reaches the
// preview.
func ParseSheet(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read the file, make sure it is a valid spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("the workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(cells) < 2 {
		return nil, fmt.Errorf("the sheet has no data rows")
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	for _, line := range cells[1:] {
		row := Row{}
		empty := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if i < len(line) {
				v = strings.TrimSpace(line[i])
			}
			if v != "" {
				empty = false
			}
			row[h] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// get returns the value under any of the given headers, first match wins.
func (r Row) get(headers ...string) string {
	for _, h := range headers {
		if v, ok := r[h]; ok && v != "" {
			return v
		}
	}
	return ""
}

func (r Row) getInt(headers ...string) int {
	v, err := strconv.Atoi(r.get(headers...))
	if err != nil {
		return 0
	}
	return v
}

func (r Row) getFloat(headers ...string) float64 {
	v, err := strconv.ParseFloat(r.get(headers...), 64)
	if err != nil {
		return 0
	}
	return v
}

// StudentRows maps parsed rows to the bulk student payload. Unknown or
// missing columns default to empty string or zero.
func StudentRows(rows []Row) []api.UserInput {
	out := make([]api.UserInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.UserInput{
			Name:     r.get("name", "student name"),
			Email:    r.get("email"),
			Username: r.get("username", "admission number"),
			ClassID:  r.get("class"),
			Balance:  r.getFloat("balance"),
		})
	}
	return out
}

// TeacherRows maps parsed rows to the bulk teacher payload.
func TeacherRows(rows []Row) []api.UserInput {
	out := make([]api.UserInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.UserInput{
			Name:     r.get("name", "teacher name"),
			Email:    r.get("email"),
			Username: r.get("username"),
		})
	}
	return out
}

// ProductRows maps parsed rows to the bulk product payload.
func ProductRows(rows []Row) []api.ProductInput {
	out := make([]api.ProductInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.ProductInput{
			Title:          r.get("title", "name", "product name"),
			Price:          r.getFloat("price"),
			WholesalePrice: r.getFloat("wholesale price", "wholesaleprice"),
			Stock:          r.getInt("stock"),
			ProductCode:    r.get("product code", "productcode", "code"),
		})
	}
	return out
}
