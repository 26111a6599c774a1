// Package spreadsheet reads the festival workbook.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/monastery360/service-travel/internal/domain/festival"
	"github.com/xuri/excelize/v2"
)

// Header aliases per field, in lookup priority order.
var aliases = map[string][]string{
	"id":          {"id", "ID", "Id"},
	"name":        {"name", "Name", "title", "Festival Name"},
	"location":    {"location", "Location", "Place"},
	"description": {"description", "Description", "Desc"},
	"img":         {"img", "Img", "image", "Image"},
	"start":       {"startDate", "StartDate", "start_date", "Start", "Date", "date"},
	"end":         {"endDate", "EndDate", "end_date", "End", "Until", "until"},
	"type":        {"type", "Type", "category", "Category"},
}

// FestivalSheet reads festivals from the first worksheet of an xlsx file.
type FestivalSheet struct {
	path string
}

// NewFestivalSheet creates a reader for path.
func NewFestivalSheet(path string) *FestivalSheet {
	return &FestivalSheet{path: path}
}

// Festivals opens the workbook and parses every non-blank row.
// A missing file yields festival.ErrSourceNotFound.
func (s *FestivalSheet) Festivals(ctx context.Context) ([]festival.Festival, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, festival.ErrSourceNotFound
		}
		return nil, fmt.Errorf("open festival sheet: %w", err)
	}
	defer f.Close()
	return ReadFestivals(f)
}

// ReadFestivals parses a workbook stream.
func ReadFestivals(r io.Reader) ([]festival.Festival, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no worksheet found in workbook")
	}
	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return ParseRows(rows), nil
}

// ParseRows maps a header row plus data rows to festivals, one per non-blank
// row. Rows without an id are numbered by position from 1 and rows without a
// location read "Unknown". Recognized dates are normalized to YYYY-MM-DD and
// anything else is passed through as written.
func ParseRows(rows [][]string) []festival.Festival {
	if len(rows) == 0 {
		return nil
	}
	cols := resolveColumns(rows[0])

	out := make([]festival.Festival, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		get := func(field string) string {
			i, ok := cols[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		loc := get("location")
		if loc == "" {
			loc = festival.UnknownLocation
		}
		id, err := strconv.Atoi(get("id"))
		if err != nil {
			id = len(out) + 1
		}

		out = append(out, festival.Festival{
			ID:          id,
			Name:        get("name"),
			StartDate:   normalizeDate(get("start")),
			EndDate:     normalizeDate(get("end")),
			Location:    loc,
			Type:        festival.NormalizeType(get("type")),
			Description: get("description"),
			Img:         get("img"),
		})
	}
	return out
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeDate(raw string) string {
	if d, ok := ParseDate(raw); ok {
		return d
	}
	return raw
}

func resolveColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	cols := make(map[string]int, len(aliases))
	for field, names := range aliases {
		for _, n := range names {
			if i, ok := index[n]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

// ParseDate normalizes a cell to YYYY-MM-DD. It accepts Y-M-D with dash,
// slash or dot separators, M-D-Y, and Excel serial day numbers.
func ParseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return "", false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false
		}
		return t.Format(festival.DateLayout), true
	}

	token := strings.NewReplacer(".", "-", "/", "-").Replace(s)
	for _, layout := range []string{"2006-1-2", "1-2-2006"} {
		if t, err := time.Parse(layout, token); err == nil {
			return t.Format(festival.DateLayout), true
		}
	}
	return "", false
}
