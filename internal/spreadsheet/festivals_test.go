package spreadsheet_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/monastery360/service-travel/internal/domain/festival"
	"github.com/monastery360/service-travel/internal/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2025-2-8":            "2025-02-08",
		"2025/03/10":          "2025-03-10",
		"2025.09.15":          "2025-09-15",
		"2025-06-20T00:00:00": "2025-06-20",
		"2025-05-12 10:00":    "2025-05-12",
		"8/20/2025":           "2025-08-20",
		"45696":               "2025-02-08",
	}
	for in, want := range cases {
		got, ok := spreadsheet.ParseDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "soon", "2025-13-01", "-3"} {
		_, ok := spreadsheet.ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseRows_keepsEveryRow(t *testing.T) {
	rows := [][]string{
		{"Festival Name", "Place", "Date", "Until", "Category", "Desc"},
		{"Kagyed Dance", "Rumtek", "2025-12-17", "", "Religious", "Masked dances"},
		{"", "Gangtok", "2025-01-01", "", "", ""},
		{"", "  ", ""},
		{"Food Fest", "", "2025/01/01", "", "", ""},
		{"No Date", "Namchi", "tbd", "", "", ""},
		{"Sufi Night", "Namchi", "2025-04-01", "2025-04-02", "music & culture"},
	}

	got := spreadsheet.ParseRows(rows)

	require.Len(t, got, 5)
	assert.Equal(t, festival.Festival{
		ID:          1,
		Name:        "Kagyed Dance",
		StartDate:   "2025-12-17",
		Location:    "Rumtek",
		Type:        festival.TypeReligious,
		Description: "Masked dances",
	}, got[0])
	assert.Empty(t, got[1].Name)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 3, got[2].ID, "blank rows are not numbered")
	assert.Equal(t, festival.UnknownLocation, got[2].Location)
	assert.Equal(t, "2025-01-01", got[2].StartDate)
	assert.Equal(t, festival.TypeCultural, got[2].Type)
	assert.Equal(t, "tbd", got[3].StartDate)
	assert.Equal(t, 5, got[4].ID)
	assert.Equal(t, festival.TypeMusic, got[4].Type)
	assert.Equal(t, "2025-04-02", got[4].EndDate)
	assert.Empty(t, got[4].Description)
}

func TestParseRows_prefersFirstAlias(t *testing.T) {
	rows := [][]string{
		{"Name", "name", "location", "startDate", "id"},
		{"Upper", "lower", "Pelling", "2025-09-15", "3"},
	}

	got := spreadsheet.ParseRows(rows)

	require.Len(t, got, 1)
	assert.Equal(t, "lower", got[0].Name)
	assert.Equal(t, 3, got[0].ID)
}

func TestFestivalSheet_missingFile(t *testing.T) {
	sheet := spreadsheet.NewFestivalSheet(filepath.Join(t.TempDir(), "missing.xlsx"))

	_, err := sheet.Festivals(context.Background())
	assert.ErrorIs(t, err, festival.ErrSourceNotFound)
}

func TestFestivalSheet_corruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o600))

	_, err := spreadsheet.NewFestivalSheet(path).Festivals(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, festival.ErrSourceNotFound)
}

func TestFestivalSheet_readsWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festivals.xlsx")
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]any{"id", "name", "location", "startDate", "endDate", "type"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]any{1, "Losar (sheet)", "Gangtok", "2025-02-28", "2025-03-02", "religious"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &[]any{20, "Harvest Fair", "Namchi", 45931, nil, "cultural"}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	got, err := spreadsheet.NewFestivalSheet(path).Festivals(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "Losar (sheet)", got[0].Name)
	assert.Equal(t, 20, got[1].ID)
	assert.Equal(t, "2025-10-01", got[1].StartDate)
	assert.Empty(t, got[1].EndDate)
}
