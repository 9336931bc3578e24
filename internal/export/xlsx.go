package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"institute-events/models"
)

const (
	SpreadsheetFile  = "Events_Export.xlsx"
	SpreadsheetSheet = "Events"
	SpreadsheetMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var spreadsheetHeader = []interface{}{"Title", "Category", "Date", "Start", "End", "Venue", "Organizer", "Status"}

// Spreadsheet writes one row per event to a single "Events" sheet.
func Spreadsheet(events []models.Event) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SpreadsheetSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SpreadsheetSheet, "A1", &spreadsheetHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, e := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			e.Title,
			e.Category,
			formatDay(e),
			e.StartTime,
			e.EndTime,
			e.Venue,
			e.Organizer,
			e.StatusLabel(),
		}
		if err := f.SetSheetRow(SpreadsheetSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// formatDay renders the event date as dd.MM.yyyy, or the raw value when it
// cannot be parsed.
func formatDay(e models.Event) string {
	d := e.Date()
	if d.IsZero() {
		return e.EventDate
	}
	return d.Format("02.01.2006")
}

var staffColumns = map[string]string{
	"name":             "name",
	"email":            "email",
	"phone":            "phone",
	"role":             "role",
	"personal_details": "personal_details",
	"personal details": "personal_details",
	"joining_date":     "joining_date",
	"joining date":     "joining_date",
}

var sheetDateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"02.01.2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
}

// ReadStaff reads staff members from the first sheet of a workbook. The first
// row is the header; both snake_case and title-case column names are accepted.
// Rows without a name are skipped.
func ReadStaff(r io.Reader) ([]models.StaffMember, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		if field, ok := staffColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}

	cell := func(row []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var members []models.StaffMember
	for _, row := range rows[1:] {
		name := cell(row, "name")
		if name == "" {
			continue
		}
		members = append(members, models.StaffMember{
			Name:            name,
			Email:           cell(row, "email"),
			Phone:           cell(row, "phone"),
			Role:            cell(row, "role"),
			PersonalDetails: cell(row, "personal_details"),
			JoiningDate:     sheetDate(cell(row, "joining_date")),
		})
	}
	return members, nil
}

// sheetDate normalizes a date cell to YYYY-MM-DD. Serial day numbers are
// converted; unknown formats pass through unchanged for validation to reject.
func sheetDate(v string) string {
	if v == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	return v
}
