package excel

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gapgenie/gapgenie-back/internal/models"
	"github.com/gapgenie/gapgenie-back/internal/timeutil"
)

// Expected columns of an uploaded timetable sheet, header row first:
// Day | Subject | Type | Start | End | Location

var validDays = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

var validTypes = map[string]bool{
	models.EntryClass:    true,
	models.EntryLab:      true,
	models.EntryTutorial: true,
}

// ParseTimetable reads a weekly timetable from an xlsx stream. The whole
// upload is rejected on the first malformed row, so a bad file never half
// replaces a timetable.
func ParseTimetable(r io.Reader) ([]models.TimetableEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var entries []models.TimetableEntry

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
		}

		sheetEntries, err := parseRows(sheetName, rows)
		if err != nil {
			return nil, err
		}

		log.Printf("📖 Parsed %d entries from sheet %s", len(sheetEntries), sheetName)
		entries = append(entries, sheetEntries...)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no timetable entries found")
	}

	return entries, nil
}

func parseRows(sheetName string, rows [][]string) ([]models.TimetableEntry, error) {
	var entries []models.TimetableEntry

	for i, row := range rows {
		if i == 0 || isEmptyRow(row) {
			continue // header
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("sheet %s row %d: expected at least 5 columns", sheetName, i+1)
		}

		entry, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheetName, i+1, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseRow(row []string) (models.TimetableEntry, error) {
	day := strings.TrimSpace(row[0])
	subject := strings.TrimSpace(row[1])
	entryType := strings.ToLower(strings.TrimSpace(row[2]))
	start := strings.TrimSpace(row[3])
	end := strings.TrimSpace(row[4])
	location := ""
	if len(row) > 5 {
		location = strings.TrimSpace(row[5])
	}

	if !validDays[day] {
		return models.TimetableEntry{}, fmt.Errorf("unknown day %q", day)
	}
	if subject == "" {
		return models.TimetableEntry{}, fmt.Errorf("empty subject")
	}
	if entryType == "" {
		entryType = models.EntryClass
	}
	if !validTypes[entryType] {
		return models.TimetableEntry{}, fmt.Errorf("unknown entry type %q", entryType)
	}

	d, err := timeutil.Diff(start, end)
	if err != nil {
		return models.TimetableEntry{}, err
	}
	if d <= 0 {
		return models.TimetableEntry{}, fmt.Errorf("end %s is not after start %s", end, start)
	}

	return models.TimetableEntry{
		Subject:   subject,
		Type:      entryType,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Location:  location,
	}, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
