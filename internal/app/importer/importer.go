// Package importer turns spreadsheet files into typed import rows.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/yigit/unijournal/internal/app/models"
)

// Column labels expected in the header row of an import sheet
const (
	ColumnFirstName  = "Ім'я"
	ColumnLastName   = "Прізвище"
	ColumnGroup      = "Група"
	ColumnCourseName = "Назва курсу"
	ColumnTeacher    = "Викладач"
	ColumnDepartment = "Кафедра"
	ColumnSemester   = "Семестр"
	ColumnYear       = "Рік"
	ColumnLecture    = "Лекції"
	ColumnPractice   = "Практики"
)

// Columns lists the recognized labels in template order
var Columns = []string{
	ColumnFirstName, ColumnLastName, ColumnGroup, ColumnCourseName, ColumnTeacher,
	ColumnSemester, ColumnYear, ColumnDepartment, ColumnLecture, ColumnPractice,
}

var (
	// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv
	ErrUnsupportedFormat = errors.New("unsupported import file format")
	// ErrUnreadableFile is returned when the file cannot be parsed
	ErrUnreadableFile = errors.New("import file cannot be read")
	// ErrNoRecognizedColumns is returned when the header row has none of the expected labels
	ErrNoRecognizedColumns = errors.New("import file has no recognized columns")
)

// ParseFile reads rows from an uploaded file, choosing the reader by extension.
// Only the first sheet of a workbook is read.
func ParseFile(name string, r io.Reader) ([]models.ImportRow, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx":
		return ParseXLSX(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ParseXLSX reads the first sheet of an Office Open XML workbook
func ParseXLSX(r io.Reader) ([]models.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadableFile)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return RowsFromRecords(records)
}

// ParseCSV reads a comma or semicolon separated file with a header row
func ParseCSV(r io.Reader) ([]models.ImportRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.Comma = detectDelimiter(text)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return RowsFromRecords(records)
}

// detectDelimiter picks ';' when the header uses it, as spreadsheet tools in
// comma-decimal locales do.
func detectDelimiter(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func normalizeLabel(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	// Apostrophe variants seen in Ukrainian spreadsheets
	return strings.NewReplacer("’", "'", "ʼ", "'", "`", "'").Replace(s)
}

// RowsFromRecords maps a header row plus data rows into import rows.
// Unknown columns are ignored and blank rows skipped. Line numbers are 1-based
// with the header on line 1.
func RowsFromRecords(records [][]string) ([]models.ImportRow, error) {
	if len(records) == 0 {
		return nil, ErrNoRecognizedColumns
	}

	known := make(map[string]struct{}, len(Columns))
	for _, c := range Columns {
		known[c] = struct{}{}
	}
	index := make(map[string]int)
	for i, label := range records[0] {
		l := normalizeLabel(label)
		if _, ok := known[l]; !ok {
			continue
		}
		if _, dup := index[l]; !dup {
			index[l] = i
		}
	}
	if len(index) == 0 {
		return nil, ErrNoRecognizedColumns
	}

	rows := make([]models.ImportRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		cell := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		rows = append(rows, models.ImportRow{
			Line:       n + 2,
			FirstName:  cell(ColumnFirstName),
			LastName:   cell(ColumnLastName),
			Group:      cell(ColumnGroup),
			CourseName: cell(ColumnCourseName),
			Teacher:    cell(ColumnTeacher),
			Department: cell(ColumnDepartment),
			Semester:   models.ParseNumeric(cell(ColumnSemester)),
			Year:       models.ParseNumeric(cell(ColumnYear)),
			Lecture:    models.ParseNumeric(cell(ColumnLecture)),
			Practice:   models.ParseNumeric(cell(ColumnPractice)),
		})
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
