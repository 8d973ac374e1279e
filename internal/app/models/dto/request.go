package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yigit/unijournal/internal/app/models"
)

// UpdateGradeRequest is the body of PUT /students/:id/grades
type UpdateGradeRequest struct {
	CourseID string           `json:"courseId" binding:"required"`
	Type     models.GradeType `json:"type" binding:"required,gradetype"`
	Value    *float64         `json:"value" binding:"required,gradevalue"`
}

// ToEdit converts the request into a grade edit for the given student
func (r UpdateGradeRequest) ToEdit(studentID string) models.GradeEdit {
	edit := models.GradeEdit{StudentID: studentID, CourseID: r.CourseID, Type: r.Type}
	if r.Value != nil {
		edit.Value = *r.Value
	}
	return edit
}

// Cell is a spreadsheet cell sent as JSON. Numbers, strings and null are accepted.
type Cell string

// UnmarshalJSON implements json.Unmarshaler
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("cell must be a string or a number: %w", err)
		}
		*c = Cell(n.String())
	}
	return nil
}

// ImportRowRequest is one spreadsheet row keyed by its column labels
type ImportRowRequest map[string]Cell

// ImportRowsRequest is the body of POST /imports
type ImportRowsRequest struct {
	Rows []ImportRowRequest `json:"rows" binding:"required"`
}

// Records lays the rows out as a header line followed by one record per row,
// the shape spreadsheet readers produce.
func (r ImportRowsRequest) Records() [][]string {
	var header []string
	seen := make(map[string]int)
	for _, row := range r.Rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(header)
				header = append(header, k)
			}
		}
	}

	records := make([][]string, 0, len(r.Rows)+1)
	records = append(records, header)
	for _, row := range r.Rows {
		rec := make([]string, len(header))
		for k, v := range row {
			rec[seen[k]] = string(v)
		}
		records = append(records, rec)
	}
	return records
}
