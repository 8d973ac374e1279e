package models

import (
	"math"
	"strconv"
	"strings"
)

// NumericState describes the outcome of coercing a spreadsheet cell to a number
type NumericState int

const (
	NumericMissing NumericState = iota
	NumericValid
	NumericUnparseable
)

// Numeric is an optional numeric import field that keeps its raw text
type Numeric struct {
	Raw   string
	Value float64
	State NumericState
}

// ParseNumeric coerces a raw cell. Blank cells are missing; anything that is not a
// finite number is unparseable. A decimal comma is accepted.
func ParseNumeric(raw string) Numeric {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Numeric{Raw: raw, State: NumericMissing}
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Numeric{Raw: raw, State: NumericUnparseable}
	}
	return Numeric{Raw: raw, Value: v, State: NumericValid}
}

// NumericOf builds a valid Numeric from a number
func NumericOf(v float64) Numeric {
	return Numeric{Raw: strconv.FormatFloat(v, 'f', -1, 64), Value: v, State: NumericValid}
}

// Present reports whether the cell had any content
func (n Numeric) Present() bool { return n.State != NumericMissing }

// WholeNumber returns the value as a positive integer. It fails for missing and
// unparseable cells, fractions, and values outside [1, math.MaxInt32].
func (n Numeric) WholeNumber() (int, bool) {
	if n.State != NumericValid || n.Value < 1 || n.Value > math.MaxInt32 || n.Value != math.Trunc(n.Value) {
		return 0, false
	}
	return int(n.Value), true
}

// ImportRow is one spreadsheet row describing a student/course/teacher/grade association.
// Every field is optional; rows missing the fields needed to resolve an entity skip it.
type ImportRow struct {
	Line       int     `json:"line,omitempty"` // 1-based source line, 0 when unknown
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Group      string  `json:"group"`
	CourseName string  `json:"courseName"`
	Teacher    string  `json:"teacher"` // "Last First"
	Department string  `json:"department"`
	Semester   Numeric `json:"-"`
	Year       Numeric `json:"-"`
	Lecture    Numeric `json:"-"`
	Practice   Numeric `json:"-"`
}

// Grade returns the row's value for the given grade type
func (r ImportRow) Grade(t GradeType) Numeric {
	if t == GradeTypePractice {
		return r.Practice
	}
	return r.Lecture
}
