package models

// GradeType defines the kind of class a grade was earned in
type GradeType string

const (
	GradeTypeLecture  GradeType = "lecture"
	GradeTypePractice GradeType = "practice"
)

// GradeTypes lists every valid grade type in display order
var GradeTypes = []GradeType{GradeTypeLecture, GradeTypePractice}

// Valid reports whether t is one of the known grade types
func (t GradeType) Valid() bool {
	return t == GradeTypeLecture || t == GradeTypePractice
}

// Grade value bounds accepted by the journal
const (
	MinGradeValue = 0
	MaxGradeValue = 100
)

// DateLayout is the ISO calendar date format used for grade dates
const DateLayout = "2006-01-02"
