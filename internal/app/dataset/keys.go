package dataset

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yigit/unijournal/internal/app/models"
)

// keySep joins natural key parts; it cannot appear in spreadsheet text.
const keySep = "\x1f"

// clean trims a field and normalizes it to NFC so that names typed in
// different tools compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func naturalKey(parts ...string) string {
	for i := range parts {
		parts[i] = clean(parts[i])
	}
	return strings.Join(parts, keySep)
}

func teacherKey(lastName, firstName string) string {
	return naturalKey(lastName, firstName)
}

func courseKey(name string, semester, year int, teacher *models.Teacher) string {
	var last, first string
	if teacher != nil {
		last, first = teacher.LastName, teacher.FirstName
	}
	return naturalKey(name, strconv.Itoa(semester), strconv.Itoa(year), last, first)
}

func studentKey(lastName, firstName, group string) string {
	return naturalKey(lastName, firstName, group)
}

func gradeKey(courseID string, t models.GradeType) string {
	return courseID + keySep + string(t)
}

// SplitTeacherName splits a "Last First" teacher cell on the first space.
// The first token is the last name and the remainder is the first name.
func SplitTeacherName(full string) (lastName, firstName string) {
	last, first, _ := strings.Cut(clean(full), " ")
	return last, strings.TrimSpace(first)
}
