// Package stats derives the figures shown on a student's page from grades.
// Everything here is a pure function of its arguments.
package stats

import (
	"math"
	"sort"

	"github.com/yigit/unijournal/internal/app/models"
)

// Band is a named range of grade values
type Band string

const (
	BandExcellent    Band = "excellent"
	BandGood         Band = "good"
	BandSatisfactory Band = "satisfactory"
	BandPoor         Band = "poor"
)

// BandInfo describes how a band is displayed
type BandInfo struct {
	Band  Band    `json:"band"`
	Min   float64 `json:"min"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Bands is ordered from the highest lower bound down
var Bands = []BandInfo{
	{Band: BandExcellent, Min: 90, Label: "Відмінно (90-100)", Color: "#4CAF50"},
	{Band: BandGood, Min: 75, Label: "Добре (75-89)", Color: "#2196F3"},
	{Band: BandSatisfactory, Min: 60, Label: "Задовільно (60-74)", Color: "#FFC107"},
	{Band: BandPoor, Min: 0, Label: "Незадовільно (0-59)", Color: "#F44336"},
}

// BandFor returns the band a value falls into
func BandFor(value float64) BandInfo {
	for _, b := range Bands {
		if value >= b.Min {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Average is the mean grade value, 0 for no grades
func Average(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.Value
	}
	return sum / float64(len(grades))
}

func ofType(grades []models.Grade, t models.GradeType) []models.Grade {
	var out []models.Grade
	for _, g := range grades {
		if g.Type == t {
			out = append(out, g)
		}
	}
	return out
}

func ofCourse(grades []models.Grade, courseID string) []models.Grade {
	var out []models.Grade
	for _, g := range grades {
		if g.CourseID == courseID {
			out = append(out, g)
		}
	}
	return out
}

// DistributionEntry is the share of grades in one band
type DistributionEntry struct {
	BandInfo
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution counts grades per band, in band order
func Distribution(grades []models.Grade) []DistributionEntry {
	out := make([]DistributionEntry, len(Bands))
	for i, b := range Bands {
		out[i].BandInfo = b
	}
	for _, g := range grades {
		band := BandFor(g.Value).Band
		for i := range out {
			if out[i].Band == band {
				out[i].Count++
				break
			}
		}
	}
	if len(grades) > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Count) / float64(len(grades)) * 100
		}
	}
	return out
}

// Averages holds lecture, practice and combined means
type Averages struct {
	Lecture  float64 `json:"lecture"`
	Practice float64 `json:"practice"`
	Total    float64 `json:"total"`
}

func averagesOf(grades []models.Grade) Averages {
	return Averages{
		Lecture:  Average(ofType(grades, models.GradeTypeLecture)),
		Practice: Average(ofType(grades, models.GradeTypePractice)),
		Total:    Average(grades),
	}
}

// Progress is a student's standing in one course
type Progress struct {
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	Teacher    string `json:"teacher"`
	Averages
	Band Band `json:"band"`
}

// CourseProgress summarizes the grades that belong to course
func CourseProgress(course *models.Course, grades []models.Grade) Progress {
	avg := averagesOf(ofCourse(grades, course.ID))
	return Progress{
		CourseID:   course.ID,
		CourseName: course.Name,
		Teacher:    course.Teacher.FullName(),
		Averages:   avg,
		Band:       BandFor(avg.Total).Band,
	}
}

// RankInfo places a student among their peers
type RankInfo struct {
	Rank       int     `json:"rank"`
	Total      int     `json:"total"`
	Percentile float64 `json:"percentile"`
	Average    float64 `json:"average"`
	Tier       string  `json:"tier"`
	Color      string  `json:"color"`
}

// Rank estimates a position from the average alone: a student averaging a% of
// the scale is placed ahead of a% of the total. Rank 1 is the best.
func Rank(grades []models.Grade, totalStudents int) RankInfo {
	avg := Average(grades)
	if totalStudents <= 0 {
		return RankInfo{Average: avg}
	}
	ahead := int(math.Ceil(avg * float64(totalStudents) / models.MaxGradeValue))
	rank := totalStudents - ahead + 1
	if rank < 1 {
		rank = 1
	}
	if rank > totalStudents {
		rank = totalStudents
	}
	percentile := float64(totalStudents-rank+1) / float64(totalStudents) * 100

	info := RankInfo{Rank: rank, Total: totalStudents, Percentile: percentile, Average: avg}
	switch {
	case percentile >= 90:
		info.Tier, info.Color = "Відмінно", "#4CAF50"
	case percentile >= 75:
		info.Tier, info.Color = "Добре", "#2196F3"
	case percentile >= 50:
		info.Tier, info.Color = "Задовільно", "#FFC107"
	default:
		info.Tier, info.Color = "Потребує покращення", "#F44336"
	}
	return info
}

// PlannedSessions is the number of lectures and of practices in a semester
const PlannedSessions = 15

// SessionAttendance counts graded sessions of one kind
type SessionAttendance struct {
	Attended int     `json:"attended"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// AttendanceInfo treats each grade as one attended session
type AttendanceInfo struct {
	Lectures  SessionAttendance `json:"lectures"`
	Practices SessionAttendance `json:"practices"`
	Overall   int               `json:"overall"` // rounded percent
}

// Attendance counts graded lectures and practices against the plan
func Attendance(grades []models.Grade) AttendanceInfo {
	session := func(n int) SessionAttendance {
		return SessionAttendance{Attended: n, Total: PlannedSessions, Percent: float64(n) / PlannedSessions * 100}
	}
	l := len(ofType(grades, models.GradeTypeLecture))
	p := len(ofType(grades, models.GradeTypePractice))
	return AttendanceInfo{
		Lectures:  session(l),
		Practices: session(p),
		Overall:   int(math.Round(float64(l+p) / (2 * PlannedSessions) * 100)),
	}
}

// Advice texts returned by Recommendations
const (
	AdviceAttendLectures   = "Збільшіть відвідуваність лекцій для кращого розуміння матеріалу"
	AdviceAttendPractices  = "Приділіть більше уваги практичним заняттям для закріплення знань"
	AdviceLecturePrep      = "Покращіть підготовку до лекційних занять"
	AdvicePracticePrep     = "Збільшіть час на практичну підготовку"
	AdviceRecentDecline    = "Зверніть увагу на зниження успішності в останній період"
	minGradesPerType       = 10
	adviceAverageThreshold = 75
	recentWindow           = 3
)

// Recommendations returns study advice derived from grade counts, averages and trend
func Recommendations(grades []models.Grade) []string {
	lectures := ofType(grades, models.GradeTypeLecture)
	practices := ofType(grades, models.GradeTypePractice)

	var out []string
	if len(lectures) < minGradesPerType {
		out = append(out, AdviceAttendLectures)
	}
	if len(practices) < minGradesPerType {
		out = append(out, AdviceAttendPractices)
	}
	if Average(lectures) < adviceAverageThreshold {
		out = append(out, AdviceLecturePrep)
	}
	if Average(practices) < adviceAverageThreshold {
		out = append(out, AdvicePracticePrep)
	}

	if len(grades) >= 2 {
		sorted := append([]models.Grade(nil), grades...)
		// Dates are DateLayout so lexical order is chronological
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
		recent := sorted[max(0, len(sorted)-recentWindow):]
		if Average(recent) < Average(grades) {
			out = append(out, AdviceRecentDecline)
		}
	}
	return out
}

// GroupAverages pools the grades of every student in group per course
func GroupAverages(students []models.Student, group string) map[string]Averages {
	pooled := make(map[string][]models.Grade)
	for _, s := range students {
		if s.Group != group {
			continue
		}
		for _, g := range s.Grades {
			pooled[g.CourseID] = append(pooled[g.CourseID], g)
		}
	}
	out := make(map[string]Averages, len(pooled))
	for courseID, grades := range pooled {
		out[courseID] = averagesOf(grades)
	}
	return out
}

// Tier classifies a student's average against the group's
type Tier string

const (
	TierWellAbove Tier = "well_above"
	TierAbove     Tier = "above"
	TierBelow     Tier = "below"
	TierWellBelow Tier = "well_below"
)

// CompareTier buckets the difference between a student and a group value
func CompareTier(student, group float64) Tier {
	switch d := student - group; {
	case d >= 10:
		return TierWellAbove
	case d >= 0:
		return TierAbove
	case d >= -10:
		return TierBelow
	default:
		return TierWellBelow
	}
}

// Comparison sets a student's course averages against the group's
type Comparison struct {
	CourseID     string   `json:"courseId"`
	Student      Averages `json:"student"`
	Group        Averages `json:"group"`
	LectureTier  Tier     `json:"lectureTier"`
	PracticeTier Tier     `json:"practiceTier"`
	TotalTier    Tier     `json:"totalTier"`
}

// Compare returns one comparison per course the student has grades in and the
// group has an average for, ordered by course id.
func Compare(student models.Student, group map[string]Averages) []Comparison {
	var courseIDs []string
	seen := make(map[string]bool)
	for _, g := range student.Grades {
		if !seen[g.CourseID] {
			seen[g.CourseID] = true
			courseIDs = append(courseIDs, g.CourseID)
		}
	}
	sort.Strings(courseIDs)

	var out []Comparison
	for _, id := range courseIDs {
		ga, ok := group[id]
		if !ok {
			continue
		}
		sa := averagesOf(ofCourse(student.Grades, id))
		out = append(out, Comparison{
			CourseID:     id,
			Student:      sa,
			Group:        ga,
			LectureTier:  CompareTier(sa.Lecture, ga.Lecture),
			PracticeTier: CompareTier(sa.Practice, ga.Practice),
			TotalTier:    CompareTier(sa.Total, ga.Total),
		})
	}
	return out
}
