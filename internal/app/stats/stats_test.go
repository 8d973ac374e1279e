package stats

import (
	"math"
	"testing"

	"github.com/yigit/unijournal/internal/app/models"
)

func grade(course string, t models.GradeType, v float64, date string) models.Grade {
	return models.Grade{ID: course + "_" + string(t), CourseID: course, Type: t, Value: v, Date: date}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBandFor(t *testing.T) {
	tests := []struct {
		value float64
		want  Band
	}{
		{100, BandExcellent},
		{90, BandExcellent},
		{89.9, BandGood},
		{75, BandGood},
		{60, BandSatisfactory},
		{59, BandPoor},
		{0, BandPoor},
	}
	for _, tc := range tests {
		if got := BandFor(tc.value).Band; got != tc.want {
			t.Errorf("BandFor(%v) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestDistribution(t *testing.T) {
	grades := []models.Grade{
		grade("1", models.GradeTypeLecture, 95, "2024-01-01"),
		grade("1", models.GradeTypePractice, 80, "2024-01-01"),
		grade("2", models.GradeTypeLecture, 85, "2024-01-01"),
		grade("2", models.GradeTypePractice, 40, "2024-01-01"),
	}
	d := Distribution(grades)
	want := map[Band]float64{BandExcellent: 25, BandGood: 50, BandSatisfactory: 0, BandPoor: 25}
	for _, e := range d {
		if !near(e.Percent, want[e.Band]) {
			t.Errorf("%s: got %v%%, want %v%%", e.Band, e.Percent, want[e.Band])
		}
	}

	for _, e := range Distribution(nil) {
		if e.Percent != 0 || e.Count != 0 {
			t.Errorf("Expected an empty distribution, got %+v", e)
		}
	}
}

func TestCourseProgress(t *testing.T) {
	course := &models.Course{ID: "1", Name: "Програмування", Teacher: &models.Teacher{FirstName: "Марія", LastName: "Іваненко"}}
	grades := []models.Grade{
		grade("1", models.GradeTypeLecture, 85, "2024-01-01"),
		grade("1", models.GradeTypePractice, 90, "2024-01-01"),
		grade("2", models.GradeTypeLecture, 10, "2024-01-01"),
	}
	p := CourseProgress(course, grades)
	if p.Lecture != 85 || p.Practice != 90 || !near(p.Total, 87.5) {
		t.Errorf("Unexpected averages: %+v", p.Averages)
	}
	if p.Teacher != "Іваненко Марія" || p.Band != BandGood {
		t.Errorf("Unexpected progress: %+v", p)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    int
		wantRank int
		wantTier string
	}{
		{"Top", 100, 30, 1, "Відмінно"},
		{"Ninety", 90, 30, 4, "Відмінно"},
		{"Eighty", 80, 30, 7, "Добре"},
		{"Weak", 20, 30, 25, "Потребує покращення"},
		{"Zero clamps", 0, 30, 30, "Потребує покращення"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Rank([]models.Grade{grade("1", models.GradeTypeLecture, tc.value, "")}, tc.total)
			if r.Rank != tc.wantRank || r.Tier != tc.wantTier {
				t.Errorf("Got rank %d tier %q, want %d %q", r.Rank, r.Tier, tc.wantRank, tc.wantTier)
			}
		})
	}

	if r := Rank(nil, 0); r.Rank != 0 || r.Total != 0 {
		t.Errorf("Expected zero rank without peers, got %+v", r)
	}
}

func TestAttendance(t *testing.T) {
	grades := []models.Grade{
		grade("1", models.GradeTypeLecture, 85, ""),
		grade("2", models.GradeTypeLecture, 85, ""),
		grade("1", models.GradeTypePractice, 85, ""),
	}
	a := Attendance(grades)
	if a.Lectures.Attended != 2 || a.Lectures.Total != PlannedSessions || a.Practices.Attended != 1 {
		t.Errorf("Unexpected attendance: %+v", a)
	}
	if a.Overall != 10 {
		t.Errorf("Expected overall 10%%, got %d", a.Overall)
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("Few grades with a recent decline", func(t *testing.T) {
		grades := []models.Grade{
			grade("1", models.GradeTypeLecture, 95, "2024-01-01"),
			grade("2", models.GradeTypeLecture, 95, "2024-01-02"),
			grade("3", models.GradeTypeLecture, 95, "2024-01-03"),
			grade("1", models.GradeTypePractice, 60, "2024-02-01"),
		}
		got := Recommendations(grades)
		want := []string{AdviceAttendLectures, AdviceAttendPractices, AdvicePracticePrep, AdviceRecentDecline}
		if len(got) != len(want) {
			t.Fatalf("Expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Advice %d: got %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("No grades", func(t *testing.T) {
		got := Recommendations(nil)
		if len(got) != 4 {
			t.Errorf("Expected count and average advice only, got %v", got)
		}
	})
}

func TestCompare(t *testing.T) {
	students := []models.Student{
		{ID: "1", Group: "КН-101", Grades: []models.Grade{
			grade("1", models.GradeTypeLecture, 90, ""),
			grade("1", models.GradeTypePractice, 90, ""),
		}},
		{ID: "2", Group: "КН-101", Grades: []models.Grade{
			grade("1", models.GradeTypeLecture, 70, ""),
			grade("1", models.GradeTypePractice, 50, ""),
		}},
		{ID: "3", Group: "КН-102", Grades: []models.Grade{
			grade("1", models.GradeTypeLecture, 0, ""),
		}},
	}

	group := GroupAverages(students, "КН-101")
	if ga := group["1"]; ga.Lecture != 80 || ga.Practice != 70 || ga.Total != 75 {
		t.Fatalf("Unexpected group averages: %+v", ga)
	}

	cmp := Compare(students[0], group)
	if len(cmp) != 1 {
		t.Fatalf("Expected one course comparison, got %d", len(cmp))
	}
	c := cmp[0]
	if c.LectureTier != TierWellAbove || c.PracticeTier != TierWellAbove || c.TotalTier != TierWellAbove {
		t.Errorf("Unexpected tiers: %+v", c)
	}

	cmp = Compare(students[1], group)
	if cmp[0].LectureTier != TierBelow || cmp[0].PracticeTier != TierWellBelow {
		t.Errorf("Unexpected tiers: %+v", cmp[0])
	}
}

func TestBuildReport(t *testing.T) {
	teacher := &models.Teacher{ID: "1", FirstName: "Марія", LastName: "Іваненко"}
	ds := models.Dataset{
		Teachers: []*models.Teacher{teacher},
		Courses: []*models.Course{
			{ID: "1", Name: "Програмування", Teacher: teacher, Semester: 1, Year: 2024},
			{ID: "2", Name: "Математика", Teacher: teacher, Semester: 1, Year: 2024},
		},
		Students: []models.Student{
			{ID: "1", FirstName: "Іван", LastName: "Петренко", Group: "КН-101", Grades: []models.Grade{
				grade("1", models.GradeTypeLecture, 85, "2024-03-20"),
				grade("1", models.GradeTypePractice, 90, "2024-03-21"),
			}},
			{ID: "2", FirstName: "Олена", LastName: "Сидоренко", Group: "КН-101"},
		},
	}

	r := BuildReport(ds, ds.Students[0])
	if r.Name != "Петренко Іван" || !near(r.Average, 87.5) || r.Band.Band != BandGood {
		t.Errorf("Unexpected header: %+v", r)
	}
	if len(r.Courses) != 1 || r.Courses[0].CourseID != "1" {
		t.Errorf("Expected progress only for graded courses, got %+v", r.Courses)
	}
	if r.Rank.Total != 2 {
		t.Errorf("Expected rank among 2 group members, got %+v", r.Rank)
	}
	if len(r.Comparison) != 1 || r.Comparison[0].TotalTier != TierAbove {
		t.Errorf("Unexpected comparison: %+v", r.Comparison)
	}
}

func TestForSemester(t *testing.T) {
	teacher := &models.Teacher{ID: "1", FirstName: "Марія", LastName: "Іваненко"}
	ds := models.Dataset{
		Teachers: []*models.Teacher{teacher},
		Courses: []*models.Course{
			{ID: "1", Name: "Програмування", Teacher: teacher, Semester: 1, Year: 2024},
			{ID: "3", Name: "Бази даних", Teacher: teacher, Semester: 2, Year: 2024},
		},
		Students: []models.Student{
			{ID: "1", FirstName: "Іван", LastName: "Петренко", Group: "КН-101", Grades: []models.Grade{
				grade("1", models.GradeTypeLecture, 85, "2024-03-20"),
				grade("3", models.GradeTypeLecture, 70, "2024-10-01"),
			}},
		},
	}

	second := ForSemester(ds, 2)
	if len(second.Courses) != 1 || second.Courses[0].ID != "3" {
		t.Errorf("Expected only the second semester course, got %+v", second.Courses)
	}
	if g := second.Students[0].Grades; len(g) != 1 || g[0].CourseID != "3" {
		t.Errorf("Expected only second semester grades, got %+v", g)
	}
	if len(ds.Students[0].Grades) != 2 {
		t.Errorf("Input dataset was modified")
	}

	r := BuildReport(second, second.Students[0])
	if !near(r.Average, 70) || len(r.Courses) != 1 {
		t.Errorf("Unexpected semester report: %+v", r)
	}

	if all := ForSemester(ds, 0); len(all.Courses) != 2 || len(all.Students[0].Grades) != 2 {
		t.Errorf("Semester 0 should keep everything")
	}
}
