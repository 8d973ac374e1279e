package seed

import (
	"github.com/rs/zerolog"
	appModels "github.com/yigit/unijournal/internal/app/models"
)

// CreateDefaultData builds the demo journal the application starts with:
// two teachers with one course each and one graded student.
func CreateDefaultData(lgr zerolog.Logger) appModels.Dataset {
	ivanenko := &appModels.Teacher{ID: "1", FirstName: "Марія", LastName: "Іваненко", Department: "Комп'ютерні науки"}
	kovalenko := &appModels.Teacher{ID: "2", FirstName: "Олександр", LastName: "Коваленко", Department: "Математика"}

	ds := appModels.Dataset{
		Teachers: []*appModels.Teacher{ivanenko, kovalenko},
		Courses: []*appModels.Course{
			{ID: "1", Name: "Програмування", Teacher: ivanenko, Semester: 1, Year: 2024},
			{ID: "2", Name: "Математика", Teacher: kovalenko, Semester: 1, Year: 2024},
		},
		Students: []appModels.Student{
			{
				ID:        "1",
				FirstName: "Іван",
				LastName:  "Петренко",
				Group:     "КН-101",
				Grades: []appModels.Grade{
					{ID: "1", StudentID: "1", CourseID: "1", Type: appModels.GradeTypeLecture, Value: 85, Date: "2024-03-15"},
					{ID: "2", StudentID: "1", CourseID: "1", Type: appModels.GradeTypePractice, Value: 90, Date: "2024-03-16"},
				},
			},
		},
	}

	lgr.Info().
		Int("teachers", len(ds.Teachers)).
		Int("courses", len(ds.Courses)).
		Int("students", len(ds.Students)).
		Msg("Default journal data created")
	return ds
}
