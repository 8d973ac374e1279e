package models

// Course represents a course taught by a teacher in a given semester.
// Teacher points into the dataset's teacher collection and is shared, not owned.
type Course struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Teacher  *Teacher `json:"teacher"`
	Semester int      `json:"semester"`
	Year     int      `json:"year"`
}
