package models

// Teacher represents a lecturer who owns courses
type Teacher struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
}

// FullName returns the "Last First" form used in journals and import files
func (t *Teacher) FullName() string {
	if t == nil {
		return ""
	}
	if t.FirstName == "" {
		return t.LastName
	}
	return t.LastName + " " + t.FirstName
}
