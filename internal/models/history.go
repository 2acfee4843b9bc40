package models

// RecentActivity records a previously searched course code.
// At most one entry exists per course code; re-searching moves the entry
// to the front with a fresh timestamp.
type RecentActivity struct {
	CourseCode string `json:"course_code"`
	Timestamp  int64  `json:"timestamp"`
}
