package models

// CourseStats summarises pass-rate statistics for one course.
type CourseStats struct {
	CourseCode    string         `json:"course_code"`
	CourseNameSwe string         `json:"course_name_swe"`
	CourseNameEng string         `json:"course_name_eng"`
	Sittings      []SittingStats `json:"sittings"`
	AveragePass   float64        `json:"average_pass_rate"`
}

// SittingStats carries the pass rate for one exam sitting.
type SittingStats struct {
	ExamID       int64             `json:"exam_id"`
	ExamDate     string            `json:"exam_date"`
	PassRate     float64           `json:"pass_rate"`
	HasStats     bool              `json:"has_statistics"`
	Distribution GradeDistribution `json:"distribution,omitempty"`
}
