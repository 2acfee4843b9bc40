package models

// GradeDistribution maps grade labels to student counts. The upstream API
// mixes numeric scales (3/4/5) and letter scales (U/G/VG) depending on the
// course, so the keys are left open.
type GradeDistribution map[string]int

// Exam is an upstream-owned exam record. The gateway never mutates these.
type Exam struct {
	ID          int64             `json:"id"`
	CourseCode  string            `json:"course_code"`
	ExamDate    string            `json:"exam_date"`
	PDFURL      string            `json:"pdf_url"`
	ExamName    string            `json:"exam_name"`
	HasSolution bool              `json:"has_solution"`
	Statistics  GradeDistribution `json:"statistics"`
	PassRate    *float64          `json:"pass_rate,omitempty"`
}

// CourseExamResponse is the upstream payload for a course's exam listing.
type CourseExamResponse struct {
	CourseCode    string `json:"course_code"`
	CourseNameSwe string `json:"course_name_swe"`
	CourseNameEng string `json:"course_name_eng"`
	Exams         []Exam `json:"exams"`
}

// Solution references the answer document paired with an exam.
type Solution struct {
	ID     int64  `json:"id"`
	ExamID int64  `json:"exam_id"`
	PDFURL string `json:"pdf_url"`
}

// ExamWithSolutions bundles an exam with its solution documents.
type ExamWithSolutions struct {
	Exam      Exam       `json:"exam"`
	Solutions []Solution `json:"solutions"`
}

// Passing grade labels used when the upstream omits a precomputed pass rate.
var passingGrades = []string{"G", "VG", "3", "4", "5"}

// Failing grade labels counted into the total.
var failingGrades = []string{"U"}

// ComputedPassRate derives the pass percentage from the grade distribution.
// Returns false when the distribution is empty.
func (e Exam) ComputedPassRate() (float64, bool) {
	if e.PassRate != nil {
		return *e.PassRate, true
	}
	total := 0
	passed := 0
	for _, g := range passingGrades {
		passed += e.Statistics[g]
		total += e.Statistics[g]
	}
	for _, g := range failingGrades {
		total += e.Statistics[g]
	}
	if total == 0 {
		return 0, false
	}
	return float64(passed) / float64(total) * 100, true
}
