// Package upload classifies uploaded exam documents from their filenames:
// an embedded exam date and an exam-vs-solution role, used to pre-populate
// the review-queue entry.
package upload

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/liu-tentor/exam-archive-api/internal/models"
)

var (
	fullDatePattern = regexp.MustCompile(`(\d{4})[-_]?(\d{2})[-_]?(\d{2})`)
	digitRunPattern = regexp.MustCompile(`\d+`)
)

// solutionKeywords mark a filename as a solution document. Matching is done
// on the lower-cased name.
var solutionKeywords = []string{
	"lösningsförslag",
	"facit",
	"solution",
	"losning",
	"sol",
	"lsn",
	"losnings",
	"lösning",
	"tenlsg",
	"lf",
	"_l",
	"svar",
}

// combinedMarker identifies a combined exam-and-answers document. It takes
// precedence over the solution keywords: such files classify as exams even
// though they contain "svar".
const combinedMarker = "tenta_och_svar"

// ParseDate extracts an exam date from a filename. A loosely delimited
// YYYY-MM-DD form is tried first; failing that, a standalone six-digit
// YYMMDD run is interpreted as year 2000+YY. Both forms are validated for
// plausible ranges. Returns false when no candidate validates.
func ParseDate(name string) (time.Time, bool) {
	if m := fullDatePattern.FindStringSubmatch(name); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if year > 1990 && year < 2050 && validMonthDay(month, day) {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	// Compact dates must be exactly six digits with no adjacent digits,
	// so scan maximal digit runs rather than raw six-digit windows. Only
	// the first six-digit run is considered.
	for _, run := range digitRunPattern.FindAllString(name, -1) {
		if len(run) != 6 {
			continue
		}
		year, _ := strconv.Atoi(run[0:2])
		month, _ := strconv.Atoi(run[2:4])
		day, _ := strconv.Atoi(run[4:6])
		if validMonthDay(month, day) {
			return time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
		break
	}

	return time.Time{}, false
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// ClassifyRole decides whether the filename names a solution document.
// The combined exam-and-answers marker is checked before the keyword list;
// that precedence is deliberate and must not be reordered.
func ClassifyRole(name string) models.DocumentRole {
	normalised := strings.ToLower(name)
	if strings.Contains(normalised, combinedMarker) {
		return models.RoleExam
	}
	for _, keyword := range solutionKeywords {
		if strings.Contains(normalised, keyword) {
			return models.RoleSolution
		}
	}
	return models.RoleExam
}

// NormalisedFilename builds the canonical stored name for an upload.
func NormalisedFilename(courseCode string, examDate time.Time, role models.DocumentRole) string {
	return fmt.Sprintf("%s_%s_%s.pdf",
		strings.ToUpper(strings.TrimSpace(courseCode)),
		examDate.Format("2006-01-02"),
		role,
	)
}
