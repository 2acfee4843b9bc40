package models

import "time"

// DocumentRole classifies an uploaded document as an exam or its solution.
type DocumentRole string

const (
	RoleExam     DocumentRole = "EXAM"
	RoleSolution DocumentRole = "SOLUTION"
)

// UploadStatus tracks the review lifecycle of a pending upload.
type UploadStatus string

const (
	UploadStatusPending  UploadStatus = "PENDING"
	UploadStatusApproved UploadStatus = "APPROVED"
	UploadStatusRejected UploadStatus = "REJECTED"
)

// PendingUpload is a review-queue row referencing a stored PDF.
type PendingUpload struct {
	ID               string       `db:"id" json:"id"`
	CourseCode       string       `db:"course_code" json:"course_code"`
	OriginalFilename string       `db:"original_filename" json:"original_filename"`
	StoredPath       string       `db:"stored_path" json:"stored_path"`
	PDFURL           string       `db:"pdf_url" json:"pdf_url"`
	ExamDate         time.Time    `db:"exam_date" json:"exam_date"`
	Role             DocumentRole `db:"role" json:"role"`
	Status           UploadStatus `db:"status" json:"status"`
	UploadedAt       time.Time    `db:"uploaded_at" json:"uploaded_at"`
	ReviewedAt       *time.Time   `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// UploadFilter scopes review-queue listings.
type UploadFilter struct {
	CourseCode string
	Status     UploadStatus
	Limit      int
}

// UploadResult aggregates the outcome of a multi-file upload. Processing
// stops at the first failing file; already committed files stay committed.
type UploadResult struct {
	Uploaded []PendingUpload `json:"uploaded"`
	Failed   string          `json:"failed,omitempty"`
	Error    string          `json:"error,omitempty"`
}
