package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/liu-tentor/exam-archive-api/internal/models"
)

func newUploadRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUploadRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newUploadRepoMock(t)
	defer cleanup()

	repo := NewUploadRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pending_uploads")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	upload := &models.PendingUpload{
		CourseCode:       "TDDD97",
		OriginalFilename: "TDDD97_2024-01-15.pdf",
		StoredPath:       "TDDD97/TDDD97_2024-01-15_EXAM.pdf",
		ExamDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Role:             models.RoleExam,
	}
	require.NoError(t, repo.Create(context.Background(), upload))
	require.NotEmpty(t, upload.ID)
	require.Equal(t, models.UploadStatusPending, upload.Status)

	rows := sqlmock.NewRows([]string{"id", "course_code", "original_filename", "stored_path", "pdf_url", "exam_date", "role", "status", "uploaded_at", "reviewed_at"}).
		AddRow(upload.ID, upload.CourseCode, upload.OriginalFilename, upload.StoredPath, "", upload.ExamDate, upload.Role, upload.Status, time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_code, original_filename")).
		WithArgs(upload.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), upload.ID)
	require.NoError(t, err)
	require.Equal(t, upload.CourseCode, found.CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newUploadRepoMock(t)
	defer cleanup()

	repo := NewUploadRepository(db)
	rows := sqlmock.NewRows([]string{"id", "course_code", "original_filename", "stored_path", "pdf_url", "exam_date", "role", "status", "uploaded_at", "reviewed_at"}).
		AddRow("up-1", "TDDD97", "tenta.pdf", "TDDD97/x.pdf", "", time.Now(), "EXAM", "PENDING", time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_code, original_filename")).
		WithArgs("PENDING", "TDDD97").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.UploadFilter{
		Status:     models.UploadStatusPending,
		CourseCode: "tddd97",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "up-1", items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newUploadRepoMock(t)
	defer cleanup()

	repo := NewUploadRepository(db)
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE pending_uploads SET status = $2")).
		WithArgs("up-1", models.UploadStatusApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "up-1", models.UploadStatusApproved, now))

	// A second transition on the same row matches no PENDING row.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE pending_uploads SET status = $2")).
		WithArgs("up-1", models.UploadStatusRejected, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "up-1", models.UploadStatusRejected, now)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUploadRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newUploadRepoMock(t)
	defer cleanup()

	repo := NewUploadRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_uploads")).
		WithArgs("up-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "up-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_uploads")).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "gone"), sql.ErrNoRows)
}
