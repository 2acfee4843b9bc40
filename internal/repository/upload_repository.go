package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/liu-tentor/exam-archive-api/internal/models"
)

// UploadRepository persists pending-upload metadata. The PDF bytes live
// on disk; only the row here makes an upload visible to reviewers.
type UploadRepository struct {
	db *sqlx.DB
}

// NewUploadRepository constructs the repository.
func NewUploadRepository(db *sqlx.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create inserts a pending-upload row. On failure the caller is
// responsible for removing the already-stored file.
func (r *UploadRepository) Create(ctx context.Context, upload *models.PendingUpload) error {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = time.Now().UTC()
	}
	if upload.Status == "" {
		upload.Status = models.UploadStatusPending
	}
	const query = `INSERT INTO pending_uploads
	(id, course_code, original_filename, stored_path, pdf_url, exam_date, role, status, uploaded_at, reviewed_at)
	VALUES (:id, :course_code, :original_filename, :stored_path, :pdf_url, :exam_date, :role, :status, :uploaded_at, :reviewed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, upload); err != nil {
		return fmt.Errorf("create pending upload: %w", err)
	}
	return nil
}

// GetByID retrieves one pending-upload row.
func (r *UploadRepository) GetByID(ctx context.Context, id string) (*models.PendingUpload, error) {
	const query = `SELECT id, course_code, original_filename, stored_path, pdf_url, exam_date, role, status, uploaded_at, reviewed_at
	FROM pending_uploads WHERE id = $1`
	var upload models.PendingUpload
	if err := r.db.GetContext(ctx, &upload, query, id); err != nil {
		return nil, err
	}
	return &upload, nil
}

// List returns pending uploads applying filters, newest first.
func (r *UploadRepository) List(ctx context.Context, filter models.UploadFilter) ([]models.PendingUpload, error) {
	builder := strings.Builder{}
	builder.WriteString(`SELECT id, course_code, original_filename, stored_path, pdf_url, exam_date, role, status, uploaded_at, reviewed_at
	FROM pending_uploads`)
	args := make([]interface{}, 0, 2)
	conditions := make([]string, 0, 2)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CourseCode != "" {
		args = append(args, strings.ToUpper(filter.CourseCode))
		conditions = append(conditions, fmt.Sprintf("course_code = $%d", len(args)))
	}

	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY uploaded_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d", limit))

	var records []models.PendingUpload
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list pending uploads: %w", err)
	}
	return records, nil
}

// UpdateStatus transitions an upload out of the review queue.
func (r *UploadRepository) UpdateStatus(ctx context.Context, id string, status models.UploadStatus, reviewedAt time.Time) error {
	const query = `UPDATE pending_uploads SET status = $2, reviewed_at = $3 WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, status, reviewedAt)
	if err != nil {
		return fmt.Errorf("update upload status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check upload status rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the metadata row, used when a rejected upload's file
// has already been cleaned up.
func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_uploads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pending upload: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check upload delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListOlderThan returns reviewed uploads older than the cutoff, used by
// the storage cleanup job.
func (r *UploadRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]models.PendingUpload, error) {
	const query = `SELECT id, course_code, original_filename, stored_path, pdf_url, exam_date, role, status, uploaded_at, reviewed_at
	FROM pending_uploads WHERE status <> 'PENDING' AND reviewed_at < $1 ORDER BY reviewed_at ASC`
	var records []models.PendingUpload
	if err := r.db.SelectContext(ctx, &records, query, cutoff); err != nil {
		return nil, fmt.Errorf("list reviewed uploads: %w", err)
	}
	return records, nil
}
