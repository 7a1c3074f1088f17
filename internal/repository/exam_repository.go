package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

// ExamRepository persists exam instances.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository creates a new exam repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// Create inserts a new exam instance.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	const query = `INSERT INTO exams (id, sport_id, category_id, name, exam_date, created_at, updated_at)
        VALUES (:id, :sport_id, :category_id, :name, :exam_date, NOW(), NOW())`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// FindByID returns one exam instance.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	const query = `SELECT id, sport_id, category_id, name, exam_date, created_at, updated_at
        FROM exams WHERE id = $1`
	var exam models.Exam
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		return nil, err
	}
	return &exam, nil
}

// ListBySport returns a sport's exams ordered by exam date ascending. Date
// order is what the rolling ranking and comparison windows rely on.
func (r *ExamRepository) ListBySport(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	query := `SELECT id, sport_id, category_id, name, exam_date, created_at, updated_at
        FROM exams WHERE sport_id = $1`
	args := []interface{}{filter.SportID}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", len(args)+1)
		args = append(args, filter.CategoryID)
	}
	query += " ORDER BY exam_date, created_at"
	var exams []models.Exam
	if err := r.db.SelectContext(ctx, &exams, query, args...); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// ListByIDs returns the named exams ordered by exam date ascending.
func (r *ExamRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Exam, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, sport_id, category_id, name, exam_date, created_at, updated_at
        FROM exams WHERE id IN (?) ORDER BY exam_date, created_at`, ids)
	if err != nil {
		return nil, fmt.Errorf("build exam query: %w", err)
	}
	query = r.db.Rebind(query)
	var exams []models.Exam
	if err := r.db.SelectContext(ctx, &exams, query, args...); err != nil {
		return nil, fmt.Errorf("list exams by ids: %w", err)
	}
	return exams, nil
}

// Delete removes an exam and cascades to its aspects, items, participants
// and every result row, all in one transaction.
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	statements := []string{
		`DELETE FROM item_results WHERE participant_id IN (SELECT id FROM exam_participants WHERE exam_id = $1)`,
		`DELETE FROM aspect_results WHERE aspect_id IN (SELECT id FROM exam_aspects WHERE exam_id = $1)`,
		`DELETE FROM overall_results WHERE exam_id = $1`,
		`DELETE FROM exam_item_tests WHERE aspect_id IN (SELECT id FROM exam_aspects WHERE exam_id = $1)`,
		`DELETE FROM exam_aspects WHERE exam_id = $1`,
		`DELETE FROM exam_participants WHERE exam_id = $1`,
		`DELETE FROM exams WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete exam cascade: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit exam delete: %w", err)
	}
	return nil
}
