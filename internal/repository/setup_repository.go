package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

// SetupRepository persists the per-exam aspect/item-test tree.
type SetupRepository struct {
	db *sqlx.DB
}

// NewSetupRepository creates a new setup repository.
func NewSetupRepository(db *sqlx.DB) *SetupRepository {
	return &SetupRepository{db: db}
}

// FetchByExam returns the exam's aspect tree ordered by display order.
func (r *SetupRepository) FetchByExam(ctx context.Context, examID string) ([]models.Aspect, error) {
	const aspectQuery = `SELECT id, exam_id, name, display_order, template_aspect_id, created_at, updated_at
        FROM exam_aspects WHERE exam_id = $1 ORDER BY display_order, name`
	var aspects []models.Aspect
	if err := r.db.SelectContext(ctx, &aspects, aspectQuery, examID); err != nil {
		return nil, fmt.Errorf("fetch exam aspects: %w", err)
	}
	if len(aspects) == 0 {
		return aspects, nil
	}

	items, err := r.FetchItemsByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	byAspect := make(map[string][]models.ItemTest, len(aspects))
	for _, item := range items {
		byAspect[item.AspectID] = append(byAspect[item.AspectID], item)
	}
	for i := range aspects {
		aspects[i].ItemTests = byAspect[aspects[i].ID]
	}
	return aspects, nil
}

// FetchItemsByExam returns every item test of the exam ordered by display order.
func (r *SetupRepository) FetchItemsByExam(ctx context.Context, examID string) ([]models.ItemTest, error) {
	const query = `SELECT i.id, i.aspect_id, i.name, i.unit, i.target_male, i.target_female, i.direction, i.display_order, i.template_item_id, i.created_at, i.updated_at
        FROM exam_item_tests i
        JOIN exam_aspects a ON a.id = i.aspect_id
        WHERE a.exam_id = $1
        ORDER BY i.display_order, i.name`
	var items []models.ItemTest
	if err := r.db.SelectContext(ctx, &items, query, examID); err != nil {
		return nil, fmt.Errorf("fetch exam items: %w", err)
	}
	return items, nil
}

// ReplaceTree swaps the exam's whole aspect/item tree in one transaction.
// Results hanging off the removed tree are destroyed with it; this is the
// documented destructive contract of the manual setup path.
func (r *SetupRepository) ReplaceTree(ctx context.Context, examID string, aspects []models.Aspect) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	cleanup := []string{
		`DELETE FROM item_results WHERE item_test_id IN (
            SELECT i.id FROM exam_item_tests i JOIN exam_aspects a ON a.id = i.aspect_id WHERE a.exam_id = $1)`,
		`DELETE FROM aspect_results WHERE aspect_id IN (SELECT id FROM exam_aspects WHERE exam_id = $1)`,
		`DELETE FROM overall_results WHERE exam_id = $1`,
		`DELETE FROM exam_item_tests WHERE aspect_id IN (SELECT id FROM exam_aspects WHERE exam_id = $1)`,
		`DELETE FROM exam_aspects WHERE exam_id = $1`,
	}
	for _, stmt := range cleanup {
		if _, err := tx.ExecContext(ctx, stmt, examID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("clear exam tree: %w", err)
		}
	}
	if err := insertTree(ctx, tx, examID, aspects); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit exam tree: %w", err)
	}
	return nil
}

// AppendTree inserts the given aspect tree without touching existing rows.
// Used by template cloning; calling it twice duplicates the tree, the caller
// owns double-clone prevention.
func (r *SetupRepository) AppendTree(ctx context.Context, examID string, aspects []models.Aspect) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := insertTree(ctx, tx, examID, aspects); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cloned tree: %w", err)
	}
	return nil
}

func insertTree(ctx context.Context, tx *sqlx.Tx, examID string, aspects []models.Aspect) error {
	now := time.Now().UTC()
	const aspectInsert = `INSERT INTO exam_aspects (id, exam_id, name, display_order, template_aspect_id, created_at, updated_at)
        VALUES (:id, :exam_id, :name, :display_order, :template_aspect_id, :created_at, :updated_at)`
	const itemInsert = `INSERT INTO exam_item_tests (id, aspect_id, name, unit, target_male, target_female, direction, display_order, template_item_id, created_at, updated_at)
        VALUES (:id, :aspect_id, :name, :unit, :target_male, :target_female, :direction, :display_order, :template_item_id, :created_at, :updated_at)`

	for i := range aspects {
		aspects[i].ID = uuid.NewString()
		aspects[i].ExamID = examID
		aspects[i].CreatedAt = now
		aspects[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, aspectInsert, aspects[i]); err != nil {
			return fmt.Errorf("insert exam aspect: %w", err)
		}
		for j := range aspects[i].ItemTests {
			item := &aspects[i].ItemTests[j]
			item.ID = uuid.NewString()
			item.AspectID = aspects[i].ID
			item.CreatedAt = now
			item.UpdatedAt = now
			if _, err := tx.NamedExecContext(ctx, itemInsert, item); err != nil {
				return fmt.Errorf("insert exam item: %w", err)
			}
		}
	}
	return nil
}
