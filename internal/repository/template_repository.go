package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

// TemplateRepository persists the sport-level aspect/item-test catalog.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// FetchBySport returns the template tree for a sport ordered by aspect then
// item display order.
func (r *TemplateRepository) FetchBySport(ctx context.Context, sportID string) ([]models.TemplateAspect, error) {
	const aspectQuery = `SELECT id, sport_id, name, display_order, created_at, updated_at
        FROM template_aspects WHERE sport_id = $1 ORDER BY display_order, name`
	var aspects []models.TemplateAspect
	if err := r.db.SelectContext(ctx, &aspects, aspectQuery, sportID); err != nil {
		return nil, fmt.Errorf("fetch template aspects: %w", err)
	}
	if len(aspects) == 0 {
		return aspects, nil
	}

	const itemQuery = `SELECT i.id, i.aspect_id, i.name, i.unit, i.target_male, i.target_female, i.direction, i.display_order, i.created_at, i.updated_at
        FROM template_item_tests i
        JOIN template_aspects a ON a.id = i.aspect_id
        WHERE a.sport_id = $1
        ORDER BY i.display_order, i.name`
	var items []models.TemplateItemTest
	if err := r.db.SelectContext(ctx, &items, itemQuery, sportID); err != nil {
		return nil, fmt.Errorf("fetch template items: %w", err)
	}

	byAspect := make(map[string][]models.TemplateItemTest, len(aspects))
	for _, item := range items {
		byAspect[item.AspectID] = append(byAspect[item.AspectID], item)
	}
	for i := range aspects {
		aspects[i].ItemTests = byAspect[aspects[i].ID]
	}
	return aspects, nil
}

// ReplaceTree swaps the entire template of a sport in one transaction.
// Aspects and items from a prior save are removed, not merged.
func (r *TemplateRepository) ReplaceTree(ctx context.Context, sportID string, aspects []models.TemplateAspect) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM template_item_tests WHERE aspect_id IN (SELECT id FROM template_aspects WHERE sport_id = $1)`, sportID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete template items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM template_aspects WHERE sport_id = $1`, sportID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete template aspects: %w", err)
	}

	now := time.Now().UTC()
	const aspectInsert = `INSERT INTO template_aspects (id, sport_id, name, display_order, created_at, updated_at)
        VALUES (:id, :sport_id, :name, :display_order, :created_at, :updated_at)`
	const itemInsert = `INSERT INTO template_item_tests (id, aspect_id, name, unit, target_male, target_female, direction, display_order, created_at, updated_at)
        VALUES (:id, :aspect_id, :name, :unit, :target_male, :target_female, :direction, :display_order, :created_at, :updated_at)`

	for i := range aspects {
		aspects[i].ID = uuid.NewString()
		aspects[i].SportID = sportID
		aspects[i].CreatedAt = now
		aspects[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, aspectInsert, aspects[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert template aspect: %w", err)
		}
		for j := range aspects[i].ItemTests {
			item := &aspects[i].ItemTests[j]
			item.ID = uuid.NewString()
			item.AspectID = aspects[i].ID
			item.CreatedAt = now
			item.UpdatedAt = now
			if _, err := tx.NamedExecContext(ctx, itemInsert, item); err != nil {
				tx.Rollback() //nolint:errcheck
				return fmt.Errorf("insert template item: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit template tree: %w", err)
	}
	return nil
}
