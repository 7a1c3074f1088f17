package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

// ResultRepository persists item, aspect and overall result rows. All writes
// for one participant's result tree happen inside a single transaction so a
// half-aggregated state is never visible.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// FetchByParticipant returns every item result recorded for a participant.
func (r *ResultRepository) FetchByParticipant(ctx context.Context, participantID string) ([]models.ItemResult, error) {
	const query = `SELECT id, participant_id, item_test_id, raw_value, score, raw_score, band, created_at, updated_at
        FROM item_results WHERE participant_id = $1`
	var results []models.ItemResult
	if err := r.db.SelectContext(ctx, &results, query, participantID); err != nil {
		return nil, fmt.Errorf("fetch item results: %w", err)
	}
	return results, nil
}

// FetchItemResultsByExam returns item results keyed by participant ID.
func (r *ResultRepository) FetchItemResultsByExam(ctx context.Context, examID string) (map[string][]models.ItemResult, error) {
	const query = `SELECT ir.id, ir.participant_id, ir.item_test_id, ir.raw_value, ir.score, ir.raw_score, ir.band, ir.created_at, ir.updated_at
        FROM item_results ir
        JOIN exam_participants p ON p.id = ir.participant_id
        WHERE p.exam_id = $1`
	rows, err := r.db.QueryxContext(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("fetch exam item results: %w", err)
	}
	defer rows.Close()
	result := make(map[string][]models.ItemResult)
	for rows.Next() {
		var ir models.ItemResult
		if err := rows.StructScan(&ir); err != nil {
			return nil, fmt.Errorf("scan item result: %w", err)
		}
		result[ir.ParticipantID] = append(result[ir.ParticipantID], ir)
	}
	return result, nil
}

// FetchAspectResultsByExam returns aspect results keyed by participant ID,
// ordered by the aspect display order.
func (r *ResultRepository) FetchAspectResultsByExam(ctx context.Context, examID string) (map[string][]models.AspectResult, error) {
	const query = `SELECT ar.id, ar.participant_id, ar.aspect_id, ar.percentage, ar.band, ar.calculated_at
        FROM aspect_results ar
        JOIN exam_aspects a ON a.id = ar.aspect_id
        WHERE a.exam_id = $1
        ORDER BY a.display_order, a.name`
	rows, err := r.db.QueryxContext(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("fetch exam aspect results: %w", err)
	}
	defer rows.Close()
	result := make(map[string][]models.AspectResult)
	for rows.Next() {
		var ar models.AspectResult
		if err := rows.StructScan(&ar); err != nil {
			return nil, fmt.Errorf("scan aspect result: %w", err)
		}
		result[ar.ParticipantID] = append(result[ar.ParticipantID], ar)
	}
	return result, nil
}

// FetchOverallByExam returns overall results keyed by participant ID.
func (r *ResultRepository) FetchOverallByExam(ctx context.Context, examID string) (map[string]models.OverallResult, error) {
	const query = `SELECT id, participant_id, exam_id, percentage, band, calculated_at
        FROM overall_results WHERE exam_id = $1`
	rows, err := r.db.QueryxContext(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("fetch overall results: %w", err)
	}
	defer rows.Close()
	result := make(map[string]models.OverallResult)
	for rows.Next() {
		var or models.OverallResult
		if err := rows.StructScan(&or); err != nil {
			return nil, fmt.Errorf("scan overall result: %w", err)
		}
		result[or.ParticipantID] = or
	}
	return result, nil
}

// FetchOverallRows returns overall results joined with participant identity
// for the given exams, optionally restricted to one participant kind.
func (r *ResultRepository) FetchOverallRows(ctx context.Context, examIDs []string, kind models.ParticipantKind) ([]models.OverallRow, error) {
	if len(examIDs) == 0 {
		return nil, nil
	}
	query := `SELECT o.participant_id, o.exam_id, p.kind, p.ref_id, p.name, o.percentage, o.band
        FROM overall_results o
        JOIN exam_participants p ON p.id = o.participant_id
        WHERE o.exam_id IN (?)`
	args := []interface{}{examIDs}
	if kind != "" {
		query += " AND p.kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY o.percentage DESC, o.calculated_at"
	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("build overall query: %w", err)
	}
	query = r.db.Rebind(query)
	var rows []models.OverallRow
	if err := r.db.SelectContext(ctx, &rows, query, inArgs...); err != nil {
		return nil, fmt.Errorf("fetch overall rows: %w", err)
	}
	return rows, nil
}

// FetchAspectRows returns aspect results joined with the aspect name and
// participant identity for the given exams. Used by the comparison matrix.
func (r *ResultRepository) FetchAspectRows(ctx context.Context, examIDs []string, kind models.ParticipantKind, categoryID string) ([]models.AspectResultRow, error) {
	if len(examIDs) == 0 {
		return nil, nil
	}
	query := `SELECT a.exam_id, a.name AS aspect_name, p.kind, p.ref_id, p.name, ar.percentage, ar.band
        FROM aspect_results ar
        JOIN exam_aspects a ON a.id = ar.aspect_id
        JOIN exam_participants p ON p.id = ar.participant_id
        WHERE a.exam_id IN (?)`
	args := []interface{}{examIDs}
	if kind != "" {
		query += " AND p.kind = ?"
		args = append(args, kind)
	}
	if categoryID != "" {
		query += " AND p.category_id = ?"
		args = append(args, categoryID)
	}
	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("build aspect rows query: %w", err)
	}
	query = r.db.Rebind(query)
	var rows []models.AspectResultRow
	if err := r.db.SelectContext(ctx, &rows, query, inArgs...); err != nil {
		return nil, fmt.Errorf("fetch aspect rows: %w", err)
	}
	return rows, nil
}

// SaveParticipantTree writes a participant's fully recomputed result tree in
// one transaction: item results are upserted on their natural key, aspect
// and overall rows are replaced wholesale. A nil overall (no scoreable
// aspect) leaves no overall row behind.
func (r *ResultRepository) SaveParticipantTree(ctx context.Context, examID, participantID string, items []models.ItemResult, aspects []models.AspectResult, overall *models.OverallResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	const itemUpsert = `INSERT INTO item_results (id, participant_id, item_test_id, raw_value, score, raw_score, band, created_at, updated_at)
        VALUES (:id, :participant_id, :item_test_id, :raw_value, :score, :raw_score, :band, :created_at, :updated_at)
        ON CONFLICT (participant_id, item_test_id)
        DO UPDATE SET raw_value = EXCLUDED.raw_value, score = EXCLUDED.score, raw_score = EXCLUDED.raw_score, band = EXCLUDED.band, updated_at = EXCLUDED.updated_at`
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		items[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, itemUpsert, items[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("upsert item result: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM aspect_results WHERE participant_id = $1`, participantID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("clear aspect results: %w", err)
	}
	const aspectInsert = `INSERT INTO aspect_results (id, participant_id, aspect_id, percentage, band, calculated_at)
        VALUES (:id, :participant_id, :aspect_id, :percentage, :band, :calculated_at)`
	for i := range aspects {
		if aspects[i].ID == "" {
			aspects[i].ID = uuid.NewString()
		}
		aspects[i].CalculatedAt = now
		if _, err := tx.NamedExecContext(ctx, aspectInsert, aspects[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert aspect result: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM overall_results WHERE participant_id = $1`, participantID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("clear overall result: %w", err)
	}
	if overall != nil {
		if overall.ID == "" {
			overall.ID = uuid.NewString()
		}
		overall.ExamID = examID
		overall.CalculatedAt = now
		const overallInsert = `INSERT INTO overall_results (id, participant_id, exam_id, percentage, band, calculated_at)
            VALUES (:id, :participant_id, :exam_id, :percentage, :band, :calculated_at)`
		if _, err := tx.NamedExecContext(ctx, overallInsert, overall); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert overall result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit result tree: %w", err)
	}
	return nil
}
