package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

// ParticipantRepository reads the exam-scoped roster. Rows are written by
// the external roster service; the scoring engine only consumes them.
type ParticipantRepository struct {
	db *sqlx.DB
}

// NewParticipantRepository creates a new participant repository.
func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// FindInExam returns one participant scoped to the exam.
func (r *ParticipantRepository) FindInExam(ctx context.Context, examID, participantID string) (*models.Participant, error) {
	const query = `SELECT id, exam_id, kind, ref_id, name, gender, birth_date, category_id, created_at
        FROM exam_participants WHERE exam_id = $1 AND id = $2`
	var participant models.Participant
	if err := r.db.GetContext(ctx, &participant, query, examID, participantID); err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListByExam returns the exam roster, optionally filtered by kind.
func (r *ParticipantRepository) ListByExam(ctx context.Context, examID string, kind models.ParticipantKind) ([]models.Participant, error) {
	query := `SELECT id, exam_id, kind, ref_id, name, gender, birth_date, category_id, created_at
        FROM exam_participants WHERE exam_id = $1`
	args := []interface{}{examID}
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", len(args)+1)
		args = append(args, kind)
	}
	query += " ORDER BY name"
	var participants []models.Participant
	if err := r.db.SelectContext(ctx, &participants, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}
