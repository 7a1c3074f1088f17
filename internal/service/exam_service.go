package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispora-dev/sportdev-api/internal/models"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
)

type examRepo interface {
	Create(ctx context.Context, exam *models.Exam) error
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	ListBySport(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
	Delete(ctx context.Context, id string) error
}

// CreateExamRequest schedules a new examination session.
type CreateExamRequest struct {
	SportID    string    `json:"sport_id" validate:"required"`
	CategoryID *string   `json:"category_id"`
	Name       string    `json:"name" validate:"required"`
	ExamDate   time.Time `json:"exam_date" validate:"required"`
}

// ExamService manages examination sessions. Rosters are owned by the
// external athlete registry; this service only handles the session shell.
type ExamService struct {
	exams     examRepo
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService constructs ExamService.
func NewExamService(exams examRepo, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{exams: exams, cache: cache, validator: validate, logger: logger}
}

// Create schedules a new exam.
func (s *ExamService) Create(ctx context.Context, req CreateExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	exam := &models.Exam{
		ID:         uuid.NewString(),
		SportID:    req.SportID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		ExamDate:   req.ExamDate,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam")
	}
	s.logger.Info("exam created", zap.String("exam_id", exam.ID), zap.String("sport_id", exam.SportID))
	return s.Get(ctx, exam.ID)
}

// Get returns one exam.
func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam id required")
	}
	exam, err := s.exams.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	return exam, nil
}

// List returns a sport's exams ordered by exam date ascending.
func (s *ExamService) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	if filter.SportID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sport id required")
	}
	exams, err := s.exams.ListBySport(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	return exams, nil
}

// Delete removes the exam together with its tree, roster links and results.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.exams.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exam")
	}
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "assessment:*")
	}
	s.logger.Info("exam deleted", zap.String("exam_id", id))
	return nil
}
