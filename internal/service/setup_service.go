package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dispora-dev/sportdev-api/internal/models"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
)

type setupRepo interface {
	FetchByExam(ctx context.Context, examID string) ([]models.Aspect, error)
	ReplaceTree(ctx context.Context, examID string, aspects []models.Aspect) error
}

type participantReader interface {
	FindInExam(ctx context.Context, examID, participantID string) (*models.Participant, error)
	ListByExam(ctx context.Context, examID string, kind models.ParticipantKind) ([]models.Participant, error)
}

type itemResultReader interface {
	FetchByParticipant(ctx context.Context, participantID string) ([]models.ItemResult, error)
}

// SaveSetupRequest replaces an exam instance's whole aspect/item tree.
type SaveSetupRequest struct {
	ExamID  string        `json:"exam_id" validate:"required"`
	Aspects []AspectInput `json:"aspects" validate:"required,dive"`
}

// ParticipantItemView is one item test resolved for a participant: the
// gender-appropriate target plus any recorded result.
type ParticipantItemView struct {
	ItemTest models.ItemTest    `json:"item_test"`
	Target   *string            `json:"target,omitempty"`
	Result   *models.ItemResult `json:"result,omitempty"`
}

// ParticipantAspectView groups resolved items under their aspect.
type ParticipantAspectView struct {
	Aspect models.Aspect         `json:"aspect"`
	Items  []ParticipantItemView `json:"items"`
}

// ParticipantSetup is the capture form for one participant.
type ParticipantSetup struct {
	Participant models.Participant      `json:"participant"`
	Aspects     []ParticipantAspectView `json:"aspects"`
}

// SetupService manages per-exam test battery trees.
type SetupService struct {
	setups       setupRepo
	exams        examReader
	participants participantReader
	itemResults  itemResultReader
	cache        *CacheService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewSetupService constructs SetupService.
func NewSetupService(setups setupRepo, exams examReader, participants participantReader, itemResults itemResultReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SetupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetupService{
		setups:       setups,
		exams:        exams,
		participants: participants,
		itemResults:  itemResults,
		cache:        cache,
		validator:    validate,
		logger:       logger,
	}
}

// Get returns the exam's aspect tree.
func (s *SetupService) Get(ctx context.Context, examID string) ([]models.Aspect, error) {
	if examID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam id required")
	}
	aspects, err := s.setups.FetchByExam(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam setup")
	}
	return aspects, nil
}

// Save replaces the exam's entire tree. Existing results hanging off the
// replaced tree are destroyed with it; callers are warned this path is
// destructive.
func (s *SetupService) Save(ctx context.Context, req SaveSetupRequest) ([]models.Aspect, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setup payload")
	}
	if _, err := s.exams.FindByID(ctx, req.ExamID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	aspects := make([]models.Aspect, 0, len(req.Aspects))
	for _, a := range req.Aspects {
		aspect := models.Aspect{Name: a.Name, DisplayOrder: a.Order}
		for _, it := range a.ItemTests {
			aspect.ItemTests = append(aspect.ItemTests, models.ItemTest{
				Name:         it.Name,
				Unit:         it.Unit,
				TargetMale:   it.TargetMale,
				TargetFemale: it.TargetFemale,
				Direction:    it.Direction,
				DisplayOrder: it.Order,
			})
		}
		aspects = append(aspects, aspect)
	}
	if err := s.setups.ReplaceTree(ctx, req.ExamID, aspects); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save exam setup")
	}
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "assessment:*")
	}
	s.logger.Info("exam setup replaced", zap.String("exam_id", req.ExamID), zap.Int("aspects", len(aspects)))
	return s.Get(ctx, req.ExamID)
}

// ForParticipant returns the exam tree resolved for one participant: each
// item carries the gender-appropriate target and any existing result.
func (s *SetupService) ForParticipant(ctx context.Context, examID, participantID string) (*ParticipantSetup, error) {
	if examID == "" || participantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam id and participant id required")
	}
	participant, err := s.participants.FindInExam(ctx, examID, participantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found in exam")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load participant")
	}
	aspects, err := s.setups.FetchByExam(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam setup")
	}
	results, err := s.itemResults.FetchByParticipant(ctx, participantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	byItem := make(map[string]models.ItemResult, len(results))
	for _, result := range results {
		byItem[result.ItemTestID] = result
	}

	setup := &ParticipantSetup{Participant: *participant}
	for _, aspect := range aspects {
		view := ParticipantAspectView{Aspect: aspect}
		view.Aspect.ItemTests = nil
		for _, item := range aspect.ItemTests {
			itemView := ParticipantItemView{ItemTest: item, Target: item.TargetFor(participant.Gender)}
			if result, ok := byItem[item.ID]; ok {
				r := result
				itemView.Result = &r
			}
			view.Items = append(view.Items, itemView)
		}
		setup.Aspects = append(setup.Aspects, view)
	}
	return setup, nil
}
