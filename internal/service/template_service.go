package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dispora-dev/sportdev-api/internal/models"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
)

type templateRepo interface {
	FetchBySport(ctx context.Context, sportID string) ([]models.TemplateAspect, error)
	ReplaceTree(ctx context.Context, sportID string, aspects []models.TemplateAspect) error
}

type examReader interface {
	FindByID(ctx context.Context, id string) (*models.Exam, error)
}

type treeAppender interface {
	AppendTree(ctx context.Context, examID string, aspects []models.Aspect) error
}

// ItemTestInput is one item-test definition within a save payload. Targets
// stay free-form strings; non-numeric targets simply make the item
// unscoreable later.
type ItemTestInput struct {
	Name         string           `json:"name" validate:"required"`
	Unit         string           `json:"unit"`
	TargetMale   *string          `json:"target_male"`
	TargetFemale *string          `json:"target_female"`
	Direction    models.Direction `json:"direction" validate:"required,oneof=max min"`
	Order        int              `json:"order"`
}

// AspectInput is one aspect definition within a save payload.
type AspectInput struct {
	Name      string          `json:"name" validate:"required"`
	Order     int             `json:"order"`
	ItemTests []ItemTestInput `json:"item_tests" validate:"dive"`
}

// SaveTemplateRequest replaces a sport's whole template tree.
type SaveTemplateRequest struct {
	SportID string        `json:"sport_id" validate:"required"`
	Aspects []AspectInput `json:"aspects" validate:"required,dive"`
}

// CloneTemplateRequest copies a sport's template into an exam instance.
type CloneTemplateRequest struct {
	ExamID  string `json:"exam_id" validate:"required"`
	SportID string `json:"sport_id" validate:"required"`
}

// TemplateService manages the reusable per-sport test battery catalog.
type TemplateService struct {
	templates templateRepo
	exams     examReader
	setups    treeAppender
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTemplateService constructs TemplateService.
func NewTemplateService(templates templateRepo, exams examReader, setups treeAppender, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{templates: templates, exams: exams, setups: setups, validator: validate, logger: logger}
}

// Get returns the sport's template tree.
func (s *TemplateService) Get(ctx context.Context, sportID string) (*models.Template, error) {
	if sportID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sport id required")
	}
	aspects, err := s.templates.FetchBySport(ctx, sportID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	return &models.Template{SportID: sportID, HasTemplate: len(aspects) > 0, Aspects: aspects}, nil
}

// Save replaces the sport's entire template tree. Aspects and items from a
// previous save are removed, not merged.
func (s *TemplateService) Save(ctx context.Context, req SaveTemplateRequest) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}
	aspects := make([]models.TemplateAspect, 0, len(req.Aspects))
	for _, a := range req.Aspects {
		aspect := models.TemplateAspect{Name: a.Name, DisplayOrder: a.Order}
		for _, it := range a.ItemTests {
			aspect.ItemTests = append(aspect.ItemTests, models.TemplateItemTest{
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
	if err := s.templates.ReplaceTree(ctx, req.SportID, aspects); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save template")
	}
	s.logger.Info("template replaced", zap.String("sport_id", req.SportID), zap.Int("aspects", len(aspects)))
	return s.Get(ctx, req.SportID)
}

// Clone deep-copies the sport's template into the exam instance, keeping
// names, targets, direction and order and recording the source ids. Results
// are never copied. Calling it twice appends a second tree; there is no
// uniqueness guard at this layer.
func (s *TemplateService) Clone(ctx context.Context, req CloneTemplateRequest) ([]models.Aspect, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clone payload")
	}
	if _, err := s.exams.FindByID(ctx, req.ExamID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	templateAspects, err := s.templates.FetchBySport(ctx, req.SportID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	if len(templateAspects) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "sport has no template")
	}

	aspects := make([]models.Aspect, 0, len(templateAspects))
	for _, ta := range templateAspects {
		srcAspectID := ta.ID
		aspect := models.Aspect{
			Name:             ta.Name,
			DisplayOrder:     ta.DisplayOrder,
			TemplateAspectID: &srcAspectID,
		}
		for _, ti := range ta.ItemTests {
			srcItemID := ti.ID
			aspect.ItemTests = append(aspect.ItemTests, models.ItemTest{
				Name:           ti.Name,
				Unit:           ti.Unit,
				TargetMale:     ti.TargetMale,
				TargetFemale:   ti.TargetFemale,
				Direction:      ti.Direction,
				DisplayOrder:   ti.DisplayOrder,
				TemplateItemID: &srcItemID,
			})
		}
		aspects = append(aspects, aspect)
	}
	if err := s.setups.AppendTree(ctx, req.ExamID, aspects); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clone template")
	}
	s.logger.Info("template cloned", zap.String("sport_id", req.SportID), zap.String("exam_id", req.ExamID))
	return aspects, nil
}
