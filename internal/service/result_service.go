package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/scoring"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
)

type examItemsReader interface {
	FetchItemsByExam(ctx context.Context, examID string) ([]models.ItemTest, error)
}

type resultRepo interface {
	FetchByParticipant(ctx context.Context, participantID string) ([]models.ItemResult, error)
	FetchItemResultsByExam(ctx context.Context, examID string) (map[string][]models.ItemResult, error)
	FetchAspectResultsByExam(ctx context.Context, examID string) (map[string][]models.AspectResult, error)
	FetchOverallByExam(ctx context.Context, examID string) (map[string]models.OverallResult, error)
	SaveParticipantTree(ctx context.Context, examID, participantID string, items []models.ItemResult, aspects []models.AspectResult, overall *models.OverallResult) error
}

// ItemResultInput carries one raw measured value.
type ItemResultInput struct {
	ItemTestID string `json:"item_test_id" validate:"required"`
	RawValue   string `json:"raw_value"`
}

// ResultEntry carries one participant's batch of raw values.
type ResultEntry struct {
	ParticipantID string            `json:"participant_id" validate:"required"`
	ItemResults   []ItemResultInput `json:"item_results" validate:"required,dive"`
}

// SaveResultsRequest records raw values and triggers scoring and
// aggregation for every named participant.
type SaveResultsRequest struct {
	ExamID  string        `json:"exam_id" validate:"required"`
	Entries []ResultEntry `json:"entries" validate:"required,dive"`
}

// ResultService runs the capture → score → aggregate pipeline.
type ResultService struct {
	exams        examReader
	setups       examItemsReader
	participants participantReader
	results      resultRepo
	cache        *CacheService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewResultService constructs ResultService.
func NewResultService(exams examReader, setups examItemsReader, participants participantReader, results resultRepo, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		exams:        exams,
		setups:       setups,
		participants: participants,
		results:      results,
		cache:        cache,
		validator:    validate,
		logger:       logger,
	}
}

// Save upserts raw values keyed on (participant, item test) and recomputes
// each named participant's whole result tree — every affected aspect result
// and the overall result — from the full current item-result set. Writes for
// one participant are transactional; a failing participant aborts the batch.
func (s *ResultService) Save(ctx context.Context, req SaveResultsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid results payload")
	}
	if _, err := s.exams.FindByID(ctx, req.ExamID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	items, err := s.setups.FetchItemsByExam(ctx, req.ExamID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam items")
	}
	itemsByID := make(map[string]models.ItemTest, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	for _, entry := range req.Entries {
		participant, err := s.participants.FindInExam(ctx, req.ExamID, entry.ParticipantID)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("participant %s not found in exam", entry.ParticipantID))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load participant")
		}

		written := make([]models.ItemResult, 0, len(entry.ItemResults))
		for _, input := range entry.ItemResults {
			item, ok := itemsByID[input.ItemTestID]
			if !ok {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("item test %s not found in exam", input.ItemTestID))
			}
			result := models.ItemResult{
				ParticipantID: participant.ID,
				ItemTestID:    item.ID,
				RawValue:      input.RawValue,
			}
			if outcome := scoring.Score(input.RawValue, item, participant.Gender); outcome != nil {
				score := outcome.Score
				rawScore := outcome.RawScore
				band := outcome.Band
				result.Score = &score
				result.RawScore = &rawScore
				result.Band = &band
			}
			written = append(written, result)
		}

		existing, err := s.results.FetchByParticipant(ctx, participant.ID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing results")
		}
		merged := make(map[string]models.ItemResult, len(existing)+len(written))
		for _, result := range existing {
			merged[result.ItemTestID] = result
		}
		for _, result := range written {
			merged[result.ItemTestID] = result
		}

		aspects, overall := aggregate(participant.ID, items, merged)
		if err := s.results.SaveParticipantTree(ctx, req.ExamID, participant.ID, written, aspects, overall); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save results")
		}
	}

	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "assessment:*")
	}
	s.logger.Info("results saved", zap.String("exam_id", req.ExamID), zap.Int("participants", len(req.Entries)))
	return nil
}

// ByExam returns the per-participant item/aspect/overall rows for an exam,
// optionally restricted to one participant kind.
func (s *ResultService) ByExam(ctx context.Context, examID string, kind models.ParticipantKind) ([]models.ParticipantResults, error) {
	if examID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam id required")
	}
	if kind != "" && !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown participant kind")
	}
	if _, err := s.exams.FindByID(ctx, examID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	participants, err := s.participants.ListByExam(ctx, examID, kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load participants")
	}
	itemResults, err := s.results.FetchItemResultsByExam(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load item results")
	}
	aspectResults, err := s.results.FetchAspectResultsByExam(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load aspect results")
	}
	overalls, err := s.results.FetchOverallByExam(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load overall results")
	}

	results := make([]models.ParticipantResults, 0, len(participants))
	for _, participant := range participants {
		row := models.ParticipantResults{
			Participant:   participant,
			ItemResults:   itemResults[participant.ID],
			AspectResults: aspectResults[participant.ID],
		}
		if overall, ok := overalls[participant.ID]; ok {
			o := overall
			row.Overall = &o
		}
		results = append(results, row)
	}
	return results, nil
}

// aggregate rolls capped item scores up to aspect averages and the aspect
// averages up to one overall result. Aspects without a scoreable item and
// participants without a scoreable aspect produce no row at all.
func aggregate(participantID string, items []models.ItemTest, merged map[string]models.ItemResult) ([]models.AspectResult, *models.OverallResult) {
	scoresByAspect := make(map[string][]float64)
	aspectOrder := make([]string, 0)
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.AspectID] {
			seen[item.AspectID] = true
			aspectOrder = append(aspectOrder, item.AspectID)
		}
		result, ok := merged[item.ID]
		if !ok || result.Score == nil {
			continue
		}
		scoresByAspect[item.AspectID] = append(scoresByAspect[item.AspectID], *result.Score)
	}

	aspects := make([]models.AspectResult, 0, len(scoresByAspect))
	percentages := make([]float64, 0, len(scoresByAspect))
	for _, aspectID := range aspectOrder {
		avg, ok := scoring.Mean(scoresByAspect[aspectID])
		if !ok {
			continue
		}
		aspects = append(aspects, models.AspectResult{
			ParticipantID: participantID,
			AspectID:      aspectID,
			Percentage:    avg,
			Band:          scoring.Classify(avg),
		})
		percentages = append(percentages, avg)
	}

	overallPct, ok := scoring.Mean(percentages)
	if !ok {
		return aspects, nil
	}
	return aspects, &models.OverallResult{
		ParticipantID: participantID,
		Percentage:    overallPct,
		Band:          scoring.Classify(overallPct),
	}
}
