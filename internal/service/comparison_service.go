package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dispora-dev/sportdev-api/internal/models"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
)

type examBatchReader interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Exam, error)
}

type aspectRowsReader interface {
	FetchAspectRows(ctx context.Context, examIDs []string, kind models.ParticipantKind, categoryID string) ([]models.AspectResultRow, error)
}

// ComparisonService builds cross-exam matrices joined by aspect name.
// Aspect names match case-sensitively and exactly; "Speed" and "speed" are
// different columns.
type ComparisonService struct {
	exams   examBatchReader
	results aspectRowsReader
	cache   *CacheService
	logger  *zap.Logger
}

// NewComparisonService constructs ComparisonService.
func NewComparisonService(exams examBatchReader, results aspectRowsReader, cache *CacheService, logger *zap.Logger) *ComparisonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComparisonService{exams: exams, results: results, cache: cache, logger: logger}
}

// Compare builds the side-by-side matrix for the selected exams: the union
// of aspect names sorted by name, the union of athlete participants, and
// one value slot per exam in date order with explicit nulls. Participants
// with no populated value anywhere are dropped; an aspect with no populated
// value for a participant is dropped from that participant's row only.
func (s *ComparisonService) Compare(ctx context.Context, examIDs []string, categoryID string) (*models.Comparison, error) {
	examIDs = dedupeStrings(examIDs)
	if len(examIDs) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least two exam ids required")
	}
	cacheKey := makeAssessmentCacheKey("comparison", strings.Join(examIDs, ","), categoryID)
	var cached models.Comparison
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	exams, err := s.exams.ListByIDs(ctx, examIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exams")
	}
	if len(exams) != len(examIDs) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "one or more exams not found")
	}

	slotByExam := make(map[string]int, len(exams))
	comparison := &models.Comparison{GeneratedAt: time.Now().UTC()}
	for i, exam := range exams {
		slotByExam[exam.ID] = i
		comparison.Exams = append(comparison.Exams, models.ComparisonExam{ID: exam.ID, Name: exam.Name, ExamDate: exam.ExamDate})
	}

	rows, err := s.results.FetchAspectRows(ctx, examIDs, models.KindAthlete, categoryID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load aspect results")
	}

	type participantData struct {
		ref    models.ParticipantRef
		name   string
		values map[string][]*models.ComparisonValue
	}
	aspectNameSet := make(map[string]bool)
	participants := make(map[string]*participantData)
	for _, row := range rows {
		aspectNameSet[row.AspectName] = true
		key := string(row.Kind) + ":" + row.RefID
		data, ok := participants[key]
		if !ok {
			data = &participantData{
				ref:    models.ParticipantRef{Kind: row.Kind, RefID: row.RefID},
				name:   row.Name,
				values: make(map[string][]*models.ComparisonValue),
			}
			participants[key] = data
		}
		slots, ok := data.values[row.AspectName]
		if !ok {
			slots = make([]*models.ComparisonValue, len(exams))
			data.values[row.AspectName] = slots
		}
		pct := row.Percentage
		band := row.Band
		slots[slotByExam[row.ExamID]] = &models.ComparisonValue{ExamID: row.ExamID, Percentage: &pct, Band: &band}
	}

	aspectNames := make([]string, 0, len(aspectNameSet))
	for name := range aspectNameSet {
		aspectNames = append(aspectNames, name)
	}
	sort.Strings(aspectNames)
	comparison.AspectNames = aspectNames

	keys := make([]string, 0, len(participants))
	for key := range participants {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if participants[keys[i]].name != participants[keys[j]].name {
			return participants[keys[i]].name < participants[keys[j]].name
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		data := participants[key]
		row := models.ComparisonRow{Ref: data.ref, Name: data.name}
		for _, name := range aspectNames {
			slots := data.values[name]
			if !hasValue(slots) {
				continue
			}
			aspect := models.ComparisonAspect{Name: name, Values: make([]models.ComparisonValue, len(exams))}
			for i, exam := range exams {
				if slots != nil && slots[i] != nil {
					aspect.Values[i] = *slots[i]
				} else {
					aspect.Values[i] = models.ComparisonValue{ExamID: exam.ID}
				}
			}
			row.Aspects = append(row.Aspects, aspect)
		}
		if len(row.Aspects) == 0 {
			continue
		}
		comparison.Rows = append(comparison.Rows, row)
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, comparison, 0)
	}
	return comparison, nil
}

func hasValue(slots []*models.ComparisonValue) bool {
	for _, slot := range slots {
		if slot != nil {
			return true
		}
	}
	return false
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	return unique
}
