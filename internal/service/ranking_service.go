package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/scoring"
	"github.com/dispora-dev/sportdev-api/pkg/export"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
)

type examListReader interface {
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	ListBySport(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
}

type overallRowsReader interface {
	FetchOverallRows(ctx context.Context, examIDs []string, kind models.ParticipantKind) ([]models.OverallRow, error)
}

// RankingService builds leaderboards over overall results. Only athletes
// appear in leaderboards; coaches and support staff may hold recorded raw
// values but are never ranked.
type RankingService struct {
	exams         examListReader
	results       overallRowsReader
	cache         *CacheService
	metrics       *MetricsService
	logger        *zap.Logger
	rollingWindow int
}

// NewRankingService constructs RankingService. rollingWindow is the default
// N for the rolling-lastN mode.
func NewRankingService(exams examListReader, results overallRowsReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger, rollingWindow int) *RankingService {
	if rollingWindow <= 0 {
		rollingWindow = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankingService{exams: exams, results: results, cache: cache, metrics: metrics, logger: logger, rollingWindow: rollingWindow}
}

// Single ranks one exam instance by overall percentage, descending. Ties are
// not broken; rows with equal percentages keep store order.
func (s *RankingService) Single(ctx context.Context, examID string) (*models.Ranking, error) {
	if examID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam id required")
	}
	cacheKey := makeAssessmentCacheKey("ranking", "single", examID)
	var cached models.Ranking
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	if _, err := s.exams.FindByID(ctx, examID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}

	start := time.Now()
	rows, err := s.results.FetchOverallRows(ctx, []string{examID}, models.KindAthlete)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load overall results")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("ranking_single", time.Since(start))
	}

	ranking := &models.Ranking{Mode: models.RankingModeSingle, ExamID: examID, GeneratedAt: time.Now().UTC()}
	for i, row := range rows {
		ranking.Entries = append(ranking.Entries, models.RankingEntry{
			Rank:       i + 1,
			Ref:        models.ParticipantRef{Kind: row.Kind, RefID: row.RefID},
			Name:       row.Name,
			Percentage: row.Percentage,
			Band:       row.Band,
			ExamCount:  1,
		})
	}
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, ranking, 0)
	}
	return ranking, nil
}

// Rolling averages each athlete's overall results over every exam of the
// sport (rolling-all) or the most recent N by exam date (rolling-lastN).
// Missing sessions are skipped, never zero-filled.
func (s *RankingService) Rolling(ctx context.Context, sportID string, mode models.RankingMode, lastN int) (*models.Ranking, error) {
	if sportID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sport id required")
	}
	if mode != models.RankingModeRollingAll && mode != models.RankingModeRollingLastN {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown ranking mode")
	}
	window := 0
	if mode == models.RankingModeRollingLastN {
		window = lastN
		if window <= 0 {
			window = s.rollingWindow
		}
	}
	cacheKey := makeAssessmentCacheKey("ranking", string(mode), sportID, strconv.Itoa(window))
	var cached models.Ranking
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	exams, err := s.exams.ListBySport(ctx, models.ExamFilter{SportID: sportID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	if window > 0 && len(exams) > window {
		exams = exams[len(exams)-window:]
	}
	examIDs := make([]string, 0, len(exams))
	for _, exam := range exams {
		examIDs = append(examIDs, exam.ID)
	}

	ranking := &models.Ranking{Mode: mode, SportID: sportID, WindowSize: window, ExamIDs: examIDs, GeneratedAt: time.Now().UTC()}
	if len(examIDs) == 0 {
		return ranking, nil
	}

	start := time.Now()
	rows, err := s.results.FetchOverallRows(ctx, examIDs, models.KindAthlete)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load overall results")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("ranking_rolling", time.Since(start))
	}

	type accumulator struct {
		ref   models.ParticipantRef
		name  string
		sum   float64
		count int
	}
	order := make([]string, 0)
	byRef := make(map[string]*accumulator)
	for _, row := range rows {
		key := string(row.Kind) + ":" + row.RefID
		acc, ok := byRef[key]
		if !ok {
			acc = &accumulator{ref: models.ParticipantRef{Kind: row.Kind, RefID: row.RefID}, name: row.Name}
			byRef[key] = acc
			order = append(order, key)
		}
		acc.sum += row.Percentage
		acc.count++
	}

	entries := make([]models.RankingEntry, 0, len(byRef))
	for _, key := range order {
		acc := byRef[key]
		pct := scoring.Round2(acc.sum / float64(acc.count))
		entries = append(entries, models.RankingEntry{
			Ref:        acc.ref,
			Name:       acc.name,
			Percentage: pct,
			Band:       scoring.Classify(pct),
			ExamCount:  acc.count,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	ranking.Entries = entries

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, ranking, 0)
	}
	return ranking, nil
}

// Dataset flattens a ranking into the tabular form the CSV/PDF exporters
// consume.
func (s *RankingService) Dataset(ranking *models.Ranking) export.Dataset {
	data := export.Dataset{Headers: []string{"Rank", "Name", "Percentage", "Band", "Exams"}}
	for _, entry := range ranking.Entries {
		data.Rows = append(data.Rows, map[string]string{
			"Rank":       strconv.Itoa(entry.Rank),
			"Name":       entry.Name,
			"Percentage": fmt.Sprintf("%.2f", entry.Percentage),
			"Band":       string(entry.Band),
			"Exams":      strconv.Itoa(entry.ExamCount),
		})
	}
	return data
}

func makeAssessmentCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString("assessment")
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}
