package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

type mockExamListRepo struct {
	exams []models.Exam
}

func (m *mockExamListRepo) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	for _, exam := range m.exams {
		if exam.ID == id {
			e := exam
			return &e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockExamListRepo) ListBySport(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	var result []models.Exam
	for _, exam := range m.exams {
		if exam.SportID == filter.SportID {
			result = append(result, exam)
		}
	}
	return result, nil
}

type mockOverallRowsRepo struct {
	rows map[string][]models.OverallRow
}

func (m *mockOverallRowsRepo) FetchOverallRows(ctx context.Context, examIDs []string, kind models.ParticipantKind) ([]models.OverallRow, error) {
	var result []models.OverallRow
	for _, id := range examIDs {
		result = append(result, m.rows[id]...)
	}
	return result, nil
}

func dated(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func rankingFixture() *RankingService {
	exams := &mockExamListRepo{exams: []models.Exam{
		{ID: "e1", SportID: "sport-1", ExamDate: dated(1)},
		{ID: "e2", SportID: "sport-1", ExamDate: dated(5)},
		{ID: "e3", SportID: "sport-1", ExamDate: dated(10)},
		{ID: "e4", SportID: "sport-1", ExamDate: dated(15)},
		{ID: "e5", SportID: "sport-1", ExamDate: dated(20)},
	}}
	rows := map[string][]models.OverallRow{
		"e1": {
			{Kind: models.KindAthlete, RefID: "a1", Name: "Andi", Percentage: 40, Band: models.BandMedium, ExamID: "e1"},
		},
		"e3": {
			{Kind: models.KindAthlete, RefID: "a1", Name: "Andi", Percentage: 80, Band: models.BandNearTarget, ExamID: "e3"},
			{Kind: models.KindAthlete, RefID: "a2", Name: "Sari", Percentage: 90, Band: models.BandNearTarget, ExamID: "e3"},
		},
		"e4": {
			{Kind: models.KindAthlete, RefID: "a1", Name: "Andi", Percentage: 60, Band: models.BandNearTarget, ExamID: "e4"},
		},
		"e5": {
			{Kind: models.KindAthlete, RefID: "a1", Name: "Andi", Percentage: 70, Band: models.BandNearTarget, ExamID: "e5"},
			{Kind: models.KindAthlete, RefID: "a2", Name: "Sari", Percentage: 95, Band: models.BandNearTarget, ExamID: "e5"},
		},
	}
	return NewRankingService(exams, &mockOverallRowsRepo{rows: rows}, nil, nil, nil, 3)
}

func TestRankingSingleOrdersByStoreOrder(t *testing.T) {
	svc := rankingFixture()

	ranking, err := svc.Single(context.Background(), "e3")
	require.NoError(t, err)
	require.Len(t, ranking.Entries, 2)
	assert.Equal(t, 1, ranking.Entries[0].Rank)
	assert.Equal(t, "a1", ranking.Entries[0].Ref.RefID)
	assert.Equal(t, 2, ranking.Entries[1].Rank)
	assert.Equal(t, "a2", ranking.Entries[1].Ref.RefID)
}

func TestRankingSingleUnknownExam(t *testing.T) {
	svc := rankingFixture()

	_, err := svc.Single(context.Background(), "ghost")
	require.Error(t, err)
}

func TestRankingRollingAllAveragesOnlyPresentResults(t *testing.T) {
	svc := rankingFixture()

	ranking, err := svc.Rolling(context.Background(), "sport-1", models.RankingModeRollingAll, 0)
	require.NoError(t, err)
	require.Len(t, ranking.Entries, 2)

	// a2 only appears in two exams: (90 + 95) / 2; absence is not zero.
	assert.Equal(t, 1, ranking.Entries[0].Rank)
	assert.Equal(t, "a2", ranking.Entries[0].Ref.RefID)
	assert.InDelta(t, 92.5, ranking.Entries[0].Percentage, 0.001)
	assert.Equal(t, 2, ranking.Entries[0].ExamCount)

	// a1: (40 + 80 + 60 + 70) / 4.
	assert.Equal(t, 2, ranking.Entries[1].Rank)
	assert.Equal(t, "a1", ranking.Entries[1].Ref.RefID)
	assert.InDelta(t, 62.5, ranking.Entries[1].Percentage, 0.001)
	assert.Equal(t, 4, ranking.Entries[1].ExamCount)
}

func TestRankingRollingLastNWindowsByDate(t *testing.T) {
	svc := rankingFixture()

	ranking, err := svc.Rolling(context.Background(), "sport-1", models.RankingModeRollingLastN, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e4", "e5"}, ranking.ExamIDs)
	require.Len(t, ranking.Entries, 2)

	// a1 within the window: (80 + 60 + 70) / 3 = 70.
	assert.Equal(t, "a2", ranking.Entries[0].Ref.RefID)
	assert.InDelta(t, 92.5, ranking.Entries[0].Percentage, 0.001)
	assert.Equal(t, "a1", ranking.Entries[1].Ref.RefID)
	assert.InDelta(t, 70, ranking.Entries[1].Percentage, 0.001)
	assert.Equal(t, 3, ranking.Entries[1].ExamCount)
}

func TestRankingRollingLastNDefaultsWindow(t *testing.T) {
	svc := rankingFixture()

	ranking, err := svc.Rolling(context.Background(), "sport-1", models.RankingModeRollingLastN, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, ranking.WindowSize)
	assert.Equal(t, []string{"e3", "e4", "e5"}, ranking.ExamIDs)
}

func TestRankingRollingUnknownMode(t *testing.T) {
	svc := rankingFixture()

	_, err := svc.Rolling(context.Background(), "sport-1", models.RankingModeSingle, 0)
	require.Error(t, err)
}

func TestRankingRollingNoExams(t *testing.T) {
	svc := rankingFixture()

	ranking, err := svc.Rolling(context.Background(), "sport-2", models.RankingModeRollingAll, 0)
	require.NoError(t, err)
	assert.Empty(t, ranking.Entries)
}

func TestRankingDataset(t *testing.T) {
	svc := rankingFixture()

	ranking, err := svc.Rolling(context.Background(), "sport-1", models.RankingModeRollingAll, 0)
	require.NoError(t, err)

	dataset := svc.Dataset(ranking)
	assert.Equal(t, []string{"Rank", "Name", "Percentage", "Band", "Exams"}, dataset.Headers)
	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, "Sari", dataset.Rows[0]["Name"])
	assert.Equal(t, "92.50", dataset.Rows[0]["Percentage"])
}
