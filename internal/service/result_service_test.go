package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

type mockExamRepo struct {
	exams map[string]models.Exam
}

func (m *mockExamRepo) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	exam, ok := m.exams[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &exam, nil
}

type mockSetupReader struct {
	items map[string][]models.ItemTest
}

func (m *mockSetupReader) FetchItemsByExam(ctx context.Context, examID string) ([]models.ItemTest, error) {
	return m.items[examID], nil
}

type mockParticipantRepo struct {
	participants map[string]models.Participant
}

func (m *mockParticipantRepo) FindInExam(ctx context.Context, examID, participantID string) (*models.Participant, error) {
	p, ok := m.participants[participantID]
	if !ok || p.ExamID != examID {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (m *mockParticipantRepo) ListByExam(ctx context.Context, examID string, kind models.ParticipantKind) ([]models.Participant, error) {
	var result []models.Participant
	for _, p := range m.participants {
		if p.ExamID != examID {
			continue
		}
		if kind != "" && p.Kind != kind {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

type mockResultRepo struct {
	items    map[string][]models.ItemResult
	aspects  map[string][]models.AspectResult
	overalls map[string]*models.OverallResult
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{
		items:    make(map[string][]models.ItemResult),
		aspects:  make(map[string][]models.AspectResult),
		overalls: make(map[string]*models.OverallResult),
	}
}

func (m *mockResultRepo) FetchByParticipant(ctx context.Context, participantID string) ([]models.ItemResult, error) {
	return m.items[participantID], nil
}

func (m *mockResultRepo) FetchItemResultsByExam(ctx context.Context, examID string) (map[string][]models.ItemResult, error) {
	out := make(map[string][]models.ItemResult)
	for id, rows := range m.items {
		out[id] = rows
	}
	return out, nil
}

func (m *mockResultRepo) FetchAspectResultsByExam(ctx context.Context, examID string) (map[string][]models.AspectResult, error) {
	out := make(map[string][]models.AspectResult)
	for id, rows := range m.aspects {
		out[id] = rows
	}
	return out, nil
}

func (m *mockResultRepo) FetchOverallByExam(ctx context.Context, examID string) (map[string]models.OverallResult, error) {
	out := make(map[string]models.OverallResult)
	for id, overall := range m.overalls {
		if overall != nil {
			out[id] = *overall
		}
	}
	return out, nil
}

func (m *mockResultRepo) SaveParticipantTree(ctx context.Context, examID, participantID string, items []models.ItemResult, aspects []models.AspectResult, overall *models.OverallResult) error {
	merged := make(map[string]models.ItemResult)
	for _, row := range m.items[participantID] {
		merged[row.ItemTestID] = row
	}
	for _, row := range items {
		merged[row.ItemTestID] = row
	}
	rows := make([]models.ItemResult, 0, len(merged))
	for _, row := range merged {
		rows = append(rows, row)
	}
	m.items[participantID] = rows
	m.aspects[participantID] = aspects
	m.overalls[participantID] = overall
	return nil
}

func strPtr(s string) *string { return &s }

func resultFixture() (*ResultService, *mockResultRepo) {
	exams := &mockExamRepo{exams: map[string]models.Exam{"exam-1": {ID: "exam-1", SportID: "sport-1"}}}
	setups := &mockSetupReader{items: map[string][]models.ItemTest{
		"exam-1": {
			{ID: "item-1", AspectID: "aspect-1", Name: "Vertical Jump", Direction: models.DirectionMax, TargetMale: strPtr("60"), TargetFemale: strPtr("50")},
			{ID: "item-2", AspectID: "aspect-1", Name: "Push Up", Direction: models.DirectionMax, TargetMale: strPtr("40"), TargetFemale: strPtr("30")},
			{ID: "item-3", AspectID: "aspect-2", Name: "Sprint 100m", Direction: models.DirectionMin, TargetMale: strPtr("12"), TargetFemale: strPtr("14")},
		},
	}}
	participants := &mockParticipantRepo{participants: map[string]models.Participant{
		"part-1": {ID: "part-1", ExamID: "exam-1", Kind: models.KindAthlete, RefID: "ath-1", Name: "Budi", Gender: models.GenderMale},
	}}
	results := newMockResultRepo()
	svc := NewResultService(exams, setups, participants, results, nil, nil, nil)
	return svc, results
}

func TestSaveResultsComputesTree(t *testing.T) {
	svc, repo := resultFixture()

	err := svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults: []ItemResultInput{
				{ItemTestID: "item-1", RawValue: "45"},
				{ItemTestID: "item-2", RawValue: "40"},
				{ItemTestID: "item-3", RawValue: "10"},
			},
		}},
	})
	require.NoError(t, err)

	aspects := repo.aspects["part-1"]
	require.Len(t, aspects, 2)
	// aspect-1: (75 + 100) / 2
	assert.Equal(t, "aspect-1", aspects[0].AspectID)
	assert.InDelta(t, 87.5, aspects[0].Percentage, 0.001)
	assert.Equal(t, models.BandNearTarget, aspects[0].Band)
	// aspect-2: min direction, 12/10 capped at 100
	assert.Equal(t, "aspect-2", aspects[1].AspectID)
	assert.InDelta(t, 100, aspects[1].Percentage, 0.001)
	assert.Equal(t, models.BandOnTarget, aspects[1].Band)

	overall := repo.overalls["part-1"]
	require.NotNil(t, overall)
	assert.InDelta(t, 93.75, overall.Percentage, 0.001)
	assert.Equal(t, models.BandNearTarget, overall.Band)
}

func TestSaveResultsExcludesUnscoreableItems(t *testing.T) {
	svc, repo := resultFixture()

	err := svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults: []ItemResultInput{
				{ItemTestID: "item-1", RawValue: "30"},
				{ItemTestID: "item-2", RawValue: "abc"},
			},
		}},
	})
	require.NoError(t, err)

	// The raw value is stored even when the item cannot be scored.
	stored := make(map[string]models.ItemResult)
	for _, row := range repo.items["part-1"] {
		stored[row.ItemTestID] = row
	}
	require.Contains(t, stored, "item-2")
	assert.Equal(t, "abc", stored["item-2"].RawValue)
	assert.Nil(t, stored["item-2"].Score)

	// The unscoreable item does not drag the aspect average down.
	aspects := repo.aspects["part-1"]
	require.Len(t, aspects, 1)
	assert.InDelta(t, 50, aspects[0].Percentage, 0.001)
	assert.Equal(t, models.BandMedium, aspects[0].Band)
}

func TestSaveResultsNoScoreableItemsYieldsNoAggregates(t *testing.T) {
	svc, repo := resultFixture()

	err := svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults:   []ItemResultInput{{ItemTestID: "item-1", RawValue: ""}},
		}},
	})
	require.NoError(t, err)

	assert.Empty(t, repo.aspects["part-1"])
	assert.Nil(t, repo.overalls["part-1"])
}

func TestSaveResultsIsIdempotent(t *testing.T) {
	svc, repo := resultFixture()

	req := SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults: []ItemResultInput{
				{ItemTestID: "item-1", RawValue: "45"},
				{ItemTestID: "item-3", RawValue: "11"},
			},
		}},
	}
	require.NoError(t, svc.Save(context.Background(), req))
	first := *repo.overalls["part-1"]

	require.NoError(t, svc.Save(context.Background(), req))
	second := *repo.overalls["part-1"]

	assert.Equal(t, first.Percentage, second.Percentage)
	assert.Equal(t, first.Band, second.Band)
	assert.Len(t, repo.items["part-1"], 2)
}

func TestSaveResultsMergesWithExistingItems(t *testing.T) {
	svc, repo := resultFixture()

	require.NoError(t, svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults:   []ItemResultInput{{ItemTestID: "item-1", RawValue: "45"}},
		}},
	}))
	require.NoError(t, svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults:   []ItemResultInput{{ItemTestID: "item-2", RawValue: "20"}},
		}},
	}))

	// Recompute saw both items: (75 + 50) / 2.
	aspects := repo.aspects["part-1"]
	require.Len(t, aspects, 1)
	assert.InDelta(t, 62.5, aspects[0].Percentage, 0.001)
}

func TestSaveResultsUnknownParticipant(t *testing.T) {
	svc, _ := resultFixture()

	err := svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "ghost",
			ItemResults:   []ItemResultInput{{ItemTestID: "item-1", RawValue: "45"}},
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveResultsUnknownExam(t *testing.T) {
	svc, _ := resultFixture()

	err := svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "missing",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults:   []ItemResultInput{{ItemTestID: "item-1", RawValue: "45"}},
		}},
	})
	require.Error(t, err)
}

func TestResultsByExamFiltersKind(t *testing.T) {
	svc, _ := resultFixture()
	require.NoError(t, svc.Save(context.Background(), SaveResultsRequest{
		ExamID: "exam-1",
		Entries: []ResultEntry{{
			ParticipantID: "part-1",
			ItemResults:   []ItemResultInput{{ItemTestID: "item-1", RawValue: "60"}},
		}},
	}))

	rows, err := svc.ByExam(context.Background(), "exam-1", models.KindAthlete)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Overall)
	assert.InDelta(t, 100, rows[0].Overall.Percentage, 0.001)

	rows, err = svc.ByExam(context.Background(), "exam-1", models.KindCoach)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
