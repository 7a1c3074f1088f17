package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

type mockSetupRepo struct {
	trees map[string][]models.Aspect
}

func (m *mockSetupRepo) FetchByExam(ctx context.Context, examID string) ([]models.Aspect, error) {
	return m.trees[examID], nil
}

func (m *mockSetupRepo) ReplaceTree(ctx context.Context, examID string, aspects []models.Aspect) error {
	if m.trees == nil {
		m.trees = make(map[string][]models.Aspect)
	}
	stored := make([]models.Aspect, len(aspects))
	copy(stored, aspects)
	for i := range stored {
		stored[i].ID = "ea-" + stored[i].Name
		stored[i].ExamID = examID
		for j := range stored[i].ItemTests {
			stored[i].ItemTests[j].ID = "ei-" + stored[i].ItemTests[j].Name
		}
	}
	m.trees[examID] = stored
	return nil
}

type mockItemResultReader struct {
	results map[string][]models.ItemResult
}

func (m *mockItemResultReader) FetchByParticipant(ctx context.Context, participantID string) ([]models.ItemResult, error) {
	return m.results[participantID], nil
}

func setupFixture() (*SetupService, *mockSetupRepo, *mockItemResultReader) {
	setups := &mockSetupRepo{}
	exams := &mockExamRepo{exams: map[string]models.Exam{"exam-1": {ID: "exam-1", SportID: "sport-1"}}}
	participants := &mockParticipantRepo{participants: map[string]models.Participant{
		"part-1": {ID: "part-1", ExamID: "exam-1", Kind: models.KindAthlete, RefID: "ath-1", Name: "Budi", Gender: models.GenderMale},
		"part-2": {ID: "part-2", ExamID: "exam-1", Kind: models.KindAthlete, RefID: "ath-2", Name: "Sari", Gender: models.GenderFemale},
	}}
	itemResults := &mockItemResultReader{results: make(map[string][]models.ItemResult)}
	svc := NewSetupService(setups, exams, participants, itemResults, nil, nil, nil)
	return svc, setups, itemResults
}

func TestSetupSaveReplacesTree(t *testing.T) {
	svc, repo, _ := setupFixture()

	_, err := svc.Save(context.Background(), SaveSetupRequest{
		ExamID: "exam-1",
		Aspects: []AspectInput{
			{Name: "Physical", Order: 1, ItemTests: []ItemTestInput{
				{Name: "Vertical Jump", TargetMale: strPtr("60"), TargetFemale: strPtr("50"), Direction: models.DirectionMax},
			}},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.trees["exam-1"], 1)

	aspects, err := svc.Save(context.Background(), SaveSetupRequest{
		ExamID:  "exam-1",
		Aspects: []AspectInput{{Name: "Technique", Order: 1}},
	})
	require.NoError(t, err)
	require.Len(t, aspects, 1)
	assert.Equal(t, "Technique", aspects[0].Name)
}

func TestSetupSaveUnknownExam(t *testing.T) {
	svc, _, _ := setupFixture()

	_, err := svc.Save(context.Background(), SaveSetupRequest{
		ExamID:  "ghost",
		Aspects: []AspectInput{{Name: "Physical"}},
	})
	require.Error(t, err)
}

func TestSetupForParticipantResolvesGenderTarget(t *testing.T) {
	svc, _, itemResults := setupFixture()

	_, err := svc.Save(context.Background(), SaveSetupRequest{
		ExamID: "exam-1",
		Aspects: []AspectInput{
			{Name: "Physical", Order: 1, ItemTests: []ItemTestInput{
				{Name: "Vertical Jump", TargetMale: strPtr("60"), TargetFemale: strPtr("50"), Direction: models.DirectionMax},
			}},
		},
	})
	require.NoError(t, err)

	score := 75.0
	band := models.BandNearTarget
	itemResults.results["part-1"] = []models.ItemResult{
		{ParticipantID: "part-1", ItemTestID: "ei-Vertical Jump", RawValue: "45", Score: &score, Band: &band},
	}

	male, err := svc.ForParticipant(context.Background(), "exam-1", "part-1")
	require.NoError(t, err)
	require.Len(t, male.Aspects, 1)
	require.Len(t, male.Aspects[0].Items, 1)
	require.NotNil(t, male.Aspects[0].Items[0].Target)
	assert.Equal(t, "60", *male.Aspects[0].Items[0].Target)
	require.NotNil(t, male.Aspects[0].Items[0].Result)
	assert.Equal(t, "45", male.Aspects[0].Items[0].Result.RawValue)

	female, err := svc.ForParticipant(context.Background(), "exam-1", "part-2")
	require.NoError(t, err)
	require.NotNil(t, female.Aspects[0].Items[0].Target)
	assert.Equal(t, "50", *female.Aspects[0].Items[0].Target)
	assert.Nil(t, female.Aspects[0].Items[0].Result)
}

func TestSetupForParticipantUnknownParticipant(t *testing.T) {
	svc, _, _ := setupFixture()

	_, err := svc.ForParticipant(context.Background(), "exam-1", "ghost")
	require.Error(t, err)
}
