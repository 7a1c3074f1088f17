package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

func strPtr(s string) *string { return &s }

func maxItem(targetMale, targetFemale string) models.ItemTest {
	return models.ItemTest{
		Name:         "Vertical Jump",
		Unit:         "cm",
		TargetMale:   strPtr(targetMale),
		TargetFemale: strPtr(targetFemale),
		Direction:    models.DirectionMax,
	}
}

func minItem(target string) models.ItemTest {
	return models.ItemTest{
		Name:       "Sprint 100m",
		Unit:       "s",
		TargetMale: strPtr(target),
		Direction:  models.DirectionMin,
	}
}

func TestScoreMaxDirection(t *testing.T) {
	out := Score("12", maxItem("10", "8"), models.GenderMale)
	require.NotNil(t, out)
	assert.InDelta(t, 120.0, out.RawScore, 1e-9)
	assert.InDelta(t, 100.0, out.Score, 1e-9)
	assert.Equal(t, models.BandOnTarget, out.Band)

	out = Score("5", maxItem("10", "8"), models.GenderMale)
	require.NotNil(t, out)
	assert.InDelta(t, 50.0, out.Score, 1e-9)
	assert.Equal(t, models.BandMedium, out.Band)
}

func TestScoreMinDirection(t *testing.T) {
	out := Score("5", minItem("10"), models.GenderMale)
	require.NotNil(t, out)
	assert.InDelta(t, 200.0, out.RawScore, 1e-9)
	assert.InDelta(t, 100.0, out.Score, 1e-9)
	assert.Equal(t, models.BandOnTarget, out.Band)

	out = Score("20", minItem("10"), models.GenderMale)
	require.NotNil(t, out)
	assert.InDelta(t, 50.0, out.RawScore, 1e-9)
	assert.InDelta(t, 50.0, out.Score, 1e-9)
	assert.Equal(t, models.BandMedium, out.Band)
}

func TestScoreSelectsGenderTarget(t *testing.T) {
	item := maxItem("10", "8")

	male := Score("8", item, models.GenderMale)
	require.NotNil(t, male)
	assert.InDelta(t, 80.0, male.Score, 1e-9)

	female := Score("8", item, models.GenderFemale)
	require.NotNil(t, female)
	assert.InDelta(t, 100.0, female.Score, 1e-9)
}

func TestScoreUnscoreableInputs(t *testing.T) {
	item := maxItem("10", "8")

	assert.Nil(t, Score("", item, models.GenderMale), "empty raw value")
	assert.Nil(t, Score("abc", item, models.GenderMale), "non-numeric raw value")

	noTarget := models.ItemTest{Direction: models.DirectionMax}
	assert.Nil(t, Score("10", noTarget, models.GenderMale), "missing target")

	badTarget := maxItem("n/a", "n/a")
	assert.Nil(t, Score("10", badTarget, models.GenderFemale), "non-numeric target")

	zeroTarget := maxItem("0", "0")
	assert.Nil(t, Score("10", zeroTarget, models.GenderMale), "zero target")

	assert.Nil(t, Score("0", minItem("10"), models.GenderMale), "zero raw under min")
}

func TestScoreParsesCommaDecimals(t *testing.T) {
	out := Score("7,5", maxItem("10", "10"), models.GenderMale)
	require.NotNil(t, out)
	assert.InDelta(t, 75.0, out.Score, 1e-9)
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want models.Band
	}{
		{0, models.BandVeryLow},
		{19.999, models.BandVeryLow},
		{20.0, models.BandLow},
		{39.999, models.BandLow},
		{40.0, models.BandMedium},
		{59.999, models.BandMedium},
		{60.0, models.BandNearTarget},
		{99.999, models.BandNearTarget},
		{100.0, models.BandOnTarget},
		{150.0, models.BandOnTarget},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, Classify(tc.pct), "pct=%v", tc.pct)
	}
}

func TestMean(t *testing.T) {
	avg, ok := Mean([]float64{80, 90})
	require.True(t, ok)
	assert.InDelta(t, 85.0, avg, 1e-9)

	avg, ok = Mean([]float64{33.335, 33.335, 33.335})
	require.True(t, ok)
	assert.InDelta(t, 33.34, avg, 1e-9)

	_, ok = Mean(nil)
	assert.False(t, ok)
}
