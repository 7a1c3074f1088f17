// Package scoring converts raw measured values into normalized percentages
// and ordinal performance bands. It is the single source of truth for band
// classification: every place a percentage becomes a band goes through
// Classify.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

// Outcome is the scored form of one raw measurement. RawScore is the
// uncapped percentage kept for display; Score is capped to [0, 100] and is
// the only value used for averaging and classification.
type Outcome struct {
	RawScore float64
	Score    float64
	Band     models.Band
}

// Score evaluates one raw value against the item's gender-appropriate
// target. It returns nil when the item cannot be scored: missing or
// non-numeric raw value or target, a zero target, or a zero raw value under
// the min direction. Unscoreable items are excluded from aggregation rather
// than treated as zero.
func Score(rawValue string, item models.ItemTest, gender models.Gender) *Outcome {
	raw, ok := parseNumber(rawValue)
	if !ok {
		return nil
	}
	targetStr := item.TargetFor(gender)
	if targetStr == nil {
		return nil
	}
	target, ok := parseNumber(*targetStr)
	if !ok || target == 0 {
		return nil
	}

	var riil float64
	switch item.Direction {
	case models.DirectionMax:
		riil = raw / target * 100
	case models.DirectionMin:
		if raw == 0 {
			return nil
		}
		riil = target / raw * 100
	default:
		return nil
	}

	capped := clamp(riil, 0, 100)
	return &Outcome{RawScore: riil, Score: capped, Band: Classify(capped)}
}

// Classify maps a capped percentage to its performance band. Intervals are
// half-open except the top: [0,20) [20,40) [40,60) [60,100) [100,∞).
func Classify(pct float64) models.Band {
	switch {
	case pct < 20:
		return models.BandVeryLow
	case pct < 40:
		return models.BandLow
	case pct < 60:
		return models.BandMedium
	case pct < 100:
		return models.BandNearTarget
	default:
		return models.BandOnTarget
	}
}

// Mean averages the given percentages rounded to two decimals. The boolean
// is false when the slice is empty, in which case no aggregate row should be
// produced.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Round2(sum / float64(len(values))), true
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseNumber accepts the free-form values the capture UI sends: plain
// decimals, optional surrounding whitespace and comma decimal separators.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
