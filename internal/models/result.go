package models

import "time"

// Band is the ordinal performance classification derived from a capped
// percentage. It is always computed from the capped score, never the raw one.
type Band string

const (
	BandVeryLow    Band = "very_low"
	BandLow        Band = "low"
	BandMedium     Band = "medium"
	BandNearTarget Band = "near_target"
	BandOnTarget   Band = "on_target"
)

// ItemResult stores one measured value per (participant, item test). The raw
// value is kept verbatim; Score (capped), RawScore (uncapped) and Band are
// nil when the value or the gender-appropriate target is not scoreable.
type ItemResult struct {
	ID            string    `db:"id" json:"id"`
	ParticipantID string    `db:"participant_id" json:"participant_id"`
	ItemTestID    string    `db:"item_test_id" json:"item_test_id"`
	RawValue      string    `db:"raw_value" json:"raw_value"`
	Score         *float64  `db:"score" json:"score,omitempty"`
	RawScore      *float64  `db:"raw_score" json:"raw_score,omitempty"`
	Band          *Band     `db:"band" json:"band,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AspectResult is the per-participant average of capped item scores within
// one aspect. Absent when the aspect has no scoreable item.
type AspectResult struct {
	ID            string    `db:"id" json:"id"`
	ParticipantID string    `db:"participant_id" json:"participant_id"`
	AspectID      string    `db:"aspect_id" json:"aspect_id"`
	Percentage    float64   `db:"percentage" json:"percentage"`
	Band          Band      `db:"band" json:"band"`
	CalculatedAt  time.Time `db:"calculated_at" json:"calculated_at"`
}

// OverallResult is the per-participant average of aspect percentages for one
// exam instance. Absent when the participant has no aspect result.
type OverallResult struct {
	ID            string    `db:"id" json:"id"`
	ParticipantID string    `db:"participant_id" json:"participant_id"`
	ExamID        string    `db:"exam_id" json:"exam_id"`
	Percentage    float64   `db:"percentage" json:"percentage"`
	Band          Band      `db:"band" json:"band"`
	CalculatedAt  time.Time `db:"calculated_at" json:"calculated_at"`
}

// ParticipantResults bundles the full result tree of one participant for
// read endpoints.
type ParticipantResults struct {
	Participant   Participant    `json:"participant"`
	ItemResults   []ItemResult   `json:"item_results"`
	AspectResults []AspectResult `json:"aspect_results"`
	Overall       *OverallResult `json:"overall,omitempty"`
}
