package models

import "time"

// RankingMode selects the leaderboard window.
type RankingMode string

const (
	// RankingModeSingle ranks one exam instance by its overall results.
	RankingModeSingle RankingMode = "single"
	// RankingModeRollingAll averages overall results over every exam of the sport.
	RankingModeRollingAll RankingMode = "rolling-all"
	// RankingModeRollingLastN averages over the most recent N exams by date.
	RankingModeRollingLastN RankingMode = "rolling-lastN"
)

// RankingEntry is one leaderboard row. Ties are not broken: rows with equal
// percentages keep their incoming relative order.
type RankingEntry struct {
	Rank       int            `json:"rank"`
	Ref        ParticipantRef `json:"participant"`
	Name       string         `json:"name"`
	Percentage float64        `json:"percentage"`
	Band       Band           `json:"band"`
	ExamCount  int            `json:"exam_count,omitempty"`
}

// Ranking is the leaderboard response for one window.
type Ranking struct {
	Mode        RankingMode    `json:"mode"`
	SportID     string         `json:"sport_id,omitempty"`
	ExamID      string         `json:"exam_id,omitempty"`
	WindowSize  int            `json:"window_size,omitempty"`
	ExamIDs     []string       `json:"exam_ids,omitempty"`
	Entries     []RankingEntry `json:"entries"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// OverallRow joins an overall result with its participant for ranking reads.
type OverallRow struct {
	ParticipantID string          `db:"participant_id"`
	ExamID        string          `db:"exam_id"`
	Kind          ParticipantKind `db:"kind"`
	RefID         string          `db:"ref_id"`
	Name          string          `db:"name"`
	Percentage    float64         `db:"percentage"`
	Band          Band            `db:"band"`
}
