package models

import "time"

// ComparisonValue is one (participant, aspect, exam) cell of the comparison
// matrix. Percentage and band are nil when the exam lacks that aspect or the
// participant has no result for it.
type ComparisonValue struct {
	ExamID     string   `json:"exam_id"`
	Percentage *float64 `json:"percentage,omitempty"`
	Band       *Band    `json:"band,omitempty"`
}

// ComparisonAspect holds the per-exam value slots for one aspect name, one
// slot per selected exam in date order.
type ComparisonAspect struct {
	Name   string            `json:"name"`
	Values []ComparisonValue `json:"values"`
}

// ComparisonRow is one participant's row across every aspect name that has
// at least one populated value for them.
type ComparisonRow struct {
	Ref     ParticipantRef     `json:"participant"`
	Name    string             `json:"name"`
	Aspects []ComparisonAspect `json:"aspects"`
}

// ComparisonExam describes one selected exam slot.
type ComparisonExam struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ExamDate time.Time `json:"exam_date"`
}

// Comparison is the cross-exam matrix joined by aspect name.
type Comparison struct {
	Exams       []ComparisonExam `json:"exams"`
	AspectNames []string         `json:"aspect_names"`
	Rows        []ComparisonRow  `json:"rows"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// AspectResultRow joins an aspect result with participant identity and the
// aspect name for comparison reads.
type AspectResultRow struct {
	ExamID     string          `db:"exam_id"`
	AspectName string          `db:"aspect_name"`
	Kind       ParticipantKind `db:"kind"`
	RefID      string          `db:"ref_id"`
	Name       string          `db:"name"`
	Percentage float64         `db:"percentage"`
	Band       Band            `db:"band"`
}
