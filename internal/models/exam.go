package models

import "time"

// Direction indicates whether a higher or lower raw value is better.
type Direction string

const (
	// DirectionMax means a higher measured value is better (e.g. jump height).
	DirectionMax Direction = "max"
	// DirectionMin means a lower measured value is better (e.g. sprint time).
	DirectionMin Direction = "min"
)

// Exam represents one scheduled special-examination session for a sport.
type Exam struct {
	ID         string    `db:"id" json:"id"`
	SportID    string    `db:"sport_id" json:"sport_id"`
	CategoryID *string   `db:"category_id" json:"category_id,omitempty"`
	Name       string    `db:"name" json:"name"`
	ExamDate   time.Time `db:"exam_date" json:"exam_date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Aspect groups item tests within one exam instance. Display order drives
// all rendering and aggregation ordering. Names are matched case-sensitively
// across sessions by the comparison feature.
type Aspect struct {
	ID               string     `db:"id" json:"id"`
	ExamID           string     `db:"exam_id" json:"exam_id"`
	Name             string     `db:"name" json:"name"`
	DisplayOrder     int        `db:"display_order" json:"display_order"`
	TemplateAspectID *string    `db:"template_aspect_id" json:"template_aspect_id,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
	ItemTests        []ItemTest `json:"item_tests,omitempty"`
}

// ItemTest is a single measurable metric within an aspect. Targets are
// free-form strings and must parse as numbers to be scoreable.
type ItemTest struct {
	ID             string    `db:"id" json:"id"`
	AspectID       string    `db:"aspect_id" json:"aspect_id"`
	Name           string    `db:"name" json:"name"`
	Unit           string    `db:"unit" json:"unit"`
	TargetMale     *string   `db:"target_male" json:"target_male,omitempty"`
	TargetFemale   *string   `db:"target_female" json:"target_female,omitempty"`
	Direction      Direction `db:"direction" json:"direction"`
	DisplayOrder   int       `db:"display_order" json:"display_order"`
	TemplateItemID *string   `db:"template_item_id" json:"template_item_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TargetFor returns the gender-appropriate raw target for the item.
func (t ItemTest) TargetFor(gender Gender) *string {
	if gender == GenderMale {
		return t.TargetMale
	}
	return t.TargetFemale
}

// ExamFilter scopes exam listing queries.
type ExamFilter struct {
	SportID    string
	CategoryID string
}
