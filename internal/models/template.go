package models

import "time"

// TemplateAspect is a sport-level, session-independent aspect definition.
// Saving a sport's template replaces the whole tree; cloning copies it by
// value into an exam instance.
type TemplateAspect struct {
	ID           string             `db:"id" json:"id"`
	SportID      string             `db:"sport_id" json:"sport_id"`
	Name         string             `db:"name" json:"name"`
	DisplayOrder int                `db:"display_order" json:"display_order"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
	ItemTests    []TemplateItemTest `json:"item_tests,omitempty"`
}

// TemplateItemTest is a reusable item-test definition within a template aspect.
type TemplateItemTest struct {
	ID           string    `db:"id" json:"id"`
	AspectID     string    `db:"aspect_id" json:"aspect_id"`
	Name         string    `db:"name" json:"name"`
	Unit         string    `db:"unit" json:"unit"`
	TargetMale   *string   `db:"target_male" json:"target_male,omitempty"`
	TargetFemale *string   `db:"target_female" json:"target_female,omitempty"`
	Direction    Direction `db:"direction" json:"direction"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Template bundles a sport's aspect tree for read responses.
type Template struct {
	SportID     string           `json:"sport_id"`
	HasTemplate bool             `json:"has_template"`
	Aspects     []TemplateAspect `json:"aspects"`
}
