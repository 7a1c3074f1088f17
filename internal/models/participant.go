package models

import "time"

// ParticipantKind discriminates the roster entity a participant refers to.
// Lookups switch on this value exhaustively; never compare type names.
type ParticipantKind string

const (
	KindAthlete      ParticipantKind = "ATHLETE"
	KindCoach        ParticipantKind = "COACH"
	KindSupportStaff ParticipantKind = "SUPPORT_STAFF"
)

// Valid reports whether the kind is one of the three roster entity kinds.
func (k ParticipantKind) Valid() bool {
	switch k {
	case KindAthlete, KindCoach, KindSupportStaff:
		return true
	}
	return false
}

// Gender of a participant as resolved by the external roster.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParticipantRef is the tagged reference to one of the three roster
// entities. Two refs denote the same person when kind and ref id match.
type ParticipantRef struct {
	Kind  ParticipantKind `db:"kind" json:"kind"`
	RefID string          `db:"ref_id" json:"ref_id"`
}

// Participant is an exam-scoped roster entry. Name, gender and birthdate are
// snapshots resolved by the external roster at registration time; the
// scoring engine never re-resolves them.
type Participant struct {
	ID         string          `db:"id" json:"id"`
	ExamID     string          `db:"exam_id" json:"exam_id"`
	Kind       ParticipantKind `db:"kind" json:"kind"`
	RefID      string          `db:"ref_id" json:"ref_id"`
	Name       string          `db:"name" json:"name"`
	Gender     Gender          `db:"gender" json:"gender"`
	BirthDate  *time.Time      `db:"birth_date" json:"birth_date,omitempty"`
	CategoryID *string         `db:"category_id" json:"category_id,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Ref returns the participant's roster identity.
func (p Participant) Ref() ParticipantRef {
	return ParticipantRef{Kind: p.Kind, RefID: p.RefID}
}
