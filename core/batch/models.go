package batch

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tutorpad/tutorpad/core"
)

const keyPrefix = "batch:"

// Batch is a class/cohort of students taught by one teacher. The document id
// doubles as the store key ("batch:<uuid>").
//
// Roster membership is duplicated: Batch.StudentIDs and User.BatchID both
// encode it. Keeping the two consistent is the caller's responsibility via two
// independent writes; a partial failure leaves an observable half-updated
// state, by contract.
type Batch struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TeacherID  *string   `json:"teacherId"`
	StudentIDs []string  `json:"studentIds"`
	MeetLink   string    `json:"meetLink"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NewBatch struct {
	Name      string  `json:"name" validate:"required"`
	TeacherID *string `json:"teacherId"`
	MeetLink  string  `json:"meetLink"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.Name = core.CleanString(nb.Name)
	return validate.Struct(nb)
}

// UpdateBatch shallow-merges into an existing Batch. Roster changes go through
// StudentIDs carrying the full new list; there is no add/remove primitive.
type UpdateBatch struct {
	Name       *string             `json:"name"`
	TeacherID  core.OptionalString `json:"teacherId"`
	StudentIDs *[]string           `json:"studentIds"`
	MeetLink   *string             `json:"meetLink"`
}

func (ub *UpdateBatch) Validate(validate *validator.Validate) error {
	if ub.Name != nil {
		*ub.Name = core.CleanString(*ub.Name)
	}
	return validate.Struct(ub)
}
