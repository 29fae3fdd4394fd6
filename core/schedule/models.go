package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tutorpad/tutorpad/core"
)

const keyPrefix = "schedule:"

// Schedule is one calendar event scoped to a batch. There is no update
// operation: editing is delete + recreate.
type Schedule struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batchId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewSchedule struct {
	BatchID string `json:"batchId" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Title   string `json:"title" validate:"required"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.Title = core.CleanString(ns.Title)
	return validate.Struct(ns)
}
