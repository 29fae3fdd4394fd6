package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tutorpad/tutorpad/core"
)

const keyPrefix = "assignment:"

// Assignment owns its submission list; there is no separate submission
// document. The id doubles as the store key ("assignment:<uuid>").
type Assignment struct {
	ID          string       `json:"id"`
	BatchID     string       `json:"batchId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"dueDate"`
	CreatedBy   string       `json:"createdBy"`
	Submissions []Submission `json:"submissions"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Submission is one student's project-link entry. At most one exists per
// (assignment, student), maintained by find-or-append on submit.
//
// Per (assignment, student) the states are:
// Unsubmitted -> Submitted -> Graded -> Re-graded (loops to Graded).
type Submission struct {
	StudentID   string     `json:"studentId"`
	StudentName string     `json:"studentName"`
	ProjectLink string     `json:"projectLink"`
	Points      *float64   `json:"points"`
	SubmittedAt time.Time  `json:"submittedAt"`
	GradedAt    *time.Time `json:"gradedAt,omitempty"`
}

func (s Submission) IsGraded() bool { return s.Points != nil }

type NewAssignment struct {
	BatchID     string `json:"batchId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
	CreatedBy   string `json:"createdBy" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	return validate.Struct(na)
}

type SubmitInput struct {
	StudentID   string `json:"studentId" validate:"required"`
	StudentName string `json:"studentName"`
	ProjectLink string `json:"projectLink" validate:"required"`
}

func (si *SubmitInput) Validate(validate *validator.Validate) error {
	si.ProjectLink = core.CleanString(si.ProjectLink)
	return validate.Struct(si)
}

// GradeInput carries any JSON number; the engine enforces no range (the
// client restricts to >= 0 but the server accepts what it is given).
type GradeInput struct {
	StudentID string   `json:"studentId" validate:"required"`
	Points    *float64 `json:"points" validate:"required"`
}

func (gi *GradeInput) Validate(validate *validator.Validate) error {
	return validate.Struct(gi)
}
