package assignment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
)

var (
	// errors
	ErrNotFound           = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	a := Assignment{
		ID:          keyPrefix + uuid.New().String(),
		BatchID:     na.BatchID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		CreatedBy:   na.CreatedBy,
		Submissions: []Submission{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.store.Set(ctx, a.ID, a); err != nil {
		return Assignment{}, errors.Wrap(err, "storing assignment")
	}
	return a, nil
}

// Query lists assignments, optionally filtered to one batch.
func (svc *Service) Query(ctx context.Context, batchID string) ([]Assignment, error) {
	docs, err := svc.store.GetByPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "scanning assignments")
	}
	assignments := make([]Assignment, 0, len(docs))
	for _, doc := range docs {
		var a Assignment
		if err := json.Unmarshal(doc, &a); err != nil {
			continue
		}
		if batchID != "" && a.BatchID != batchID {
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (svc *Service) get(ctx context.Context, id string) (Assignment, error) {
	var a Assignment
	if err := svc.store.Get(ctx, id, &a); err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return Assignment{}, ErrNotFound
		}
		return Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return a, nil
}

// Submit records or overwrites a student's submission. Resubmitting updates
// the project link and refreshes submittedAt but never touches points: a grade
// survives resubmission until the teacher explicitly re-grades. That is a
// policy, not a bug.
func (svc *Service) Submit(ctx context.Context, id string, in SubmitInput) (Assignment, error) {
	a, err := svc.get(ctx, id)
	if err != nil {
		return Assignment{}, err
	}

	now := time.Now().UTC()
	found := false
	for i := range a.Submissions {
		if a.Submissions[i].StudentID == in.StudentID {
			a.Submissions[i].ProjectLink = in.ProjectLink
			a.Submissions[i].SubmittedAt = now
			found = true
			break
		}
	}
	if !found {
		a.Submissions = append(a.Submissions, Submission{
			StudentID:   in.StudentID,
			StudentName: in.StudentName,
			ProjectLink: in.ProjectLink,
			Points:      nil,
			SubmittedAt: now,
		})
	}

	if err := svc.store.Set(ctx, id, a); err != nil {
		return Assignment{}, errors.Wrap(err, "storing assignment")
	}
	return a, nil
}

// Grade requires a prior submission; there is no grade-without-submission
// path. Points are set exactly as supplied (zero and regressions included)
// and gradedAt is refreshed. No grade history is kept.
func (svc *Service) Grade(ctx context.Context, id string, in GradeInput) (Assignment, error) {
	a, err := svc.get(ctx, id)
	if err != nil {
		return Assignment{}, err
	}

	var sub *Submission
	for i := range a.Submissions {
		if a.Submissions[i].StudentID == in.StudentID {
			sub = &a.Submissions[i]
			break
		}
	}
	if sub == nil {
		return Assignment{}, ErrSubmissionNotFound
	}

	now := time.Now().UTC()
	sub.Points = in.Points
	sub.GradedAt = &now

	if err := svc.store.Set(ctx, id, a); err != nil {
		return Assignment{}, errors.Wrap(err, "storing assignment")
	}
	return a, nil
}
