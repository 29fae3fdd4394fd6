package batch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
)

var ErrNotFound = errors.New("batch not found")

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Create(ctx context.Context, nb NewBatch) (Batch, error) {
	b := Batch{
		ID:         keyPrefix + uuid.New().String(),
		Name:       nb.Name,
		TeacherID:  nb.TeacherID,
		StudentIDs: []string{},
		MeetLink:   nb.MeetLink,
		CreatedAt:  time.Now().UTC(),
	}
	if err := svc.store.Set(ctx, b.ID, b); err != nil {
		return Batch{}, errors.Wrap(err, "storing batch")
	}
	return b, nil
}

func (svc *Service) Query(ctx context.Context) ([]Batch, error) {
	docs, err := svc.store.GetByPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "scanning batches")
	}
	batches := make([]Batch, 0, len(docs))
	for _, doc := range docs {
		var b Batch
		if err := json.Unmarshal(doc, &b); err != nil {
			continue
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Batch, error) {
	var b Batch
	if err := svc.store.Get(ctx, id, &b); err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return Batch{}, ErrNotFound
		}
		return Batch{}, errors.Wrap(err, "getting batch")
	}
	return b, nil
}

func (svc *Service) Update(ctx context.Context, id string, ub UpdateBatch) (Batch, error) {
	b, err := svc.Get(ctx, id)
	if err != nil {
		return Batch{}, err
	}

	if ub.Name != nil {
		b.Name = *ub.Name
	}
	if ub.TeacherID.Set {
		b.TeacherID = ub.TeacherID.Ptr()
	}
	if ub.StudentIDs != nil {
		b.StudentIDs = *ub.StudentIDs
	}
	if ub.MeetLink != nil {
		b.MeetLink = *ub.MeetLink
	}

	if err := svc.store.Set(ctx, id, b); err != nil {
		return Batch{}, errors.Wrap(err, "storing batch")
	}
	return b, nil
}

// Delete is unconditional and does not cascade: schedules, assignments and
// notifications referencing the batch stay behind as tolerated dangling refs.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Delete(ctx, id)
}
