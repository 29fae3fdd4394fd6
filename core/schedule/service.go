package schedule

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
)

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Create(ctx context.Context, ns NewSchedule) (Schedule, error) {
	s := Schedule{
		ID:        keyPrefix + uuid.New().String(),
		BatchID:   ns.BatchID,
		Date:      ns.Date,
		Time:      ns.Time,
		Title:     ns.Title,
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.store.Set(ctx, s.ID, s); err != nil {
		return Schedule{}, errors.Wrap(err, "storing schedule")
	}
	return s, nil
}

// Query lists schedules, optionally filtered to one batch. There is no
// date-range query.
func (svc *Service) Query(ctx context.Context, batchID string) ([]Schedule, error) {
	docs, err := svc.store.GetByPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "scanning schedules")
	}
	schedules := make([]Schedule, 0, len(docs))
	for _, doc := range docs {
		var s Schedule
		if err := json.Unmarshal(doc, &s); err != nil {
			continue
		}
		if batchID != "" && s.BatchID != batchID {
			continue
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Delete(ctx, id)
}
