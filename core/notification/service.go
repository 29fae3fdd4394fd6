package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
)

// NotFoundError reports a failed delete along with every candidate key that
// was tried, so the caller can see exactly what was looked up.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notification not found (tried %s)", strings.Join(e.Tried, ", "))
}

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

// Create stores the notification as-is; no recipient resolution happens at
// write time.
func (svc *Service) Create(ctx context.Context, nn NewNotification) (Notification, error) {
	targetRole := nn.TargetRole
	if targetRole == "" {
		targetRole = TargetAll
	}
	n := Notification{
		ID:            keyPrefix + uuid.New().String(),
		SenderID:      nn.SenderID,
		SenderName:    nn.SenderName,
		TargetRole:    targetRole,
		TargetBatchID: nn.TargetBatchID,
		TargetUserID:  nn.TargetUserID,
		Message:       nn.Message,
		Meta:          nn.Meta,
		Timestamp:     Timestamp{time.Now().UTC()},
	}
	if err := svc.store.Set(ctx, n.ID, n); err != nil {
		return Notification{}, errors.Wrap(err, "storing notification")
	}
	return n, nil
}

// Query evaluates targeting per notification against the caller's identity:
//
//  1. admins see everything;
//  2. direct user targeting wins regardless of role or batch;
//  3. targetRole "all" is a broadcast;
//  4. a role match includes the notification unless it is pinned to another
//     batch;
//  5. everything else is excluded.
//
// Results are sorted newest-first; documents without a usable timestamp sort
// as earliest.
func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Notification, error) {
	docs, err := svc.store.GetByPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "scanning notifications")
	}

	notifications := make([]Notification, 0, len(docs))
	for _, doc := range docs {
		var n Notification
		if err := json.Unmarshal(doc, &n); err != nil {
			continue
		}
		if visibleTo(n, filter) {
			notifications = append(notifications, n)
		}
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Timestamp.After(notifications[j].Timestamp.Time)
	})
	return notifications, nil
}

func visibleTo(n Notification, f QueryFilter) bool {
	if f.Role == "admin" {
		return true
	}
	if f.UserID != "" && n.TargetUserID != nil && *n.TargetUserID == f.UserID {
		return true
	}
	if n.TargetRole == TargetAll {
		return true
	}
	if n.TargetRole == f.Role {
		if n.TargetBatchID != nil {
			return *n.TargetBatchID == f.BatchID
		}
		return true
	}
	return false
}

// Delete accepts the identifier either as the bare uuid or as the fully
// prefixed key. Candidates are tried in order and the first existing one is
// deleted; when none exists the returned error carries every tried key.
func (svc *Service) Delete(ctx context.Context, id string) (string, error) {
	candidates := []string{id}
	if !strings.HasPrefix(id, keyPrefix) {
		candidates = append(candidates, keyPrefix+id)
	}

	for _, key := range candidates {
		var raw json.RawMessage
		err := svc.store.Get(ctx, key, &raw)
		if errors.Is(err, core.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return "", errors.Wrap(err, "checking notification")
		}
		if err := svc.store.Delete(ctx, key); err != nil {
			return "", errors.Wrap(err, "deleting notification")
		}
		return key, nil
	}
	return "", &NotFoundError{Tried: candidates}
}
