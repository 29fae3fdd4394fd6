package notification

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tutorpad/tutorpad/core"
)

const keyPrefix = "notification:"

// Target roles. "all" broadcasts to everyone; admins implicitly see every
// notification regardless of targeting.
const TargetAll = "all"

// Notification carries multi-dimensional targeting (role, batch, specific
// user) that is evaluated at read time; no recipient list is precomputed.
type Notification struct {
	ID            string                 `json:"id"`
	SenderID      string                 `json:"senderId"`
	SenderName    string                 `json:"senderName"`
	TargetRole    string                 `json:"targetRole"`
	TargetBatchID *string                `json:"targetBatchId"`
	TargetUserID  *string                `json:"targetUserId"`
	Message       string                 `json:"message"`
	Meta          map[string]interface{} `json:"meta"`
	Timestamp     Timestamp              `json:"timestamp"`
}

// Timestamp is an RFC 3339 instant that tolerates missing or malformed stored
// values, treating them as the zero time so legacy documents sort as earliest.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = ts
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

type NewNotification struct {
	SenderID      string                 `json:"senderId" validate:"required"`
	SenderName    string                 `json:"senderName"`
	TargetRole    string                 `json:"targetRole"`
	TargetBatchID *string                `json:"targetBatchId"`
	TargetUserID  *string                `json:"targetUserId"`
	Message       string                 `json:"message" validate:"required"`
	Meta          map[string]interface{} `json:"meta"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Message = core.CleanString(nn.Message)
	nn.TargetRole = core.CleanString(nn.TargetRole, true /* lower */)
	return validate.Struct(nn)
}

// QueryFilter is the caller's identity for targeting evaluation.
type QueryFilter struct {
	Role    string `query:"role"`
	BatchID string `query:"batchId"`
	UserID  string `query:"userId"`
}
