package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
	"github.com/tutorpad/tutorpad/core/user"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no session")
	ErrInvalidSession     = errors.New("invalid session")
)

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

// Login authenticates a (role, username, password) triple and mints a fresh
// session token. Each login call creates its own session; concurrent sessions
// per user are not limited.
func (svc *Service) Login(ctx context.Context, creds Credentials) (string, user.User, error) {
	var usr user.User
	err := svc.store.Get(ctx, user.Key(creds.Role, creds.Username), &usr)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return "", user.User{}, ErrInvalidCredentials
		}
		return "", user.User{}, errors.Wrap(err, "getting user")
	}
	if !usr.CheckPassword(creds.Password) {
		return "", user.User{}, ErrInvalidCredentials
	}

	token := uuid.New().String()
	sess := Session{
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     usr.Role,
		Name:     usr.Name,
		BatchID:  usr.BatchID,
	}
	if err := svc.store.Set(ctx, Key(token), sess); err != nil {
		return "", user.User{}, errors.Wrap(err, "storing session")
	}
	return token, usr.Sanitized(), nil
}

// GetSession resolves a session token presented via the X-Session-ID header.
func (svc *Service) GetSession(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	var sess Session
	if err := svc.store.Get(ctx, Key(token), &sess); err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return Session{}, ErrInvalidSession
		}
		return Session{}, errors.Wrap(err, "getting session")
	}
	return sess, nil
}

// Logout deletes the session record; an absent session is not an error.
func (svc *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return svc.store.Delete(ctx, Key(token))
}
