package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)

type Service struct {
	store   core.Store
	mailSvc core.EmailService
	conf    *core.Config
}

func NewService(store core.Store, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{store: store, mailSvc: mailSvc, conf: conf}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	key := Key(nu.Role, nu.Username)

	var existing User
	err := svc.store.Get(ctx, key, &existing)
	if err == nil {
		return User{}, ErrUsernameExists
	}
	if !errors.Is(err, core.ErrKeyNotFound) {
		return User{}, errors.Wrap(err, "checking username uniqueness")
	}

	usr := User{
		ID:        ID(nu.Role, nu.Username),
		Username:  nu.Username,
		Role:      nu.Role,
		Name:      nu.Name,
		Email:     nu.Email,
		BatchID:   nu.BatchID,
		CreatedAt: time.Now().UTC(),
	}
	usr.SetPassword(nu.Password)

	if err := svc.store.Set(ctx, key, usr); err != nil {
		return User{}, errors.Wrap(err, "storing user")
	}
	svc.sendWelcomeEmail(usr)
	return usr.Sanitized(), nil
}

// Query lists users, optionally restricted to one role. Records are always
// sanitized; documents that fail to decode are skipped defensively.
func (svc *Service) Query(ctx context.Context, role string) ([]User, error) {
	docs, err := svc.store.GetByPrefix(ctx, PrefixFor(role))
	if err != nil {
		return nil, errors.Wrap(err, "scanning users")
	}
	users := make([]User, 0, len(docs))
	for _, doc := range docs {
		var usr User
		if err := json.Unmarshal(doc, &usr); err != nil {
			continue
		}
		users = append(users, usr.Sanitized())
	}
	return users, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	var usr User
	if err := svc.store.Get(ctx, keyPrefix+id, &usr); err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

// Update shallow-merges the set fields into the stored document and
// re-obfuscates the password only when a new one is supplied.
func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if uu.Name != nil {
		usr.Name = *uu.Name
	}
	if uu.Email != nil {
		usr.Email = *uu.Email
	}
	if uu.BatchID.Set {
		usr.BatchID = uu.BatchID.Ptr()
	}
	if uu.Password != nil && *uu.Password != "" {
		usr.SetPassword(*uu.Password)
	}

	if err := svc.store.Set(ctx, keyPrefix+id, usr); err != nil {
		return User{}, errors.Wrap(err, "storing user")
	}
	return usr.Sanitized(), nil
}

// Delete is unconditional: referencing batch rosters and submissions are left
// dangling and filtered out by readers.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Delete(ctx, keyPrefix+id)
}

// EnsureDefaultAdmin bootstraps the configured admin account when it does not
// exist yet, so a fresh install is immediately usable.
func (svc *Service) EnsureDefaultAdmin(ctx context.Context) error {
	key := Key(RoleAdmin, svc.conf.Admin.Username)

	var existing User
	err := svc.store.Get(ctx, key, &existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, core.ErrKeyNotFound) {
		return errors.Wrap(err, "checking default admin")
	}

	usr := User{
		ID:        ID(RoleAdmin, svc.conf.Admin.Username),
		Username:  svc.conf.Admin.Username,
		Role:      RoleAdmin,
		Name:      svc.conf.Admin.Name,
		CreatedAt: time.Now().UTC(),
	}
	usr.SetPassword(svc.conf.Admin.Password)
	return errors.Wrap(svc.store.Set(ctx, key, usr), "storing default admin")
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil || usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome!",
		TextContent: fmt.Sprintf(
			"Hi %s,\n\nYour %s account has been created. Sign in as %q on the %s portal.\n",
			usr.Name, svc.conf.AppName, usr.Username, usr.Role,
		),
	})
}
