package testutil

import (
	"context"
	"testing"

	"github.com/tutorpad/tutorpad/core"
	"github.com/tutorpad/tutorpad/core/batch"
	"github.com/tutorpad/tutorpad/core/user"
)

// NewTestConfig returns a config suitable for tests: no env lookups, no
// output from the console email service.
func NewTestConfig() *core.Config {
	conf := &core.Config{
		AppName:  "TutorPad",
		Env:      "TEST",
		Debug:    true,
		TestMode: true,
	}
	conf.Admin.Username = "admin"
	conf.Admin.Password = "admin"
	conf.Admin.Name = "Admin"
	return conf
}

func CreateUser(
	t *testing.T,
	svc *user.Service,
	name, uname, pwd, role string,
	batchID *string,
) user.User {
	t.Helper()
	usr, err := svc.Create(context.Background(), user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     role,
		Name:     name,
		BatchID:  batchID,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateBatch(t *testing.T, svc *batch.Service, name string, teacherID *string) batch.Batch {
	t.Helper()
	b, err := svc.Create(context.Background(), batch.NewBatch{
		Name:      name,
		TeacherID: teacherID,
	})
	if err != nil {
		t.Fatalf("CreateBatch() failed: %v", err)
	}
	return b
}
