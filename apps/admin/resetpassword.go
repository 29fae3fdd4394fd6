package main

import (
	"context"

	"github.com/tutorpad/tutorpad/core/user"
)

func (cli *commandLine) resetPassword(uname, role, pwd string) error {
	_, err := cli.usrSvc.Update(context.Background(), user.ID(role, uname), user.UpdateUser{
		Password: &pwd,
	})
	return err
}
