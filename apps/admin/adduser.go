package main

import (
	"context"

	"github.com/tutorpad/tutorpad/core/user"
)

func (cli *commandLine) addUser(uname, name, role, email, pwd string) error {
	_, err := cli.usrSvc.Create(context.Background(), user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     role,
		Name:     name,
		Email:    email,
	})
	return err
}
