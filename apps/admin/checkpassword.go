package main

import (
	"errors"
	"fmt"
)

var errWrongPassword = errors.New("wrong password")

func (cli *commandLine) checkPassword(email, pwd string) error {
	usr, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return errWrongPassword
	}
	fmt.Fprintf(cli.out, "password OK for %s (%s)\n", usr.Name, usr.RoleName())
	return nil
}
