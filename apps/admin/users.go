package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/eduverse/core/user"
)

func (cli *commandLine) listUsers(filter user.QueryFilter) error {
	if err := cli.validate.Struct(filter); err != nil {
		return err
	}
	users, err := cli.usrSvc.Filter(filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCOURSES")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", u.ID, u.Name, u.Email, u.RoleName(), len(u.EnrolledCourses))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d users\n", len(users))
	return nil
}
