package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/user"
)

const topCourses = 5

func (cli *commandLine) listCourses(filter catalog.QueryFilter) error {
	filter.Search = core.CleanString(filter.Search)
	courses, err := cli.catSvc.Courses(filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLEVEL\tPRICE\tSTUDENTS")
	for _, c := range courses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\n", c.ID, c.Title, c.Category, c.Level, c.Price, c.StudentsEnrolled)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d courses\n", len(courses))
	return nil
}

func (cli *commandLine) stats() error {
	courses, err := cli.catSvc.AllCourses()
	if err != nil {
		return err
	}
	certs, err := cli.catSvc.Certificates()
	if err != nil {
		return err
	}
	instructors, err := cli.usrSvc.CountByRole(user.RoleInstructor)
	if err != nil {
		return err
	}

	ov := catalog.NewOverview(courses, certs, instructors)
	fmt.Fprintf(cli.out, "Total revenue:       %.2f\n", ov.TotalRevenue)
	fmt.Fprintf(cli.out, "Total students:      %d\n", ov.TotalStudents)
	fmt.Fprintf(cli.out, "Active courses:      %d\n", ov.ActiveCourses)
	fmt.Fprintf(cli.out, "Certificates issued: %d\n", ov.CertificatesIssued)
	fmt.Fprintf(cli.out, "Instructors:         %d\n", ov.Instructors)

	fmt.Fprintln(cli.out, "\nTop courses:")
	for i, c := range catalog.TopCourses(courses, topCourses) {
		fmt.Fprintf(cli.out, "%d. %s (%d students)\n", i+1, c.Title, c.StudentsEnrolled)
	}
	return nil
}
