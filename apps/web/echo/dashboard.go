package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/progress"
	"github.com/trezcool/eduverse/core/user"
)

const (
	recommendationsLimit = 3
	topCoursesLimit      = 5
	webinarsAttended     = 8
)

type (
	dashboardPage struct {
		Name             string
		Progress         []progress.CourseProgress
		Certificates     []catalog.Certificate
		Recommendations  []catalog.Course
		HoursLearned     float64
		WebinarsAttended int
	}

	adminPage struct {
		Overview catalog.Overview
		Top      []catalog.Course
		Managed  []catalog.Course
		Activity []activity
	}

	activity struct {
		Text string
		When string
	}
)

var recentActivity = []activity{
	{"New student registered", "2 minutes ago"},
	{"Course completed by John Doe", "15 minutes ago"},
	{"Certificate issued", "1 hour ago"},
}

func registerDashboardPages(g *echo.Group, s *Server) {
	g.GET("/dashboard", s.dashboard, requireAuth)
	g.GET("/dashboard/certificates/:id", s.certificateView, requireAuth)
	g.POST("/courses/:id/lessons/:lesson/complete", s.completeLesson, requireAuth)
	g.POST("/courses/:id/progress/reset", s.resetProgress, requireAuth)
	g.GET("/admin", s.admin, requireAuth)
}

// contextUser is only called behind requireAuth.
func contextUser(ctx echo.Context) (user.User, error) {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting context visitor")
	}
	usr, ok := v.User()
	if !ok {
		return user.User{}, errUnauthorized
	}
	return usr, nil
}

func (s *Server) dashboard(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	courses, err := s.CatalogSvc.AllCourses()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	certs, err := s.CatalogSvc.CertificatesFor(usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}

	enrolled := catalog.EnrolledCourses(usr, courses)
	rows, hours, err := s.ProgressSvc.Dashboard(ctx.Request().Context(), usr.ID, enrolled)
	if err != nil {
		return errors.Wrap(err, "loading progress")
	}

	data := dashboardPage{
		Name:             usr.Name,
		Progress:         rows,
		Certificates:     certs,
		Recommendations:  catalog.Recommendations(enrolled, courses, recommendationsLimit),
		HoursLearned:     hours,
		WebinarsAttended: webinarsAttended,
	}
	return ctx.Render(http.StatusOK, "dashboard", newPage(ctx, "Dashboard", data))
}

func (s *Server) certificateView(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	cert, err := s.CatalogSvc.Certificate(usr.ID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding certificate")
	}
	view := s.CertGen.View(cert)
	return ctx.Render(http.StatusOK, "certificate", newPage(ctx, "Certificate", view))
}

func (s *Server) completeLesson(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	course, err := s.CatalogSvc.Course(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	if err := s.ProgressSvc.CompleteLesson(ctx.Request().Context(), usr.ID, course, ctx.Param("lesson")); err != nil {
		return errors.Wrap(err, "completing lesson")
	}
	return redirectBack(ctx, coursePath(ctx))
}

func (s *Server) resetProgress(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	course, err := s.CatalogSvc.Course(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	if err := s.ProgressSvc.Reset(ctx.Request().Context(), usr.ID, course.ID); err != nil {
		return errors.Wrap(err, "resetting progress")
	}
	return redirectBack(ctx, coursePath(ctx))
}

// admin shows the platform aggregates. Every action on the page is inert.
func (s *Server) admin(ctx echo.Context) error {
	ov, courses, err := s.overview()
	if err != nil {
		return err
	}
	data := adminPage{
		Overview: ov,
		Top:      catalog.TopCourses(courses, topCoursesLimit),
		Managed:  catalog.ManagedCourses(courses),
		Activity: recentActivity,
	}
	return ctx.Render(http.StatusOK, "admin", newPage(ctx, "Admin", data))
}

func (s *Server) overview() (catalog.Overview, []catalog.Course, error) {
	courses, err := s.CatalogSvc.AllCourses()
	if err != nil {
		return catalog.Overview{}, nil, errors.Wrap(err, "querying courses")
	}
	certs, err := s.CatalogSvc.Certificates()
	if err != nil {
		return catalog.Overview{}, nil, errors.Wrap(err, "querying certificates")
	}
	instructors, err := s.UserSvc.CountByRole(user.RoleInstructor)
	if err != nil {
		return catalog.Overview{}, nil, errors.Wrap(err, "counting instructors")
	}
	return catalog.NewOverview(courses, certs, instructors), courses, nil
}

