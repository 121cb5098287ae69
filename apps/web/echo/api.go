package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/classroom"
	"github.com/trezcool/eduverse/core/progress"
	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/theme"
	"github.com/trezcool/eduverse/core/user"
)

type (
	sceneResp struct {
		Scene    classroom.Scene         `json:"scene"`
		Graph    *classroom.Graph        `json:"graph"`
		Capacity int                     `json:"capacity"`
		Assets   []classroom.AssetResult `json:"assets"`
	}

	meResp struct {
		User         user.User                 `json:"user"`
		Theme        theme.Mode                `json:"theme"`
		Controls     classroom.Controls        `json:"controls"`
		Progress     []progress.CourseProgress `json:"progress"`
		HoursLearned float64                   `json:"hoursLearned"`
	}

	adminResp struct {
		Overview catalog.Overview `json:"overview"`
		Top      []catalog.Course `json:"topCourses"`
	}
)

func registerAPI(g *echo.Group, s *Server) {
	g.GET("/courses", s.apiCourses)
	g.GET("/courses/:id", s.apiCourse)
	g.GET("/webinars", s.apiWebinars)

	g.POST("/session", s.apiLogin)
	g.DELETE("/session", s.apiLogout)
	g.GET("/me", s.apiMe, requireAuth)
	g.GET("/admin/overview", s.apiAdminOverview, requireAuth)

	cg := g.Group("/classroom")
	cg.GET("/scene", s.apiScene)
	cg.GET("/frame", s.apiFrame)
	cg.GET("/controls", s.apiControls)
	cg.POST("/controls/:control", s.apiToggleControl)
	cg.GET("/camera", s.apiCamera)
	cg.POST("/camera", s.apiMoveCamera)
}

func (s *Server) apiCourses(ctx echo.Context) error {
	var filter catalog.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Search = core.CleanString(filter.Search)

	courses, err := s.CatalogSvc.Courses(filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (s *Server) apiCourse(ctx echo.Context) error {
	course, err := s.CatalogSvc.Course(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (s *Server) apiWebinars(ctx echo.Context) error {
	webinars, err := s.CatalogSvc.Webinars()
	if err != nil {
		return errors.Wrap(err, "querying webinars")
	}
	return ctx.JSON(http.StatusOK, webinars)
}

func (s *Server) apiLogin(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	var form SignInForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to SignInForm")
	}

	if err := v.Session.Login(ctx.Request().Context(), form.Email, form.Password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return errors.Wrap(err, "signing in")
	}
	return ctx.JSON(http.StatusOK, v.Session.State())
}

func (s *Server) apiLogout(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	if err := v.Session.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) apiMe(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	courses, err := s.CatalogSvc.AllCourses()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	rows, hours, err := s.ProgressSvc.Dashboard(ctx.Request().Context(), usr.ID, catalog.EnrolledCourses(usr, courses))
	if err != nil {
		return errors.Wrap(err, "loading progress")
	}

	return ctx.JSON(http.StatusOK, meResp{
		User:         usr,
		Theme:        v.Theme.Mode(),
		Controls:     v.Controls.Get(),
		Progress:     rows,
		HoursLearned: hours,
	})
}

func (s *Server) apiAdminOverview(ctx echo.Context) error {
	ov, courses, err := s.overview()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, adminResp{Overview: ov, Top: catalog.TopCourses(courses, topCoursesLimit)})
}

// apiScene returns the resolved scene of the requested variant and its built graph.
func (s *Server) apiScene(ctx echo.Context) error {
	scene, results, err := s.resolveScene(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sceneResp{
		Scene:    scene,
		Graph:    classroom.Build(scene),
		Capacity: scene.Layout.Capacity(),
		Assets:   results,
	})
}

// apiFrame returns the idle animation poses at ?elapsed= seconds.
func (s *Server) apiFrame(ctx echo.Context) error {
	var elapsed float64
	if raw := ctx.QueryParam("elapsed"); raw != "" {
		var err error
		if elapsed, err = strconv.ParseFloat(raw, 64); err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "elapsed", Error: "must be a number of seconds"})
		}
	}
	scene, _, err := s.resolveScene(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classroom.Build(scene).Frame(elapsed))
}

func (s *Server) apiControls(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	return ctx.JSON(http.StatusOK, v.Controls.Get())
}

func (s *Server) apiToggleControl(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	var in classroom.ToggleInput
	if err := ctx.Bind(&in); err != nil {
		return errors.Wrap(err, "binding to ToggleInput")
	}
	controls, err := v.Controls.Toggle(ctx.Request().Context(), s.Validate, in)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, controls)
}

// apiCamera returns the starting orbit camera of the requested variant.
func (s *Server) apiCamera(ctx echo.Context) error {
	scene, _, err := s.resolveScene(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classroom.MoveCamera(scene, classroom.CameraMove{}))
}

// apiMoveCamera applies a gesture, clamped to the scene's orbit bounds.
func (s *Server) apiMoveCamera(ctx echo.Context) error {
	var move classroom.CameraMove
	if err := ctx.Bind(&move); err != nil {
		return errors.Wrap(err, "binding to CameraMove")
	}
	scene, _, err := s.resolveScene(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classroom.MoveCamera(scene, move))
}
