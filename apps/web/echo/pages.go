package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/checkout"
)

const suggestionsLimit = 3

// heroFallback is shown instead of the videos when none of them can be loaded.
const heroFallback = "/images/hero.jpg"

// heroVideos play behind the home page hero, in order, when they can be loaded.
var heroVideos = []string{
	"/videos/1.mp4",
	"/videos/2.mp4",
	"/videos/3.mp4",
	"/videos/4.mp4",
	"/videos/5.mp4",
}

type (
	homePage struct {
		Videos   []string
		Fallback string
		Featured []catalog.Course
		Slide    int
		Prev     int
		Next     int
	}

	coursesPage struct {
		Filter      catalog.QueryFilter
		Categories  []string
		Courses     []catalog.Course
		Suggestions []string
	}

	courseDetailPage struct {
		Course    catalog.Course
		Enrolled  bool
		Completed map[string]bool
		Percent   int
		Checkout  checkout.Step
		Method    string
		Methods   []string
		Outcomes  []string
	}

	webinarsPage struct {
		Live     []catalog.Webinar
		Upcoming []catalog.Webinar
	}
)

var courseOutcomes = []string{
	"Master the fundamentals and advanced concepts",
	"Build real-world projects from scratch",
	"Best practices and industry standards",
	"Get certificate upon completion",
	"Lifetime access to course materials",
	"Join our community of learners",
}

func registerPages(g *echo.Group, s *Server) {
	g.GET("/", s.home)
	g.GET("/courses", s.courses)
	g.GET("/courses/:id", s.courseDetail)
	g.GET("/webinars", s.webinars)
	g.POST("/theme/toggle", s.toggleTheme)
}

// Slide wraps n modulo count, so that the carousel can step past either end.
func Slide(n, count int) int {
	if count == 0 {
		return 0
	}
	return ((n % count) + count) % count
}

func (s *Server) home(ctx echo.Context) error {
	featured, err := s.CatalogSvc.Featured()
	if err != nil {
		return errors.Wrap(err, "querying featured courses")
	}

	n, _ := strconv.Atoi(ctx.QueryParam("slide"))
	slide := Slide(n, len(featured))

	data := homePage{
		Videos:   s.AssetLoader.Available(ctx.Request().Context(), heroVideos),
		Fallback: heroFallback,
		Featured: featured,
		Slide:    slide,
		Prev:     Slide(slide-1, len(featured)),
		Next:     Slide(slide+1, len(featured)),
	}
	return ctx.Render(http.StatusOK, "home", newPage(ctx, "Home", data))
}

func (s *Server) courses(ctx echo.Context) error {
	var filter catalog.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Search = core.CleanString(filter.Search)

	all, err := s.CatalogSvc.AllCourses()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	data := coursesPage{
		Filter:     filter,
		Categories: catalog.Categories(all),
		Courses:    catalog.Filter(all, filter),
	}
	if data.Filter.Category == "" {
		data.Filter.Category = catalog.AllCategories
	}
	if len(data.Courses) == 0 && filter.Search != "" {
		data.Suggestions = catalog.Suggest(all, filter.Search, suggestionsLimit)
	}
	return ctx.Render(http.StatusOK, "courses", newPage(ctx, "Courses", data))
}

func (s *Server) courseDetail(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	course, err := s.CatalogSvc.Course(ctx.Param("id"))
	if err != nil {
		if core.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Course Not Found")
		}
		return errors.Wrap(err, "finding course")
	}

	data := courseDetailPage{
		Course:   course,
		Checkout: checkout.Browsing,
		Method:   catalog.MethodCreditCard,
		Methods:  catalog.PaymentMethods,
		Outcomes: courseOutcomes,
	}
	if usr, ok := v.User(); ok && usr.IsEnrolled(course.ID) {
		rctx := ctx.Request().Context()
		data.Enrolled = true
		done, err := s.ProgressSvc.Completed(rctx, usr.ID, course)
		if err != nil {
			return errors.Wrap(err, "loading completed lessons")
		}
		data.Completed = make(map[string]bool, len(done))
		for _, id := range done {
			data.Completed[id] = true
		}
		if data.Percent, err = s.ProgressSvc.Percent(rctx, usr.ID, course); err != nil {
			return errors.Wrap(err, "loading progress")
		}
	}
	if flow, ok := v.Checkouts.Peek(course.ID); ok && (flow.Step() == checkout.PaymentForm || flow.Step() == checkout.Processing) {
		data.Checkout = flow.Step()
		data.Method = flow.Method()
	}
	return ctx.Render(http.StatusOK, "course", newPage(ctx, course.Title, data))
}

func (s *Server) webinars(ctx echo.Context) error {
	live, err := s.CatalogSvc.LiveWebinars()
	if err != nil {
		return errors.Wrap(err, "querying live webinars")
	}
	upcoming, err := s.CatalogSvc.UpcomingWebinars()
	if err != nil {
		return errors.Wrap(err, "querying upcoming webinars")
	}
	return ctx.Render(http.StatusOK, "webinars", newPage(ctx, "Webinars", webinarsPage{Live: live, Upcoming: upcoming}))
}

func (s *Server) toggleTheme(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	if _, err := v.Theme.Toggle(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "toggling theme")
	}
	return redirectBack(ctx, "/")
}

// serveAsset streams 3D models and videos from the configured asset source.
func (s *Server) serveAsset(ctx echo.Context) error {
	name := ctx.Param("*")
	rctx := ctx.Request().Context()

	info, err := s.Assets.Stat(rctx, name)
	if err != nil {
		if errors.Is(err, core.ErrAssetNotFound) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "stat asset")
	}
	rc, err := s.Assets.Open(rctx, name)
	if err != nil {
		return errors.Wrap(err, "opening asset")
	}
	defer rc.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	ctx.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return ctx.Stream(http.StatusOK, contentType, rc)
}

func (s *Server) certificateQR(ctx echo.Context) error {
	cert, err := s.CatalogSvc.CertificateByNumber(ctx.Param("number"))
	if err != nil {
		return errors.Wrap(err, "finding certificate")
	}
	png, err := s.CertGen.QRCode(cert)
	if err != nil {
		return errors.Wrap(err, "generating QR code")
	}
	return ctx.Blob(http.StatusOK, "image/png", png)
}
