// Package echoweb serves the EduVerse pages and the JSON API with echo.
package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/certificate"
	"github.com/trezcool/eduverse/core/classroom"
	"github.com/trezcool/eduverse/core/progress"
	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/user"
)

type (
	ServerDeps struct {
		dig.In

		Conf        *core.Config
		Logger      core.Logger
		KV          core.KeyValueStore
		Assets      core.AssetSource
		UserSvc     *user.Service
		CatalogSvc  *catalog.Service
		Sessions    *session.Manager
		ProgressSvc *progress.Service
		CertGen     *certificate.Generator
		AssetLoader *classroom.AssetLoader
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server struct {
		ServerDeps
		app      *echo.Echo
		visitors *visitorRegistry
		errors   chan error
		shutdown chan os.Signal
	}

	appValidator struct {
		validate *validator.Validate
	}
)

func (v appValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(deps ServerDeps) (*Server, error) {
	rdr, err := newRenderer()
	if err != nil {
		return nil, errors.Wrap(err, "parsing page templates")
	}

	s := &Server{
		ServerDeps: deps,
		app:        echo.New(),
		visitors:   newVisitorRegistry(deps.KV, deps.Sessions, deps.Conf),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	s.app.Renderer = rdr
	s.setup()
	return s, nil
}

func (s *Server) setup() {
	debug := s.Conf.Debug
	s.app.HideBanner = true
	s.app.Debug = debug && !s.Conf.TestMode

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.Conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.Translator, s.SignalShutdown)
	s.app.Validator = &appValidator{validate: s.Validate}

	s.app.GET("/assets/*", s.serveAsset)
	s.app.GET("/certificates/:number/qr.png", s.certificateQR)

	pages := s.app.Group("", s.visitorMiddleware)
	registerPages(pages, s)
	registerAuthPages(pages, s)
	registerCheckoutPages(pages, s)
	registerClassroomPages(pages, s)
	registerDashboardPages(pages, s)

	v1 := s.app.Group("/api/v1", s.visitorMiddleware)
	registerAPI(v1, s)
}

func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.Logger.Info("echoweb.Server: listening on " + s.Conf.Server.Addr)
	if err := s.app.Start(s.Conf.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

// Errors receives the error that stopped the listener, if any.
func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown asks the owner of the server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
