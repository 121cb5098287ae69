package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/user"
)

const signInPath = "/signin"

type (
	// SignInForm and SignUpForm are never validated: any input is passed on to the session.
	SignInForm struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}

	SignUpForm struct {
		Name     string `form:"name" json:"name"`
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}

	authPage struct {
		Email        string
		Name         string
		Error        string
		DemoEmail    string
		DemoPassword string
	}
)

func registerAuthPages(g *echo.Group, s *Server) {
	g.GET("/signin", s.signInForm)
	g.POST("/signin", s.signIn)
	g.GET("/signup", s.signUpForm)
	g.POST("/signup", s.signUp)
	g.POST("/logout", s.logout)
}

func newAuthPage() authPage {
	return authPage{DemoEmail: "john.doe@example.com", DemoPassword: user.DemoPassword}
}

func (s *Server) signInForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "signin", newPage(ctx, "Sign In", newAuthPage()))
}

func (s *Server) signIn(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	var form SignInForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to SignInForm")
	}

	err = v.Session.Login(ctx.Request().Context(), form.Email, form.Password)
	switch {
	case err == nil:
		return ctx.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, session.ErrInvalidCredentials):
		data := newAuthPage()
		data.Email = form.Email
		data.Error = "Invalid email or password. Try: " + data.DemoEmail + " / " + data.DemoPassword
		return ctx.Render(http.StatusUnauthorized, "signin", newPage(ctx, "Sign In", data))
	default:
		return errors.Wrap(err, "signing in")
	}
}

func (s *Server) signUpForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "signup", newPage(ctx, "Sign Up", newAuthPage()))
}

func (s *Server) signUp(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	var form SignUpForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to SignUpForm")
	}

	if _, err := v.Session.Signup(ctx.Request().Context(), form.Name, form.Email, form.Password); err != nil {
		return errors.Wrap(err, "signing up")
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	if err := v.Session.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}
