package echoweb

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func isAPIRequest(ctx echo.Context) bool {
	return strings.HasPrefix(ctx.Request().URL.Path, "/api/")
}

// requireAuth sends anonymous visitors to the sign-in page, or answers 401 on the API.
func requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		v, err := getContextVisitor(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context visitor")
		}
		if v.Session.IsAuthenticated() {
			return next(ctx)
		}
		if isAPIRequest(ctx) {
			return errUnauthorized
		}
		return ctx.Redirect(http.StatusSeeOther, signInPath)
	}
}

// redirectBack returns to the page the form was posted from, or fallback.
// Only the path of the referer is kept.
func redirectBack(ctx echo.Context, fallback string) error {
	target := fallback
	if ref, err := url.Parse(ctx.Request().Referer()); err == nil && ref.Path != "" {
		if p := ref.RequestURI(); strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") {
			target = p
		}
	}
	return ctx.Redirect(http.StatusSeeOther, target)
}
