package echoweb

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/checkout"
	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/user"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// errorPage is the data of the error template.
type errorPage struct {
	Code    int
	Title   string
	Message string
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// API requests get JSON, pages get the error template.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = origErr.Error()
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateErrors(origErr, translator)
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else if vErrs, ok := origErr.Err.(validator.ValidationErrors); ok {
				message = core.TranslateErrors(vErrs, translator)
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch origErr {
			case checkout.ErrInvalidTransition, session.ErrSuperseded:
				code = http.StatusConflict
				message = origErr.Error()
			case checkout.ErrInvalidMethod:
				code = http.StatusBadRequest
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var usr user.User
				if v, vErr := getContextVisitor(ctx); vErr == nil {
					usr, _ = v.User()
				}
				logger.Error(msg, errors.Wrap(err, msg), usr)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			switch {
			case ctx.Request().Method == http.MethodHead: // Issue #608
				err = ctx.NoContent(code)
			case isAPIRequest(ctx):
				err = ctx.JSON(code, message)
			default:
				err = renderErrorPage(ctx, code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func renderErrorPage(ctx echo.Context, code int, message interface{}) error {
	data := errorPage{Code: code, Title: http.StatusText(code)}
	switch m := message.(type) {
	case echo.Map:
		data.Message, _ = m["error"].(string)
	case string:
		data.Message = m
	}
	if code == http.StatusNotFound {
		data.Title = "Page Not Found"
		if data.Message == "" || data.Message == http.StatusText(code) {
			data.Message = "The page you are looking for does not exist."
		}
	}
	if data.Message == "" {
		data.Message = "Please check the form and try again."
	}
	return ctx.Render(code, "error", newPage(ctx, data.Title, data))
}
