package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core/checkout"
)

type paymentMethodForm struct {
	Method string `form:"method" json:"method"`
}

func registerCheckoutPages(g *echo.Group, s *Server) {
	cg := g.Group("/courses/:id")
	cg.POST("/enroll", s.enroll)
	cg.POST("/payment-method", s.selectPaymentMethod)
	cg.POST("/checkout", s.submitPayment)
	cg.POST("/cancel", s.cancelPayment)
}

// checkoutFlow returns the visitor's flow for the course of the request.
func (s *Server) checkoutFlow(ctx echo.Context) (*Visitor, *checkout.Flow, error) {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "getting context visitor")
	}
	course, err := s.CatalogSvc.Course(ctx.Param("id"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "finding course")
	}
	var userID string
	if usr, ok := v.User(); ok {
		userID = usr.ID
	}
	return v, v.Checkouts.Flow(course, userID), nil
}

func coursePath(ctx echo.Context) string {
	return "/courses/" + ctx.Param("id")
}

func (s *Server) enroll(ctx echo.Context) error {
	v, flow, err := s.checkoutFlow(ctx)
	if err != nil {
		return err
	}
	redirect, err := flow.Enroll(v.Session.IsAuthenticated())
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return ctx.Redirect(http.StatusSeeOther, redirect)
	case err != nil:
		return errors.Wrap(err, "opening payment form")
	}
	return ctx.Redirect(http.StatusSeeOther, coursePath(ctx))
}

func (s *Server) selectPaymentMethod(ctx echo.Context) error {
	_, flow, err := s.checkoutFlow(ctx)
	if err != nil {
		return err
	}
	var form paymentMethodForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to paymentMethodForm")
	}
	if err := flow.SelectMethod(form.Method); err != nil {
		return errors.Wrap(err, "selecting payment method")
	}
	return ctx.Redirect(http.StatusSeeOther, coursePath(ctx))
}

// submitPayment blocks for the simulated processing delay, then sends the buyer to the dashboard.
func (s *Server) submitPayment(ctx echo.Context) error {
	_, flow, err := s.checkoutFlow(ctx)
	if err != nil {
		return err
	}
	var card checkout.CardDetails
	if err := ctx.Bind(&card); err != nil {
		return errors.Wrap(err, "binding to CardDetails")
	}

	receipt, err := flow.Submit(ctx.Request().Context(), card)
	if err != nil {
		return errors.Wrap(err, "processing payment")
	}
	s.Logger.Info("echoweb.submitPayment: payment completed", map[string]interface{}{
		"course": receipt.Payment.CourseID,
		"method": receipt.Payment.Method,
		"amount": receipt.Payment.Amount,
	})
	return ctx.Redirect(http.StatusSeeOther, receipt.Redirect)
}

func (s *Server) cancelPayment(ctx echo.Context) error {
	_, flow, err := s.checkoutFlow(ctx)
	if err != nil {
		return err
	}
	if err := flow.Cancel(); err != nil {
		return errors.Wrap(err, "closing payment form")
	}
	return ctx.Redirect(http.StatusSeeOther, coursePath(ctx))
}
