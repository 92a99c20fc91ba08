package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhq/elimu/core"
	"github.com/elimuhq/elimu/core/billing"
	"github.com/elimuhq/elimu/core/user"
)

type billingApi struct {
	svc      *billing.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerBillingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *billing.Service, userSvc *user.Service, validate *validator.Validate) {
	api := billingApi{
		svc:      svc,
		userSvc:  userSvc,
		validate: validate,
	}

	bg := g.Group("/billing", jwt)
	bg.GET("/methods", api.queryMethods)
	bg.GET("/statement", api.statement, studentMiddleware())
	bg.POST("/payments", api.pay, studentMiddleware())
}

// Handlers

func (api *billingApi) queryMethods(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, billing.Methods)
}

func (api *billingApi) statement(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	stmt, err := api.svc.Statement(ctx.Request().Context(), ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "building statement")
	}
	return ctx.JSON(http.StatusOK, stmt)
}

func (api *billingApi) pay(ctx echo.Context) error {
	var data billing.PaymentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PaymentRequest")
	}
	data.Method = core.CleanString(data.Method, true /* lower */)
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	pmt, err := api.svc.InitiatePayment(ctx.Request().Context(), ctxUsr, data.Method)
	if err != nil {
		switch errors.Cause(err) {
		case billing.ErrNoOutstandingBalance, billing.ErrNothingToPay:
			return core.NewValidationError(errors.Cause(err))
		}
		return errors.Wrap(err, "initiating payment")
	}

	// refresh the statement so the client sees the new balance at once
	stmt, err := api.svc.Statement(ctx.Request().Context(), ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "building statement")
	}
	return ctx.JSON(http.StatusCreated, PaymentResponse{Payment: pmt, Statement: stmt})
}

type PaymentResponse struct {
	Payment   billing.Payment   `json:"payment"`
	Statement billing.Statement `json:"statement"`
}
