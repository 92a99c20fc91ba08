package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhq/elimu/core/academics"
)

type academicsApi struct {
	svc *academics.Service
}

func registerAcademicsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *academics.Service) {
	api := academicsApi{svc: svc}

	ag := g.Group("/academics", jwt, studentMiddleware())
	ag.GET("/grades", api.queryGrades)
	ag.GET("/gpa", api.transcript)
}

// Handlers

func (api *academicsApi) queryGrades(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	grades, err := api.svc.QueryGrades(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []academics.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *academicsApi) transcript(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	transcript, err := api.svc.Transcript(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "building transcript")
	}
	return ctx.JSON(http.StatusOK, transcript)
}
