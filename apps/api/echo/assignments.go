package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core/assignment"
)

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{svc: svc, validate: validate}

	ag := g.Group("/assignments")
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.POST("/:id/submit", api.submit)
	ag.POST("/:id/grade", api.grade)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusOK, AssignmentResponse{Success: true, Assignment: a})
}

func (api *assignmentApi) query(ctx echo.Context) error {
	assignments, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("batchId"))
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, AssignmentsResponse{Assignments: assignments})
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	var data assignment.SubmitInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Submit(ctx.Request().Context(), pathParam(ctx, "id"), data)
	if err != nil {
		return errors.Wrap(err, "submitting assignment")
	}
	return ctx.JSON(http.StatusOK, AssignmentResponse{Success: true, Assignment: a})
}

func (api *assignmentApi) grade(ctx echo.Context) error {
	var data assignment.GradeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Grade(ctx.Request().Context(), pathParam(ctx, "id"), data)
	if err != nil {
		return errors.Wrap(err, "grading assignment")
	}
	return ctx.JSON(http.StatusOK, AssignmentResponse{Success: true, Assignment: a})
}

type (
	AssignmentResponse struct {
		Success    bool                  `json:"success"`
		Assignment assignment.Assignment `json:"assignment"`
	}

	AssignmentsResponse struct {
		Assignments []assignment.Assignment `json:"assignments"`
	}
)
