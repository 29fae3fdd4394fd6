package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service, validate *validator.Validate) {
	api := scheduleApi{svc: svc, validate: validate}

	sg := g.Group("/schedules")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSchedule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchedule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating schedule")
	}
	return ctx.JSON(http.StatusOK, ScheduleResponse{Success: true, Schedule: s})
}

func (api *scheduleApi) query(ctx echo.Context) error {
	schedules, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("batchId"))
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	return ctx.JSON(http.StatusOK, SchedulesResponse{Schedules: schedules})
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), pathParam(ctx, "id")); err != nil {
		return errors.Wrap(err, "deleting schedule")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

type (
	ScheduleResponse struct {
		Success  bool              `json:"success"`
		Schedule schedule.Schedule `json:"schedule"`
	}

	SchedulesResponse struct {
		Schedules []schedule.Schedule `json:"schedules"`
	}
)
