package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core/batch"
)

type batchApi struct {
	svc      *batch.Service
	validate *validator.Validate
}

func registerBatchAPI(g *echo.Group, svc *batch.Service, validate *validator.Validate) {
	api := batchApi{svc: svc, validate: validate}

	bg := g.Group("/batches")
	bg.POST("", api.create)
	bg.GET("", api.query)
	bg.GET("/:id", api.retrieve)
	bg.PUT("/:id", api.update)
	bg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *batchApi) create(ctx echo.Context) error {
	var data batch.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	b, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating batch")
	}
	return ctx.JSON(http.StatusOK, BatchResponse{Success: true, Batch: b})
}

func (api *batchApi) query(ctx echo.Context) error {
	batches, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}
	return ctx.JSON(http.StatusOK, BatchesResponse{Batches: batches})
}

func (api *batchApi) retrieve(ctx echo.Context) error {
	b, err := api.svc.Get(ctx.Request().Context(), pathParam(ctx, "id"))
	if err != nil {
		return errors.Wrap(err, "getting batch")
	}
	return ctx.JSON(http.StatusOK, BatchResponse{Success: true, Batch: b})
}

func (api *batchApi) update(ctx echo.Context) error {
	var data batch.UpdateBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	b, err := api.svc.Update(ctx.Request().Context(), pathParam(ctx, "id"), data)
	if err != nil {
		return errors.Wrap(err, "updating batch")
	}
	return ctx.JSON(http.StatusOK, BatchResponse{Success: true, Batch: b})
}

func (api *batchApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), pathParam(ctx, "id")); err != nil {
		return errors.Wrap(err, "deleting batch")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

type (
	BatchResponse struct {
		Success bool        `json:"success"`
		Batch   batch.Batch `json:"batch"`
	}

	BatchesResponse struct {
		Batches []batch.Batch `json:"batches"`
	}
)
