package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core/notification"
)

type notificationApi struct {
	svc      *notification.Service
	validate *validator.Validate
}

func registerNotificationAPI(g *echo.Group, svc *notification.Service, validate *validator.Validate) {
	api := notificationApi{svc: svc, validate: validate}

	ng := g.Group("/notifications")
	ng.POST("", api.create)
	ng.GET("", api.query)
	ng.DELETE("/:id", api.destroy)
}

// Handlers

func (api *notificationApi) create(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusOK, NotificationResponse{Success: true, Notification: n})
}

func (api *notificationApi) query(ctx echo.Context) error {
	filter := notification.QueryFilter{
		Role:    ctx.QueryParam("role"),
		BatchID: ctx.QueryParam("batchId"),
		UserID:  ctx.QueryParam("userId"),
	}
	notifications, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	return ctx.JSON(http.StatusOK, NotificationsResponse{Notifications: notifications})
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	deletedKey, err := api.svc.Delete(ctx.Request().Context(), pathParam(ctx, "id"))
	if err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	return ctx.JSON(http.StatusOK, NotificationDeleteResponse{Success: true, DeletedKey: deletedKey})
}

type (
	NotificationResponse struct {
		Success      bool                      `json:"success"`
		Notification notification.Notification `json:"notification"`
	}

	NotificationsResponse struct {
		Notifications []notification.Notification `json:"notifications"`
	}

	NotificationDeleteResponse struct {
		Success    bool   `json:"success"`
		DeletedKey string `json:"deletedKey"`
	}
)
