package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core/auth"
	"github.com/tutorpad/tutorpad/core/user"
)

type authApi struct {
	svc      *auth.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, svc *auth.Service, validate *validator.Validate) {
	api := authApi{svc: svc, validate: validate}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.GET("/session", api.session)
	ag.POST("/logout", api.logout)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var creds auth.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := creds.Validate(api.validate); err != nil {
		return err
	}

	token, usr, err := api.svc.Login(ctx.Request().Context(), creds)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Success: true, SessionID: token, User: usr})
}

func (api *authApi) session(ctx echo.Context) error {
	sess, err := api.svc.GetSession(ctx.Request().Context(), sessionToken(ctx))
	if err != nil {
		return errors.Wrap(err, "resolving session")
	}
	return ctx.JSON(http.StatusOK, SessionResponse{User: sess})
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(ctx.Request().Context(), sessionToken(ctx)); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

type (
	LoginResponse struct {
		Success   bool      `json:"success"`
		SessionID string    `json:"sessionId"`
		User      user.User `json:"user"`
	}

	SessionResponse struct {
		User auth.Session `json:"user"`
	}
)
