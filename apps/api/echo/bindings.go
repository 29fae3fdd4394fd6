package echoapi

import (
	"net/url"

	"github.com/labstack/echo/v4"
)

// headerSessionID carries the opaque session token; it is the only
// authorization signal the server reads.
const headerSessionID = "X-Session-ID"

func sessionToken(ctx echo.Context) string {
	return ctx.Request().Header.Get(headerSessionID)
}

// pathParam returns a path parameter with any URL escaping undone, so
// prefixed document ids ("batch:<uuid>", "admin:jane") survive the round trip.
func pathParam(ctx echo.Context, name string) string {
	raw := ctx.Param(name)
	if dec, err := url.PathUnescape(raw); err == nil {
		return dec
	}
	return raw
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
