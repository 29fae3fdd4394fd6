package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
	"github.com/tutorpad/tutorpad/core/assignment"
	"github.com/tutorpad/tutorpad/core/auth"
	"github.com/tutorpad/tutorpad/core/batch"
	"github.com/tutorpad/tutorpad/core/notification"
	"github.com/tutorpad/tutorpad/core/user"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to handle our errors: every error becomes a JSON body with a status code,
// nothing propagates as an unhandled crash to the transport layer.
// signalShutdown is called to gracefully stop the Server whenever a
// core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch cause := errors.Cause(err); cause {
		case auth.ErrInvalidCredentials, auth.ErrNoSession, auth.ErrInvalidSession:
			code = http.StatusUnauthorized
			message = cause.Error()
		case user.ErrUsernameExists:
			code = http.StatusBadRequest
			message = cause.Error()
		case user.ErrNotFound, batch.ErrNotFound, assignment.ErrNotFound, assignment.ErrSubmissionNotFound:
			code = http.StatusNotFound
			message = cause.Error()
		default:
			code, message = classify(cause, err, logger, translator, ctx, signalShutdown)
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func classify(
	cause, err error,
	logger core.Logger,
	translator ut.Translator,
	ctx echo.Context,
	signalShutdown func(),
) (int, interface{}) {
	switch origErr := cause.(type) {
	case *echo.HTTPError:
		if origErr.Internal != nil {
			if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
				origErr = herr
			}
		}
		return origErr.Code, origErr.Message
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(translator)
		}
		return http.StatusBadRequest, echo.Map{"error": fldErrs}
	case *core.ValidationError:
		if origErr.Fields != nil {
			fldErrs := make(map[string]string, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				fldErrs[fErr.Field] = fErr.Error
			}
			return http.StatusBadRequest, echo.Map{"error": fldErrs}
		}
		return http.StatusBadRequest, origErr.Error()
	case *notification.NotFoundError:
		return http.StatusNotFound, echo.Map{"error": "notification not found", "tried": origErr.Tried}
	}

	// any other error is a server error
	msg := http.StatusText(http.StatusInternalServerError)
	logger.Error(msg, errors.Wrap(err, msg))

	// shutting down...
	if core.IsShutdown(err) {
		signalShutdown()
	}
	return http.StatusInternalServerError, msg
}
