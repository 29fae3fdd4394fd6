package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/tutorpad/tutorpad/core"
	"github.com/tutorpad/tutorpad/core/assignment"
	"github.com/tutorpad/tutorpad/core/auth"
	"github.com/tutorpad/tutorpad/core/batch"
	"github.com/tutorpad/tutorpad/core/notification"
	"github.com/tutorpad/tutorpad/core/schedule"
	"github.com/tutorpad/tutorpad/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger

		AuthSvc         *auth.Service
		UserSvc         *user.Service
		BatchSvc        *batch.Service
		AssignmentSvc   *assignment.Service
		ScheduleSvc     *schedule.Service
		NotificationSvc *notification.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts  Options
		app   *echo.Echo
		errCh chan error
		sigCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts Options) Server {
	s := &server{
		opts:  opts,
		app:   echo.New(),
		errCh: make(chan error, 1),
		sigCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.sigCh, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.CORS())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Conf.Debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = s.opts.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerAuthAPI(v1, s.opts.AuthSvc, s.opts.Validate)
	registerUserAPI(v1, s.opts.UserSvc, s.opts.Validate)
	registerBatchAPI(v1, s.opts.BatchSvc, s.opts.Validate)
	registerAssignmentAPI(v1, s.opts.AssignmentSvc, s.opts.Validate)
	registerScheduleAPI(v1, s.opts.ScheduleSvc, s.opts.Validate)
	registerNotificationAPI(v1, s.opts.NotificationSvc, s.opts.Validate)
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Addr); err != nil && err != http.ErrServerClosed {
		s.errCh <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.sigCh
}

// signalShutdown requests a graceful stop whenever an integrity error is caught.
func (s *server) signalShutdown() {
	s.sigCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to TutorPad API!")
}
