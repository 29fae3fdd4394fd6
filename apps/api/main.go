package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/tutorpad/tutorpad/apps/api/echo"
	"github.com/tutorpad/tutorpad/core"
	"github.com/tutorpad/tutorpad/core/assignment"
	"github.com/tutorpad/tutorpad/core/auth"
	"github.com/tutorpad/tutorpad/core/batch"
	"github.com/tutorpad/tutorpad/core/notification"
	"github.com/tutorpad/tutorpad/core/schedule"
	"github.com/tutorpad/tutorpad/core/user"
	emailsvc "github.com/tutorpad/tutorpad/services/email"
	logsvc "github.com/tutorpad/tutorpad/services/logger"
	boltkv "github.com/tutorpad/tutorpad/storage/kv/bolt"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up store
	store, err := boltkv.Open(conf.Store.Path)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error("Failed to close store", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(store, mailSvc, conf)
	authSvc := auth.NewService(store)
	batchSvc := batch.NewService(store)
	assignSvc := assignment.NewService(store)
	schedSvc := schedule.NewService(store)
	notifSvc := notification.NewService(store)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	if err = usrSvc.EnsureDefaultAdmin(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("ensuring default admin: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.Options{
			Addr:            conf.Server.Addr,
			Conf:            conf,
			Logger:          logger,
			AuthSvc:         authSvc,
			UserSvc:         usrSvc,
			BatchSvc:        batchSvc,
			AssignmentSvc:   assignSvc,
			ScheduleSvc:     schedSvc,
			NotificationSvc: notifSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
