package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

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
	inmemkv "github.com/tutorpad/tutorpad/storage/kv/inmem"
	testutil "github.com/tutorpad/tutorpad/tests"
)

type testEnv struct {
	app echoapi.Server

	store           core.Store
	authSvc         *auth.Service
	usrSvc          *user.Service
	batchSvc        *batch.Service
	assignmentSvc   *assignment.Service
	scheduleSvc     *schedule.Service
	notificationSvc *notification.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := testutil.NewTestConfig()
	store := inmemkv.Open()
	mailSvc := emailsvc.NewConsoleService(conf)

	env := &testEnv{
		store:           store,
		authSvc:         auth.NewService(store),
		usrSvc:          user.NewService(store, mailSvc, conf),
		batchSvc:        batch.NewService(store),
		assignmentSvc:   assignment.NewService(store),
		scheduleSvc:     schedule.NewService(store),
		notificationSvc: notification.NewService(store),
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	env.app = echoapi.NewServer(
		echoapi.Options{
			DisableReqLogs:  true,
			Conf:            conf,
			Logger:          nopLogger{},
			AuthSvc:         env.authSvc,
			UserSvc:         env.usrSvc,
			BatchSvc:        env.batchSvc,
			AssignmentSvc:   env.assignmentSvc,
			ScheduleSvc:     env.scheduleSvc,
			NotificationSvc: env.notificationSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)
	return env
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newSessionRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-ID", token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newSessionRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
