package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/tutorpad/tutorpad/apps/api/echo"
	"github.com/tutorpad/tutorpad/core/user"
	testutil "github.com/tutorpad/tutorpad/tests"
)

func Test_authApi_login(t *testing.T) {
	env := setup(t)
	testutil.CreateUser(t, env.usrSvc, "John Doe", "jdoe", "s3cret", user.RoleStudent, nil)

	tests := []httpTest{
		{
			name: "ok", body: []byte(`{"username":"jdoe","password":"s3cret","role":"student"}`),
			wantCode: http.StatusOK,
		},
		{
			name: "wrong password", body: []byte(`{"username":"jdoe","password":"nope","role":"student"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "wrong role", body: []byte(`{"username":"jdoe","password":"s3cret","role":"teacher"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "missing fields", body: []byte(`{"username":"jdoe"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]map[string]string{
				"error": {"password": "this field is required", "role": "this field is required"},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login", tt.body)
			env.app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			require.Equal(t, tt.wantCode, rec.Code)
			var resp echoapi.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.NotEmpty(t, resp.SessionID)
			assert.Equal(t, "student:jdoe", resp.User.ID)
			assert.Empty(t, resp.User.Password)
		})
	}
}

func Test_authApi_session(t *testing.T) {
	env := setup(t)
	testutil.CreateUser(t, env.usrSvc, "John Doe", "jdoe", "s3cret", user.RoleStudent, nil)

	// log in to get a token
	req, rec := newRequest(http.MethodPost, "/v1/auth/login", []byte(`{"username":"jdoe","password":"s3cret","role":"student"}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var login echoapi.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	tests := []httpTest{
		{
			name: "no token", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "no session"}),
		},
		{
			name: "bogus token", token: "deadbeef", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid session"}),
		},
		{name: "ok", token: login.SessionID, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(http.MethodGet, "/v1/auth/session", tt.token)
			env.app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			require.Equal(t, tt.wantCode, rec.Code)
			var resp echoapi.SessionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "student:jdoe", resp.User.UserID)
			assert.Equal(t, user.RoleStudent, resp.User.Role)
		})
	}
}

func Test_authApi_logout(t *testing.T) {
	env := setup(t)
	testutil.CreateUser(t, env.usrSvc, "John Doe", "jdoe", "s3cret", user.RoleStudent, nil)

	req, rec := newRequest(http.MethodPost, "/v1/auth/login", []byte(`{"username":"jdoe","password":"s3cret","role":"student"}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var login echoapi.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	// logout kills the session
	req, rec = newSessionRequest(http.MethodPost, "/v1/auth/logout", login.SessionID)
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newSessionRequest(http.MethodGet, "/v1/auth/session", login.SessionID)
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// logging out again (or without a token) still succeeds
	req, rec = newSessionRequest(http.MethodPost, "/v1/auth/logout", login.SessionID)
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodPost, "/v1/auth/logout")
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
