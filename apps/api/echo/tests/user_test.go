package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/tutorpad/tutorpad/apps/api/echo"
	"github.com/tutorpad/tutorpad/core/user"
	testutil "github.com/tutorpad/tutorpad/tests"
)

func Test_userApi_create(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name: "ok", body: []byte(`{"username":"jdoe","password":"s3cret","role":"student","name":"John Doe"}`),
			wantCode: http.StatusOK,
		},
		{
			name: "duplicate username", body: []byte(`{"username":"jdoe","password":"other","role":"student","name":"Impostor"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "username already exists"}),
		},
		{
			name: "unknown role", body: []byte(`{"username":"x","password":"p","role":"boss","name":"X"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]map[string]string{
				"error": {"role": "must be one of admin, teacher or student"},
			}),
		},
		{
			name: "missing fields", body: []byte(`{"role":"student"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]map[string]string{
				"error": {
					"username": "this field is required",
					"password": "this field is required",
					"name":     "this field is required",
				},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users", tt.body)
			env.app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			require.Equal(t, tt.wantCode, rec.Code)
			var resp echoapi.UserResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, "student:jdoe", resp.User.ID)
			assert.Empty(t, resp.User.Password)
		})
	}
}

func Test_userApi_query(t *testing.T) {
	env := setup(t)

	testutil.CreateUser(t, env.usrSvc, "Alice", "alice", "pwd", user.RoleTeacher, nil)
	testutil.CreateUser(t, env.usrSvc, "Bob", "bob", "pwd", user.RoleStudent, nil)
	testutil.CreateUser(t, env.usrSvc, "Carol", "carol", "pwd", user.RoleStudent, nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "all", path: "/v1/users", want: 3},
		{name: "students only", path: "/v1/users?role=student", want: 2},
		{name: "teachers only", path: "/v1/users?role=teacher", want: 1},
		{name: "no admins", path: "/v1/users?role=admin", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			env.app.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp echoapi.UsersResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Len(t, resp.Users, tt.want)
			for _, usr := range resp.Users {
				assert.Empty(t, usr.Password)
			}
		})
	}
}

func Test_userApi_update(t *testing.T) {
	env := setup(t)

	batchID := "batch:x"
	usr := testutil.CreateUser(t, env.usrSvc, "John Doe", "jdoe", "s3cret", user.RoleStudent, &batchID)
	path := "/v1/users/" + url.PathEscape(usr.ID)

	// partial update keeps the batch assignment
	req, rec := newRequest(http.MethodPut, path, []byte(`{"name":"Johnny Doe"}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp echoapi.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Johnny Doe", resp.User.Name)
	require.NotNil(t, resp.User.BatchID)
	assert.Equal(t, batchID, *resp.User.BatchID)

	// explicit null detaches from the batch
	req, rec = newRequest(http.MethodPut, path, []byte(`{"batchId":null}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.User.BatchID)

	// unknown user
	tt := httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "user not found"}),
	}
	req, rec = newRequest(http.MethodPut, "/v1/users/"+url.PathEscape("student:nobody"), []byte(`{"name":"X"}`))
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_userApi_destroy(t *testing.T) {
	env := setup(t)
	usr := testutil.CreateUser(t, env.usrSvc, "John Doe", "jdoe", "s3cret", user.RoleStudent, nil)

	req, rec := newRequest(http.MethodDelete, "/v1/users/"+url.PathEscape(usr.ID))
	env.app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.SuccessResponse{Success: true})}
	checkCodeAndData(t, tt, rec)

	// deleting an unknown id still reports success
	req, rec = newRequest(http.MethodDelete, "/v1/users/"+url.PathEscape("student:nobody"))
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}
