package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/tutorpad/tutorpad/apps/api/echo"
	"github.com/tutorpad/tutorpad/core/user"
	testutil "github.com/tutorpad/tutorpad/tests"
)

func Test_batchApi_crud(t *testing.T) {
	env := setup(t)

	// create
	req, rec := newRequest(http.MethodPost, "/v1/batches", []byte(`{"name":"Batch A","teacherId":"teacher:alice","meetLink":"https://meet.example/a"}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp echoapi.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Batch.ID)
	assert.NotNil(t, resp.Batch.StudentIDs)

	// the returned id is the store key; retrieve by it directly
	req, rec = newRequest(http.MethodGet, "/v1/batches/"+resp.Batch.ID)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var got echoapi.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, resp.Batch.ID, got.Batch.ID)

	// update the roster wholesale
	req, rec = newRequest(http.MethodPut, "/v1/batches/"+resp.Batch.ID, []byte(`{"studentIds":["student:bob","student:carol"]}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"student:bob", "student:carol"}, got.Batch.StudentIDs)
	assert.Equal(t, "Batch A", got.Batch.Name, "untouched fields survive")

	// clear the teacher with an explicit null
	req, rec = newRequest(http.MethodPut, "/v1/batches/"+resp.Batch.ID, []byte(`{"teacherId":null}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Nil(t, got.Batch.TeacherID)

	// list
	req, rec = newRequest(http.MethodGet, "/v1/batches")
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list echoapi.BatchesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Batches, 1)

	// delete
	req, rec = newRequest(http.MethodDelete, "/v1/batches/"+resp.Batch.ID)
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodGet, "/v1/batches/"+resp.Batch.ID)
	env.app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "batch not found"})}
	checkCodeAndData(t, tt, rec)
}

func Test_batchApi_create_validation(t *testing.T) {
	env := setup(t)

	tt := httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]map[string]string{"error": {"name": "this field is required"}}),
	}
	req, rec := newRequest(http.MethodPost, "/v1/batches", []byte(`{"meetLink":"https://meet.example/a"}`))
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

// Roster membership lives in two places (Batch.StudentIDs and User.BatchID)
// and is maintained by two independent writes; the half-updated state in
// between is observable.
func Test_batchApi_rosterUpdateIsNotAtomic(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrSvc, "Bob", "bob", "pwd", user.RoleStudent, nil)
	b := testutil.CreateBatch(t, env.batchSvc, "Batch A", nil)

	// first write: the batch roster
	req, rec := newRequest(http.MethodPut, "/v1/batches/"+b.ID, []byte(`{"studentIds":["`+usr.ID+`"]}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the user document is untouched until the caller's second write
	got, err := env.usrSvc.GetByID(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BatchID)

	// second write: the user's batch pointer
	req, rec = newRequest(http.MethodPut, "/v1/users/"+usr.ID, []byte(`{"batchId":"`+b.ID+`"}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err = env.usrSvc.GetByID(context.Background(), usr.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BatchID)
	assert.Equal(t, b.ID, *got.BatchID)
}

func Test_batchApi_deleteDoesNotCascade(t *testing.T) {
	env := setup(t)

	b := testutil.CreateBatch(t, env.batchSvc, "Batch A", nil)
	req, rec := newRequest(http.MethodPost, "/v1/schedules", []byte(`{"batchId":"`+b.ID+`","date":"2026-09-10","time":"14:00","title":"Algebra"}`))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodDelete, "/v1/batches/"+b.ID)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the schedule is left dangling, not removed
	req, rec = newRequest(http.MethodGet, "/v1/schedules?batchId="+b.ID)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list echoapi.SchedulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Schedules, 1)
}
