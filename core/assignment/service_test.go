package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inmemkv "github.com/tutorpad/tutorpad/storage/kv/inmem"
)

func newAssignment(t *testing.T, svc *Service, batchID string) Assignment {
	t.Helper()
	a, err := svc.Create(context.Background(), NewAssignment{
		BatchID:   batchID,
		Title:     "Homework 1",
		DueDate:   "2026-09-15",
		CreatedBy: "teacher:alice",
	})
	require.NoError(t, err)
	return a
}

func Test_Service_Create(t *testing.T) {
	svc := NewService(inmemkv.Open())

	a := newAssignment(t, svc, "batch:x")
	assert.NotNil(t, a.Submissions, "submissions must serialize as [] and not null")
	assert.Empty(t, a.Submissions)
	assert.Equal(t, "batch:x", a.BatchID)
}

func Test_Service_Query(t *testing.T) {
	svc := NewService(inmemkv.Open())
	ctx := context.Background()

	newAssignment(t, svc, "batch:x")
	newAssignment(t, svc, "batch:x")
	newAssignment(t, svc, "batch:y")

	all, err := svc.Query(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forX, err := svc.Query(ctx, "batch:x")
	require.NoError(t, err)
	assert.Len(t, forX, 2)

	none, err := svc.Query(ctx, "batch:z")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func Test_Service_Submit(t *testing.T) {
	svc := NewService(inmemkv.Open())
	ctx := context.Background()
	a := newAssignment(t, svc, "batch:x")

	got, err := svc.Submit(ctx, a.ID, SubmitInput{
		StudentID: "student:bob", StudentName: "Bob", ProjectLink: "https://git.example/bob/hw1",
	})
	require.NoError(t, err)
	require.Len(t, got.Submissions, 1)
	sub := got.Submissions[0]
	assert.Equal(t, "student:bob", sub.StudentID)
	assert.Nil(t, sub.Points)
	assert.Nil(t, sub.GradedAt)
	firstSubmittedAt := sub.SubmittedAt

	// resubmission overwrites in place, never appends
	got, err = svc.Submit(ctx, a.ID, SubmitInput{
		StudentID: "student:bob", StudentName: "Bob", ProjectLink: "https://git.example/bob/hw1-v2",
	})
	require.NoError(t, err)
	require.Len(t, got.Submissions, 1)
	assert.Equal(t, "https://git.example/bob/hw1-v2", got.Submissions[0].ProjectLink)
	assert.True(t, !got.Submissions[0].SubmittedAt.Before(firstSubmittedAt))

	// a second student appends
	got, err = svc.Submit(ctx, a.ID, SubmitInput{
		StudentID: "student:carol", StudentName: "Carol", ProjectLink: "https://git.example/carol/hw1",
	})
	require.NoError(t, err)
	assert.Len(t, got.Submissions, 2)

	_, err = svc.Submit(ctx, "assignment:nope", SubmitInput{StudentID: "student:bob", ProjectLink: "x"})
	assert.Equal(t, ErrNotFound, err)
}

func Test_Service_Grade(t *testing.T) {
	svc := NewService(inmemkv.Open())
	ctx := context.Background()
	a := newAssignment(t, svc, "batch:x")

	points := func(p float64) *float64 { return &p }

	// grading requires a prior submission
	_, err := svc.Grade(ctx, a.ID, GradeInput{StudentID: "student:bob", Points: points(10)})
	assert.Equal(t, ErrSubmissionNotFound, err)

	_, err = svc.Submit(ctx, a.ID, SubmitInput{
		StudentID: "student:bob", StudentName: "Bob", ProjectLink: "https://git.example/bob/hw1",
	})
	require.NoError(t, err)

	got, err := svc.Grade(ctx, a.ID, GradeInput{StudentID: "student:bob", Points: points(10)})
	require.NoError(t, err)
	require.NotNil(t, got.Submissions[0].Points)
	assert.Equal(t, 10.0, *got.Submissions[0].Points)
	assert.NotNil(t, got.Submissions[0].GradedAt)

	// a zero grade is a real grade, not an unset one
	got, err = svc.Grade(ctx, a.ID, GradeInput{StudentID: "student:bob", Points: points(0)})
	require.NoError(t, err)
	require.NotNil(t, got.Submissions[0].Points)
	assert.Equal(t, 0.0, *got.Submissions[0].Points)

	_, err = svc.Grade(ctx, "assignment:nope", GradeInput{StudentID: "student:bob", Points: points(1)})
	assert.Equal(t, ErrNotFound, err)
}

func Test_Service_Submit_preservesGrade(t *testing.T) {
	svc := NewService(inmemkv.Open())
	ctx := context.Background()
	a := newAssignment(t, svc, "batch:x")

	_, err := svc.Submit(ctx, a.ID, SubmitInput{
		StudentID: "student:bob", StudentName: "Bob", ProjectLink: "https://git.example/bob/hw1",
	})
	require.NoError(t, err)

	p := 8.5
	_, err = svc.Grade(ctx, a.ID, GradeInput{StudentID: "student:bob", Points: &p})
	require.NoError(t, err)

	// resubmitting after grading keeps the grade until the teacher re-grades
	got, err := svc.Submit(ctx, a.ID, SubmitInput{
		StudentID: "student:bob", StudentName: "Bob", ProjectLink: "https://git.example/bob/hw1-v2",
	})
	require.NoError(t, err)
	require.NotNil(t, got.Submissions[0].Points)
	assert.Equal(t, 8.5, *got.Submissions[0].Points)
	assert.NotNil(t, got.Submissions[0].GradedAt)
}
