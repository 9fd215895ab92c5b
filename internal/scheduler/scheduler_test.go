package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-research/newswatch/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     int
	err      error
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(_ context.Context) error {
	j.runs++
	return j.err
}

func TestAddJob_RejectsDuplicateName(t *testing.T) {
	s := New(logger.NewNop())

	require.NoError(t, s.AddJob(&fakeJob{name: "poll", schedule: "@every 1m"}))
	assert.Error(t, s.AddJob(&fakeJob{name: "poll", schedule: "@every 5m"}))
}

func TestRunJob_RecordsSuccessHistory(t *testing.T) {
	s := New(logger.NewNop())
	job := &fakeJob{name: "poll", schedule: "@every 1m"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("poll")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Empty(t, history.Results[0].Error)
	assert.Equal(t, 1.0, history.SuccessRate())
}

func TestRunJob_RetriesThenRecordsFailure(t *testing.T) {
	s := New(logger.NewNop())
	s.retryDelay = 0
	job := &fakeJob{name: "maintenance", schedule: "@every 1m", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	assert.Equal(t, s.maxRetries+1, job.runs)

	history, err := s.GetJobHistory("maintenance")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "boom", history.Results[0].Error)
	assert.Zero(t, history.SuccessRate())
}

func TestGetJobHistory_UnknownJob(t *testing.T) {
	s := New(logger.NewNop())

	_, err := s.GetJobHistory("nope")
	assert.Error(t, err)
}

func TestJobStatuses_SortedSnapshot(t *testing.T) {
	s := New(logger.NewNop())
	s.retryDelay = 0
	poll := &fakeJob{name: "poll", schedule: "@every 1m"}
	maint := &fakeJob{name: "maintenance", schedule: "0 30 3 * * *", err: errors.New("down")}
	require.NoError(t, s.AddJob(poll))
	require.NoError(t, s.AddJob(maint))

	s.runJob(poll)
	s.runJob(poll)
	s.runJob(maint)

	statuses := s.JobStatuses()
	require.Len(t, statuses, 2)

	assert.Equal(t, "maintenance", statuses[0].Name)
	assert.Equal(t, 1, statuses[0].Runs)
	assert.Zero(t, statuses[0].SuccessRate)
	require.NotNil(t, statuses[0].LastRun)
	assert.False(t, statuses[0].LastRun.Success)

	assert.Equal(t, "poll", statuses[1].Name)
	assert.Equal(t, "@every 1m", statuses[1].Schedule)
	assert.Equal(t, 2, statuses[1].Runs)
	assert.Equal(t, 1.0, statuses[1].SuccessRate)
}

func TestJobHistory_KeepsLastHundred(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 105; i++ {
		h.AddResult(JobResult{JobName: fmt.Sprintf("run-%d", i), Success: true})
	}

	require.Len(t, h.Results, 100)
	assert.Equal(t, "run-5", h.Results[0].JobName)
	assert.Equal(t, "run-104", h.Results[99].JobName)
}

func TestSuccessRate_EmptyHistory(t *testing.T) {
	h := &JobHistory{}
	assert.Zero(t, h.SuccessRate())
}
