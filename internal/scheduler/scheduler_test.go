package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs++
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())

	assert.NoError(t, s.AddJob(EveryMinute, &countingJob{}))
	assert.NoError(t, s.AddJob(Midnight, &countingJob{}))
	assert.NoError(t, s.AddJob("@every 1s", &countingJob{}))
	assert.Error(t, s.AddJob("not a schedule", &countingJob{}))
	assert.Len(t, s.cron.Entries(), 3)
}

func TestRunNow(t *testing.T) {
	s := New(nil, zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}

	assert.EqualError(t, s.RunNow(job), "boom")
	assert.Equal(t, 1, job.runs)
}

func TestStartStop(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	assert.NoError(t, s.AddJob(EveryMinute, &countingJob{}))

	s.Start()
	assert.NotPanics(t, s.Stop)
}
