package scheduler_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skypaper/skypaper/scheduler"
)

type MockFetchJob struct {
	mock.Mock
}

func (m *MockFetchJob) Run() {
	m.Called()
}

func TestNewScheduler(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	s := scheduler.NewScheduler(scheduler.SchedulerParams{
		Logger: logger,
	})

	assert.NotNil(t, s, "Scheduler should not be nil")
}

func TestScheduler_AddFetchJob(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	s := scheduler.NewScheduler(scheduler.SchedulerParams{
		Logger: logger,
	})

	mockJob := new(MockFetchJob)

	err := s.AddFetchJob("0 9 * * *", mockJob)
	assert.NoError(t, err, "Should add job without error")

	// Test with invalid schedule.
	err = s.AddFetchJob("invalid-schedule", mockJob)
	assert.Error(t, err, "Should return error with invalid schedule")
}

func TestScheduler_StartStop(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	s := scheduler.NewScheduler(scheduler.SchedulerParams{
		Logger: logger,
	})

	mockJob := new(MockFetchJob)
	mockJob.On("Run").Return()

	err := s.AddFetchJob("* * * * *", mockJob)
	assert.NoError(t, err)

	s.Start()
	s.Stop()
}

func TestScheduler_RemoveJobs(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	s := scheduler.NewScheduler(scheduler.SchedulerParams{
		Logger: logger,
	})

	mockJob := new(MockFetchJob)
	err := s.AddFetchJob("0 9 * * *", mockJob)
	assert.NoError(t, err)

	s.RemoveJobs()

	// Removing twice is harmless.
	s.RemoveJobs()
}
