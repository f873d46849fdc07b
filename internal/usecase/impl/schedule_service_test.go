package impl

import (
	"context"
	"testing"
	"time"

	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	mockRepo "riego/internal/mocks/repository"
	"riego/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newScheduleServiceForTest(scheduleRepo repository.ScheduleRepository) *scheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		logger:       discardLogger(),
	}
}

func TestScheduleService_Create_PassesFieldsThrough(t *testing.T) {
	ctx := context.Background()
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	service := newScheduleServiceForTest(scheduleRepo)

	owner := uuid.New()
	// Out-of-range values reach the store untouched; the schema rejects them.
	input := usecase.ScheduleInput{Hour: 6, Minute: 30, DurationSeconds: 900, Weekdays: []int{1, 3, 5}, Active: true}

	scheduleRepo.On("Create", ctx, mock.MatchedBy(func(schedule *entity.Schedule) bool {
		return schedule.Hour == 6 &&
			schedule.Minute == 30 &&
			schedule.DurationSeconds == 900 &&
			schedule.CreatedBy == owner &&
			schedule.Active
	})).Return(nil)

	created, err := service.Create(ctx, owner, input)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, created.Weekdays)
}

func TestScheduleService_Create_AllowsEmptyWeekdays(t *testing.T) {
	ctx := context.Background()
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	service := newScheduleServiceForTest(scheduleRepo)

	scheduleRepo.On("Create", ctx, mock.AnythingOfType("*entity.Schedule")).Return(nil)

	created, err := service.Create(ctx, uuid.New(), usecase.ScheduleInput{Hour: 6, DurationSeconds: 60})

	require.NoError(t, err)
	assert.Empty(t, created.Weekdays)
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	service := newScheduleServiceForTest(scheduleRepo)

	id := uuid.New()
	scheduleRepo.On("FindByID", ctx, id).Return(nil, repository.ErrScheduleNotFound)

	_, err := service.Update(ctx, id, usecase.ScheduleInput{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrScheduleNotFound)
}

func TestScheduleService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	service := newScheduleServiceForTest(scheduleRepo)

	id := uuid.New()
	scheduleRepo.On("Delete", ctx, id).Return(repository.ErrScheduleNotFound)

	err := service.Delete(ctx, id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrScheduleNotFound)
}

func TestScheduleService_SetActive_ReturnsRefreshedSchedule(t *testing.T) {
	ctx := context.Background()
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	service := newScheduleServiceForTest(scheduleRepo)

	id := uuid.New()
	scheduleRepo.On("SetActive", ctx, id, false).Return(nil)
	scheduleRepo.On("FindByID", ctx, id).
		Return(&entity.Schedule{ID: id, Active: false, UpdatedAt: time.Now()}, nil)

	schedule, err := service.SetActive(ctx, id, false)

	require.NoError(t, err)
	assert.False(t, schedule.Active)
}
