package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trainslot/internal/apperr"
	"trainslot/internal/interval"
	"trainslot/internal/locker"
)

type MockSlotRepo struct{ mock.Mock }

func (m *MockSlotRepo) CreateSlot(ctx context.Context, trainerID, gymID int, iv interval.TimeInterval) (*Slot, error) {
	args := m.Called(ctx, trainerID, gymID, iv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotRepo) GetByID(ctx context.Context, id int) (*Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotRepo) ListByTrainer(ctx context.Context, trainerID int) ([]Slot, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Slot), args.Error(1)
}

func (m *MockSlotRepo) ListByTrainerAndDay(ctx context.Context, trainerID int, day interval.Weekday) ([]Slot, error) {
	args := m.Called(ctx, trainerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Slot), args.Error(1)
}

func (m *MockSlotRepo) ListSlots(ctx context.Context, filter Filter) ([]Slot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Slot), args.Error(1)
}

func newTestService(repo Repository) Service {
	return NewService(repo, locker.NewMemoryLocker(), time.Second)
}

func slotWith(t *testing.T, id, trainerID, gymID int, day interval.Weekday, start, end string) Slot {
	t.Helper()
	s, err := interval.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := interval.ParseTimeOfDay(end)
	require.NoError(t, err)
	return Slot{ID: id, TrainerID: trainerID, GymID: gymID, Day: day, Start: s, End: e}
}

func TestCreateSlotSuccess(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	created := slotWith(t, 1, 7, 1, interval.Monday, "08:00", "12:00")
	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{}, nil)
	repo.On("CreateSlot", mock.Anything, 7, 1, created.Interval()).Return(&created, nil)

	slot, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 1, DayOfWeek: "Monday", StartTime: "08:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, slot.ID)

	repo.AssertExpectations(t)
}

func TestCreateSlotTrainerOverlapAcrossGyms(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	// trainer already works Monday 08:00-12:00 at gym A; gym B 10:00-14:00
	// must be rejected regardless of gym
	existing := slotWith(t, 1, 7, 1, interval.Monday, "08:00", "12:00")
	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{existing}, nil)

	_, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 2, DayOfWeek: "Monday", StartTime: "10:00", EndTime: "14:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindScheduleConflict))

	repo.AssertNotCalled(t, "CreateSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSlotRejectionIsIdempotent(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	existing := slotWith(t, 1, 7, 1, interval.Monday, "08:00", "12:00")
	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{existing}, nil)

	req := CreateSlotRequest{GymID: 2, DayOfWeek: "Monday", StartTime: "10:00", EndTime: "14:00"}
	for i := 0; i < 2; i++ {
		_, err := svc.CreateSlot(context.Background(), 7, req)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindScheduleConflict))
	}

	// no insert was ever attempted, so the registry is unchanged
	repo.AssertNotCalled(t, "CreateSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSlotTouchingIsAllowed(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	existing := slotWith(t, 1, 7, 1, interval.Monday, "08:00", "09:00")
	created := slotWith(t, 2, 7, 1, interval.Monday, "09:00", "10:00")
	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{existing}, nil)
	repo.On("CreateSlot", mock.Anything, 7, 1, created.Interval()).Return(&created, nil)

	slot, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 1, DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, slot.ID)
}

func TestCreateSlotOutsideOperatingHours(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	cases := []struct {
		start, end string
	}{
		{"01:00", "02:00"}, // entirely inside the closed window
		{"05:00", "07:00"}, // straddles the boundary
		{"00:00", "00:30"}, // starts at midnight
	}
	for _, tc := range cases {
		_, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
			GymID: 1, DayOfWeek: "Monday", StartTime: tc.start, EndTime: tc.end,
		})
		require.Error(t, err, "%s-%s", tc.start, tc.end)
		assert.True(t, apperr.IsKind(err, apperr.KindOutsideOperatingHours), "%s-%s", tc.start, tc.end)
	}

	repo.AssertNotCalled(t, "ListByTrainerAndDay", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSlotSixAMIsFirstPermitted(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	created := slotWith(t, 3, 7, 1, interval.Monday, "06:00", "08:00")
	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{}, nil)
	repo.On("CreateSlot", mock.Anything, 7, 1, created.Interval()).Return(&created, nil)

	_, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 1, DayOfWeek: "Monday", StartTime: "06:00", EndTime: "08:00",
	})
	require.NoError(t, err)
}

func TestCreateSlotInvalidInterval(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	cases := []CreateSlotRequest{
		{GymID: 1, DayOfWeek: "Monday", StartTime: "12:00", EndTime: "12:00"},
		{GymID: 1, DayOfWeek: "Monday", StartTime: "14:00", EndTime: "12:00"},
		{GymID: 1, DayOfWeek: "Noday", StartTime: "08:00", EndTime: "12:00"},
		{GymID: 1, DayOfWeek: "Monday", StartTime: "late", EndTime: "12:00"},
	}
	for _, req := range cases {
		_, err := svc.CreateSlot(context.Background(), 7, req)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInterval), "%+v", req)
	}
}

func TestCreateSlotLockTimeoutAborts(t *testing.T) {
	repo := new(MockSlotRepo)
	locks := locker.NewMemoryLocker()
	svc := NewService(repo, locks, 50*time.Millisecond)

	// hold the trainer's key so the service cannot enter the admission region
	release, err := locks.Acquire(context.Background(), trainerLockKey(7))
	require.NoError(t, err)
	defer release()

	_, err = svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 1, DayOfWeek: "Monday", StartTime: "08:00", EndTime: "12:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAborted))
	assert.True(t, apperr.Retryable(err))
}

func TestCreateSlotStorageRaceSurfacesConflict(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{}, nil)
	repo.On("CreateSlot", mock.Anything, 7, 1, mock.Anything).
		Return(nil, apperr.New(apperr.KindScheduleConflict, "the schedule intersects with another schedule of the same trainer"))

	_, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 1, DayOfWeek: "Monday", StartTime: "08:00", EndTime: "12:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindScheduleConflict))
}

func TestCreateSlotStorageFailureAborts(t *testing.T) {
	repo := new(MockSlotRepo)
	svc := newTestService(repo)

	repo.On("ListByTrainerAndDay", mock.Anything, 7, interval.Monday).Return([]Slot{}, nil)
	repo.On("CreateSlot", mock.Anything, 7, 1, mock.Anything).
		Return(nil, assert.AnError)

	_, err := svc.CreateSlot(context.Background(), 7, CreateSlotRequest{
		GymID: 1, DayOfWeek: "Monday", StartTime: "08:00", EndTime: "12:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAborted))
}
