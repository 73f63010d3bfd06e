package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trainslot/internal/apperr"
	"trainslot/internal/interval"
	"trainslot/internal/locker"
	"trainslot/internal/metrics"
)

// The facility is closed between 00:00 and 06:00; no availability window may
// touch that range. 06:00 is the first permitted start.
var closedHours = struct {
	start, end interval.TimeOfDay
}{
	start: interval.NewTimeOfDay(0, 0, 0),
	end:   interval.NewTimeOfDay(6, 0, 0),
}

type Service interface {
	CreateSlot(ctx context.Context, trainerID int, req CreateSlotRequest) (*Slot, error)
	GetByID(ctx context.Context, id int) (*Slot, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Slot, error)
	ListSlots(ctx context.Context, filter Filter) ([]Slot, error)
}

type service struct {
	repo     Repository
	locks    locker.Locker
	lockWait time.Duration
}

func NewService(repo Repository, locks locker.Locker, lockWait time.Duration) Service {
	return &service{
		repo:     repo,
		locks:    locks,
		lockWait: lockWait,
	}
}

func parseInterval(day, start, end string) (interval.TimeInterval, error) {
	d, err := interval.ParseWeekday(day)
	if err != nil {
		return interval.TimeInterval{}, err
	}
	s, err := interval.ParseTimeOfDay(start)
	if err != nil {
		return interval.TimeInterval{}, err
	}
	e, err := interval.ParseTimeOfDay(end)
	if err != nil {
		return interval.TimeInterval{}, err
	}
	return interval.New(d, s, e)
}

// CreateSlot validates the requested window and commits it while holding the
// trainer's admission lock, so two concurrent requests for the same trainer
// cannot both pass the overlap check. The database exclusion constraint
// backstops the lock.
func (s *service) CreateSlot(ctx context.Context, trainerID int, req CreateSlotRequest) (*Slot, error) {
	iv, err := parseInterval(req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		metrics.RecordScheduleRejection(string(apperr.KindOf(err)))
		return nil, err
	}

	closed := interval.TimeInterval{Day: iv.Day, Start: closedHours.start, End: closedHours.end}
	if interval.Overlaps(iv, closed) {
		metrics.RecordScheduleRejection(string(apperr.KindOutsideOperatingHours))
		return nil, apperr.New(apperr.KindOutsideOperatingHours,
			"the fitness center is closed between 00:00 and 06:00")
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	release, err := s.locks.Acquire(lockCtx, trainerLockKey(trainerID))
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			metrics.RecordScheduleRejection(string(apperr.KindAborted))
			return nil, apperr.New(apperr.KindAborted,
				"timed out waiting to serialize schedule creation; retry the request")
		}
		return nil, apperr.Wrap(apperr.KindAborted, "admission lock unavailable", err)
	}
	defer release()

	existing, err := s.repo.ListByTrainerAndDay(ctx, trainerID, iv.Day)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if interval.Overlaps(iv, existing[i].Interval()) {
			metrics.RecordScheduleRejection(string(apperr.KindScheduleConflict))
			return nil, apperr.Newf(apperr.KindScheduleConflict,
				"the schedule intersects with an existing schedule (%s)", existing[i].Interval())
		}
	}

	slot, err := s.repo.CreateSlot(ctx, trainerID, req.GymID, iv)
	if err != nil {
		kind := apperr.KindOf(err)
		if kind == apperr.KindScheduleConflict {
			// lost the race to a writer outside our lock scope
			metrics.RecordScheduleRejection(string(kind))
			return nil, err
		}
		metrics.RecordScheduleRejection(string(apperr.KindAborted))
		return nil, apperr.Wrap(apperr.KindAborted, "failed to commit schedule", err)
	}

	metrics.RecordScheduleCreated()
	return slot, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByTrainer(ctx context.Context, trainerID int) ([]Slot, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *service) ListSlots(ctx context.Context, filter Filter) ([]Slot, error) {
	return s.repo.ListSlots(ctx, filter)
}

func trainerLockKey(trainerID int) string {
	return fmt.Sprintf("admission:trainer:%d", trainerID)
}
