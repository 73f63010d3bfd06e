package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trainslot/internal/apperr"
	"trainslot/internal/interval"
	"trainslot/internal/locker"
	"trainslot/internal/metrics"
	"trainslot/internal/schedule"
)

type Service interface {
	// CreateBooking admits a reservation for clientID against scheduleID.
	// A nil requested interval books the full slot. The whole
	// check-and-insert region runs under the client's admission lock; on
	// success the returned payload carries the booking plus a denormalized
	// slot summary.
	CreateBooking(ctx context.Context, clientID, scheduleID int, requested *interval.TimeInterval) (*BookSlotResponse, error)
	ListByClient(ctx context.Context, clientID int) ([]Booking, error)
	CancelBooking(ctx context.Context, clientID, bookingID int) error
}

type service struct {
	repo     Repository
	slots    schedule.Repository
	locks    locker.Locker
	lockWait time.Duration
}

func NewService(repo Repository, slots schedule.Repository, locks locker.Locker, lockWait time.Duration) Service {
	return &service{
		repo:     repo,
		slots:    slots,
		locks:    locks,
		lockWait: lockWait,
	}
}

func (s *service) CreateBooking(ctx context.Context, clientID, scheduleID int, requested *interval.TimeInterval) (*BookSlotResponse, error) {
	resp, err := s.admit(ctx, clientID, scheduleID, requested)
	if err != nil {
		metrics.RecordAdmission(admissionResult(err))
		return nil, err
	}
	metrics.RecordAdmission("committed")
	return resp, nil
}

func admissionResult(err error) string {
	if kind := apperr.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}

func (s *service) admit(ctx context.Context, clientID, scheduleID int, requested *interval.TimeInterval) (*BookSlotResponse, error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	lockStart := time.Now()
	release, err := s.locks.Acquire(lockCtx, clientLockKey(clientID))
	metrics.RecordLockWait(time.Since(lockStart).Seconds())
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			return nil, apperr.New(apperr.KindAborted,
				"timed out waiting to serialize booking admission; retry the request")
		}
		return nil, apperr.Wrap(apperr.KindAborted, "admission lock unavailable", err)
	}
	defer release()

	slot, err := s.slots.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	// default: book the full session
	iv := slot.Interval()
	if requested != nil {
		iv = *requested
		if !interval.Contains(slot.Interval(), iv) {
			return nil, apperr.Newf(apperr.KindOutOfBounds,
				"requested interval %s is not within the schedule %s", iv, slot.Interval())
		}
	}

	existing, err := s.repo.ListActiveByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if interval.Overlaps(iv, existing[i].Interval()) {
			return nil, apperr.Newf(apperr.KindScheduleConflict,
				"selected schedule intersects with existing booking (%s)", existing[i].Interval())
		}
	}

	booking, err := s.repo.CreateBooking(ctx, clientID, scheduleID, iv)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindScheduleConflict {
			// a writer outside our lock scope committed first
			return nil, err
		}
		// validation passed but the commit failed; nothing was written, so
		// the identical request is safe to retry
		return nil, apperr.Wrap(apperr.KindAborted, "failed to commit booking", err)
	}

	resp, err := s.repo.GetDetails(ctx, booking.ID)
	if err != nil {
		// the booking is committed; return it without the projection rather
		// than reporting a failure for a read problem
		return &BookSlotResponse{Booking: booking, Slot: SlotSummary{
			ScheduleID: slot.ID,
			Day:        slot.Day,
			Start:      slot.Start,
			End:        slot.End,
		}}, nil
	}

	return resp, nil
}

func (s *service) ListByClient(ctx context.Context, clientID int) ([]Booking, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) CancelBooking(ctx context.Context, clientID, bookingID int) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.ClientID != clientID {
		return apperr.New(apperr.KindNotFound, "booking does not exist")
	}

	if err := s.repo.CancelBooking(ctx, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return apperr.New(apperr.KindNotFound, "booking not found or already cancelled")
		}
		return err
	}

	return nil
}

func clientLockKey(clientID int) string {
	return fmt.Sprintf("admission:client:%d", clientID)
}
