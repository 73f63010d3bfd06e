package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"trainslot/internal/apperr"
	"trainslot/internal/interval"
	"trainslot/internal/schedule"
)

var ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, clientID, scheduleID int, iv interval.TimeInterval) (*Booking, error) {
	query := `
		INSERT INTO bookings (client_id, schedule_id, day_of_week, start_sec, end_sec, status)
		VALUES ($1, $2, $3, $4, $5, 'booked')
		RETURNING id, client_id, schedule_id, day_of_week, start_sec, end_sec, status, created_at
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query,
		clientID, scheduleID, string(iv.Day), int(iv.Start), int(iv.End))
	if err != nil {
		if schedule.IsConflictViolation(err) {
			return nil, apperr.Wrap(apperr.KindScheduleConflict,
				"selected schedule intersects with an existing booking", err)
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, client_id, schedule_id, day_of_week, start_sec, end_sec, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "booking %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Booking, error) {
	query := `
		SELECT id, client_id, schedule_id, day_of_week, start_sec, end_sec, status, created_at
		FROM bookings
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, clientID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListActiveByClient(ctx context.Context, clientID int) ([]Booking, error) {
	query := `
		SELECT id, client_id, schedule_id, day_of_week, start_sec, end_sec, status, created_at
		FROM bookings
		WHERE client_id = $1 AND status = 'booked'
		ORDER BY day_of_week, start_sec
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, clientID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetDetails(ctx context.Context, bookingID int) (*BookSlotResponse, error) {
	query := `
		SELECT
			b.id,
			b.client_id,
			b.schedule_id,
			b.day_of_week,
			b.start_sec,
			b.end_sec,
			b.status,
			b.created_at,
			u.name AS trainer_name,
			g.name AS gym_name,
			g.location AS gym_location,
			s.day_of_week AS slot_day,
			s.start_sec AS slot_start,
			s.end_sec AS slot_end
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN users u ON s.trainer_id = u.id
		JOIN gyms g ON s.gym_id = g.id
		WHERE b.id = $1
	`

	var row bookingDetailsRow
	err := r.db.GetContext(ctx, &row, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "booking %d does not exist", bookingID)
	}
	if err != nil {
		return nil, err
	}

	booking := row.Booking
	return &BookSlotResponse{
		Booking: &booking,
		Slot: SlotSummary{
			ScheduleID:  row.ScheduleID,
			TrainerName: row.TrainerName,
			GymName:     row.GymName,
			GymLocation: row.GymLocation,
			Day:         row.SlotDay,
			Start:       row.SlotStart,
			End:         row.SlotEnd,
		},
	}, nil
}

func (r *repository) CancelBooking(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'booked'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}
