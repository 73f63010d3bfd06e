package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"trainslot/internal/apperr"
	"trainslot/internal/interval"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// IsConflictViolation reports whether err is the database rejecting a row
// that would violate an overlap exclusion or uniqueness constraint. This is
// how a writer that lost the check-then-insert race is detected.
func IsConflictViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}

func (r *repository) CreateSlot(ctx context.Context, trainerID, gymID int, iv interval.TimeInterval) (*Slot, error) {
	query := `
		INSERT INTO schedules (trainer_id, gym_id, day_of_week, start_sec, end_sec)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, trainer_id, gym_id, day_of_week, start_sec, end_sec, created_at
	`

	var slot Slot
	err := r.db.GetContext(ctx, &slot, query, trainerID, gymID, string(iv.Day), int(iv.Start), int(iv.End))
	if err != nil {
		if IsConflictViolation(err) {
			return nil, apperr.Wrap(apperr.KindScheduleConflict,
				"the schedule intersects with another schedule of the same trainer", err)
		}
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Slot, error) {
	query := `
		SELECT id, trainer_id, gym_id, day_of_week, start_sec, end_sec, created_at
		FROM schedules
		WHERE id = $1
	`

	var slot Slot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "schedule %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Slot, error) {
	query := `
		SELECT id, trainer_id, gym_id, day_of_week, start_sec, end_sec, created_at
		FROM schedules
		WHERE trainer_id = $1
		ORDER BY day_of_week, start_sec
	`

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, trainerID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListByTrainerAndDay(ctx context.Context, trainerID int, day interval.Weekday) ([]Slot, error) {
	query := `
		SELECT id, trainer_id, gym_id, day_of_week, start_sec, end_sec, created_at
		FROM schedules
		WHERE trainer_id = $1 AND day_of_week = $2
		ORDER BY start_sec
	`

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, trainerID, string(day))
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListSlots(ctx context.Context, filter Filter) ([]Slot, error) {
	query := `
		SELECT id, trainer_id, gym_id, day_of_week, start_sec, end_sec, created_at
		FROM schedules
	`
	var (
		conds []string
		args  []interface{}
	)

	if filter.TrainerID != 0 {
		args = append(args, filter.TrainerID)
		conds = append(conds, fmt.Sprintf("trainer_id = $%d", len(args)))
	}
	if filter.GymID != 0 {
		args = append(args, filter.GymID)
		conds = append(conds, fmt.Sprintf("gym_id = $%d", len(args)))
	}
	if filter.Day != "" {
		args = append(args, string(filter.Day))
		conds = append(conds, fmt.Sprintf("day_of_week = $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY day_of_week, start_sec"

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, args...)
	if err != nil {
		return nil, err
	}

	return slots, nil
}
