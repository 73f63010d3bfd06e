package schedule

import (
	"time"

	"trainslot/internal/interval"
)

// Slot is a trainer's declared availability window at a gym on one weekday.
// Slots are append-only: once a booking references one it is never mutated.
type Slot struct {
	ID        int                `db:"id" json:"id"`
	TrainerID int                `db:"trainer_id" json:"trainer_id"`
	GymID     int                `db:"gym_id" json:"gym_id"`
	Day       interval.Weekday   `db:"day_of_week" json:"day_of_week"`
	Start     interval.TimeOfDay `db:"start_sec" json:"start_time"`
	End       interval.TimeOfDay `db:"end_sec" json:"end_time"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

func (s *Slot) Interval() interval.TimeInterval {
	return interval.TimeInterval{Day: s.Day, Start: s.Start, End: s.End}
}

type CreateSlotRequest struct {
	GymID     int    `json:"gym_id" binding:"required,min=1"`
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Filter narrows slot listings; zero values mean no constraint.
type Filter struct {
	TrainerID int
	GymID     int
	Day       interval.Weekday
}
