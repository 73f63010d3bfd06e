package booking

import (
	"time"

	"trainslot/internal/interval"
)

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Booking is a client's reservation against an availability slot. It stores
// its own interval (normally the full slot) so per-client overlap checks
// never need to chase the slot reference.
type Booking struct {
	ID         int                `db:"id" json:"id"`
	ClientID   int                `db:"client_id" json:"client_id"`
	ScheduleID int                `db:"schedule_id" json:"schedule_id"`
	Day        interval.Weekday   `db:"day_of_week" json:"day_of_week"`
	Start      interval.TimeOfDay `db:"start_sec" json:"start_time"`
	End        interval.TimeOfDay `db:"end_sec" json:"end_time"`
	Status     string             `db:"status" json:"status"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

func (b *Booking) Interval() interval.TimeInterval {
	return interval.TimeInterval{Day: b.Day, Start: b.Start, End: b.End}
}

// SlotSummary is a read-time projection of the booked slot for client
// convenience; nothing here is stored on the booking row.
type SlotSummary struct {
	ScheduleID  int                `json:"schedule_id"`
	TrainerName string             `json:"trainer_name"`
	GymName     string             `json:"gym_name"`
	GymLocation string             `json:"gym_location"`
	Day         interval.Weekday   `json:"day_of_week"`
	Start       interval.TimeOfDay `json:"start_time"`
	End         interval.TimeOfDay `json:"end_time"`
}

type BookSlotResponse struct {
	Booking *Booking    `json:"booking"`
	Slot    SlotSummary `json:"slot"`
}

// bookingDetailsRow is the join row backing SlotSummary.
type bookingDetailsRow struct {
	Booking
	TrainerName string             `db:"trainer_name"`
	GymName     string             `db:"gym_name"`
	GymLocation string             `db:"gym_location"`
	SlotDay     interval.Weekday   `db:"slot_day"`
	SlotStart   interval.TimeOfDay `db:"slot_start"`
	SlotEnd     interval.TimeOfDay `db:"slot_end"`
}

type CancelBookingResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully"`
}
