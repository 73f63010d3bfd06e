package booking

import (
	"context"

	"trainslot/internal/interval"
)

type Repository interface {
	CreateBooking(ctx context.Context, clientID, scheduleID int, iv interval.TimeInterval) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	ListByClient(ctx context.Context, clientID int) ([]Booking, error)
	ListActiveByClient(ctx context.Context, clientID int) ([]Booking, error)
	GetDetails(ctx context.Context, bookingID int) (*BookSlotResponse, error)
	CancelBooking(ctx context.Context, id int) error
}
