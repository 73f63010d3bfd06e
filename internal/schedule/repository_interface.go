package schedule

import (
	"context"

	"trainslot/internal/interval"
)

type Repository interface {
	CreateSlot(ctx context.Context, trainerID, gymID int, iv interval.TimeInterval) (*Slot, error)
	GetByID(ctx context.Context, id int) (*Slot, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Slot, error)
	ListByTrainerAndDay(ctx context.Context, trainerID int, day interval.Weekday) ([]Slot, error)
	ListSlots(ctx context.Context, filter Filter) ([]Slot, error)
}
