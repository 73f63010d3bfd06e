package gym

import "context"

type Repository interface {
	CreateGym(ctx context.Context, name, location string) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
}
