package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"trainslot/internal/apperr"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, name, location string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, location)
		VALUES ($1, $2)
		RETURNING id, name, location, created_at
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, name, location)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, location, created_at
		FROM gyms
		ORDER BY created_at DESC
	`

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, location, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "gym %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}

	return &gym, nil
}
