package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// guestRepository implements the GuestRepository interface using PostgreSQL.
type guestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewGuestRepository creates a new PostgreSQL-backed guest repository.
func NewGuestRepository(pool *pgxpool.Pool, logger zerolog.Logger) GuestRepository {
	return &guestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "guest").Logger(),
	}
}

// Create inserts a guest within the provided transaction.
func (r *guestRepository) Create(ctx context.Context, tx pgx.Tx, guest *model.GuestUser) error {
	query := `
		INSERT INTO guest_users (id, full_name, phone, alternate_phone, full_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		guest.ID,
		guest.FullName,
		guest.Phone,
		guest.AlternatePhone,
		guest.FullAddress,
	).Scan(&guest.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("guest_id", guest.ID.String()).
			Msg("failed to create guest")
		return fmt.Errorf("failed to create guest: %w", err)
	}

	r.logger.Debug().
		Str("guest_id", guest.ID.String()).
		Msg("guest created successfully")

	return nil
}
