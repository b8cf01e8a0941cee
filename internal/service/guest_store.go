package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// guestIdentityStore implements GuestIdentityStore.
type guestIdentityStore struct {
	guestRepo repository.GuestRepository
	logger    zerolog.Logger
}

// NewGuestIdentityStore creates a new guest identity store.
func NewGuestIdentityStore(guestRepo repository.GuestRepository, logger zerolog.Logger) GuestIdentityStore {
	return &guestIdentityStore{
		guestRepo: guestRepo,
		logger:    logger.With().Str("service", "guest").Logger(),
	}
}

// CreateGuest inserts a new guest within tx and returns its ID.
func (s *guestIdentityStore) CreateGuest(ctx context.Context, tx pgx.Tx, guest *model.GuestUser) (uuid.UUID, error) {
	if guest == nil {
		return uuid.Nil, model.NewValidationError("guest details are required")
	}
	if err := validateContact(guest.FullName, guest.Phone, guest.FullAddress); err != nil {
		return uuid.Nil, err
	}

	if guest.ID == uuid.Nil {
		guest.ID = uuid.New()
	}
	guest.FullName = strings.TrimSpace(guest.FullName)
	guest.Phone = strings.TrimSpace(guest.Phone)
	guest.AlternatePhone = strings.TrimSpace(guest.AlternatePhone)
	guest.FullAddress = strings.TrimSpace(guest.FullAddress)

	if err := s.guestRepo.Create(ctx, tx, guest); err != nil {
		s.logger.Error().Err(err).Str("guest_id", guest.ID.String()).Msg("failed to create guest")
		return uuid.Nil, fmt.Errorf("failed to create guest: %w", err)
	}

	s.logger.Debug().Str("guest_id", guest.ID.String()).Msg("guest created")

	return guest.ID, nil
}

// validateContact requires the name, phone and address every delivery needs.
func validateContact(fullName, phone, fullAddress string) error {
	switch {
	case strings.TrimSpace(fullName) == "":
		return model.NewValidationError("fullName is required")
	case strings.TrimSpace(phone) == "":
		return model.NewValidationError("phone is required")
	case strings.TrimSpace(fullAddress) == "":
		return model.NewValidationError("fullAddress is required")
	}
	return nil
}
