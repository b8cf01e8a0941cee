package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// orderStatusService implements OrderStatusService.
type orderStatusService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderStatusService creates a new order status service.
func NewOrderStatusService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderStatusService {
	return &orderStatusService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "status").Logger(),
	}
}

// UpdateStatus locks the order, checks the transition and writes the new
// status. Re-applying the current status succeeds without a write.
func (s *orderStatusService) UpdateStatus(ctx context.Context, orderID uuid.UUID, raw string) (err error) {
	ctx, span := tracer.Start(ctx, "OrderStatusService.UpdateStatus")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("order.id", orderID.String()))

	next, err := model.ParseOrderStatus(raw)
	if err != nil {
		return model.NewDomainError(model.ErrCodeInvalidStatus, fmt.Sprintf("unknown order status %q", raw))
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	current, err := s.orderRepo.GetStatusForUpdate(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if current == next {
		err = tx.Commit(ctx)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return nil
	}

	if !current.CanTransitionTo(next) {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("from", string(current)).
			Str("to", string(next)).
			Msg("status transition rejected")
		err = model.NewDomainError(model.ErrCodeInvalidStatusTransition,
			fmt.Sprintf("cannot move order from %s to %s", current, next))
		return err
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, orderID, next); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("from", string(current)).
		Str("to", string(next)).
		Msg("order status updated")

	return nil
}
