package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/pagination"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// orderQueryService implements OrderQueryService.
type orderQueryService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderQueryService creates a new order query service.
func NewOrderQueryService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderQueryService {
	return &orderQueryService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "query").Logger(),
	}
}

// TrackByPublicID retrieves an order by its tracking ID.
func (s *orderQueryService) TrackByPublicID(ctx context.Context, trackingID uuid.UUID) (order *model.Order, err error) {
	ctx, span := tracer.Start(ctx, "OrderQueryService.TrackByPublicID")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("order.tracking_id", trackingID.String()))

	order, err = s.orderRepo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		s.logger.Error().Err(err).Str("tracking_id", trackingID.String()).Msg("failed to track order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("tracking_id", trackingID.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// ListAll retrieves one page of every order, newest first.
func (s *orderQueryService) ListAll(ctx context.Context, page model.PageRequest) (result *model.OrderPage, err error) {
	ctx, span := tracer.Start(ctx, "OrderQueryService.ListAll")
	defer func() { endSpan(span, err) }()

	return s.list(ctx, model.OrderFilter{}, page)
}

// ListForUser retrieves one page of a user's orders, newest first.
func (s *orderQueryService) ListForUser(ctx context.Context, userID string, page model.PageRequest) (result *model.OrderPage, err error) {
	ctx, span := tracer.Start(ctx, "OrderQueryService.ListForUser")
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, model.NewValidationError("user id is required")
	}
	span.SetAttributes(attribute.String("order.user_id", userID))

	return s.list(ctx, model.OrderFilter{BuyerKind: model.BuyerKindUser, BuyerID: userID}, page)
}

// list fetches one row past the page to learn whether another page follows.
func (s *orderQueryService) list(ctx context.Context, filter model.OrderFilter, page model.PageRequest) (*model.OrderPage, error) {
	after, err := pagination.DecodeToken(page.PageToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid page token")
		return nil, err
	}

	limit := pagination.Limit(page.PageSize)
	filter.Limit = limit + 1
	filter.After = after

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("buyer_id", filter.BuyerID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := &model.OrderPage{Orders: orders}
	if len(orders) > limit {
		result.Orders = orders[:limit]
		last := result.Orders[limit-1]
		token, err := pagination.EncodeToken(model.OrderCursor{CreatedAt: last.CreatedAt, ID: last.ID})
		if err != nil {
			return nil, err
		}
		result.NextPageToken = token
	}

	s.logger.Debug().
		Int("count", len(result.Orders)).
		Bool("has_more", result.NextPageToken != "").
		Str("buyer_id", filter.BuyerID).
		Msg("listed orders")

	return result, nil
}
