package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/idempotency"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// maxItemQuantity caps a single line so quantities stay well inside the INTEGER
// column and totals stay inside NUMERIC(12, 2).
const maxItemQuantity = 1000

// maxOrderAmount is the first value NUMERIC(12, 2) cannot hold.
var maxOrderAmount = decimal.New(1, 10)

// orderPlacementService implements OrderPlacementService.
type orderPlacementService struct {
	orderRepo repository.OrderRepository
	guests    GuestIdentityStore
	resolver  pricing.Resolver
	guard     idempotency.Guard
	logger    zerolog.Logger
}

// NewOrderPlacementService creates a new order placement service.
func NewOrderPlacementService(
	orderRepo repository.OrderRepository,
	guests GuestIdentityStore,
	resolver pricing.Resolver,
	guard idempotency.Guard,
	logger zerolog.Logger,
) OrderPlacementService {
	return &orderPlacementService{
		orderRepo: orderRepo,
		guests:    guests,
		resolver:  resolver,
		guard:     guard,
		logger:    logger.With().Str("service", "placement").Logger(),
	}
}

// PlaceGuestOrder checks the token, prices the items, then commits a new guest
// and the order in one transaction.
func (s *orderPlacementService) PlaceGuestOrder(ctx context.Context, req *model.GuestOrderRequest) (result *model.PlacementResult, err error) {
	ctx, span := tracer.Start(ctx, "OrderPlacementService.PlaceGuestOrder")
	defer func() { endSpan(span, err) }()

	if err = s.validateGuestRequest(req); err != nil {
		return nil, err
	}
	token := strings.TrimSpace(req.IdempotencyToken)
	span.SetAttributes(attribute.String("order.idempotency_token", token))

	if err = s.checkToken(ctx, token); err != nil {
		return nil, err
	}

	quote, err := s.resolver.Resolve(ctx, req.Items)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_token", token).Msg("failed to price guest order")
		return nil, err
	}

	amount := quote.Subtotal
	if req.DeliveryCharge != nil {
		amount = amount.Add(*req.DeliveryCharge)
	}
	if err = checkAmount(amount); err != nil {
		s.logger.Warn().Str("amount", amount.String()).Str("idempotency_token", token).Msg("guest order total out of range")
		return nil, err
	}

	guest := &model.GuestUser{
		FullName:       req.FullName,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		FullAddress:    req.FullAddress,
	}

	order := &model.Order{
		ID:        uuid.New(),
		BuyerKind: model.BuyerKindGuest,
		Address: model.Address{
			FullName:       strings.TrimSpace(req.FullName),
			Phone:          strings.TrimSpace(req.Phone),
			AlternatePhone: strings.TrimSpace(req.AlternatePhone),
			FullAddress:    strings.TrimSpace(req.FullAddress),
		},
		Note:             req.Note,
		Amount:           amount,
		DeliveryCharge:   req.DeliveryCharge,
		PaymentMethod:    model.PaymentMethodCOD,
		Status:           model.StatusPending,
		TrackingID:       uuid.New(),
		IdempotencyToken: token,
	}

	err = s.placeIfAbsent(ctx, order, quote.Items, func(tx pgx.Tx) error {
		guestID, err := s.guests.CreateGuest(ctx, tx, guest)
		if err != nil {
			return err
		}
		order.BuyerID = guestID.String()
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Buyer = &model.Buyer{
		ID:             order.BuyerID,
		Kind:           model.BuyerKindGuest,
		FullName:       guest.FullName,
		Phone:          guest.Phone,
		AlternatePhone: guest.AlternatePhone,
		FullAddress:    guest.FullAddress,
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("tracking_id", order.TrackingID.String()).
		Str("amount", order.Amount.StringFixed(2)).
		Int("item_count", len(order.Items)).
		Msg("guest order placed")

	return &model.PlacementResult{TrackingID: order.TrackingID, Order: order}, nil
}

// PlaceOrder places an order for userID. A token is generated when the client
// sends none, so every order still carries a unique one.
func (s *orderPlacementService) PlaceOrder(ctx context.Context, userID string, req *model.OrderRequest) (result *model.PlacementResult, err error) {
	ctx, span := tracer.Start(ctx, "OrderPlacementService.PlaceOrder")
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, model.NewValidationError("user id is required")
	}
	if err = s.validateOrderRequest(req); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("order.user_id", userID))

	token := strings.TrimSpace(req.IdempotencyToken)
	if token == "" {
		token = uuid.NewString()
	} else if err = s.checkToken(ctx, token); err != nil {
		return nil, err
	}

	quote, err := s.resolver.Resolve(ctx, req.Items)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to price order")
		return nil, err
	}
	if err = checkAmount(quote.Subtotal); err != nil {
		s.logger.Warn().Str("amount", quote.Subtotal.String()).Str("user_id", userID).Msg("order total out of range")
		return nil, err
	}

	order := &model.Order{
		ID:        uuid.New(),
		BuyerID:   userID,
		BuyerKind: model.BuyerKindUser,
		Address: model.Address{
			FullName:       strings.TrimSpace(req.Address.FullName),
			Phone:          strings.TrimSpace(req.Address.Phone),
			AlternatePhone: strings.TrimSpace(req.Address.AlternatePhone),
			FullAddress:    strings.TrimSpace(req.Address.FullAddress),
		},
		Note:             req.Note,
		Amount:           quote.Subtotal,
		PaymentMethod:    model.PaymentMethodCOD,
		Status:           model.StatusPending,
		TrackingID:       uuid.New(),
		IdempotencyToken: token,
	}

	if err = s.placeIfAbsent(ctx, order, quote.Items, nil); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Str("amount", order.Amount.StringFixed(2)).
		Int("item_count", len(order.Items)).
		Msg("order placed")

	return &model.PlacementResult{TrackingID: order.TrackingID, Order: order}, nil
}

// checkToken runs the advisory duplicate check.
func (s *orderPlacementService) checkToken(ctx context.Context, token string) error {
	err := s.guard.Check(ctx, token)
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrDuplicateOrder) {
		s.logger.Warn().Str("idempotency_token", token).Msg("duplicate order submission")
		return err
	}
	s.logger.Error().Err(err).Str("idempotency_token", token).Msg("failed to check idempotency token")
	return fmt.Errorf("failed to place order: %w", err)
}

// placeIfAbsent commits order and items in one transaction. prepare, when set,
// runs first inside the same transaction. A token taken by a concurrent
// submission surfaces as model.ErrDuplicateOrder from the insert.
func (s *orderPlacementService) placeIfAbsent(ctx context.Context, order *model.Order, items []model.OrderItem, prepare func(pgx.Tx) error) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if prepare != nil {
		if err = prepare(tx); err != nil {
			return err
		}
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		if errors.Is(err, model.ErrDuplicateOrder) {
			s.logger.Warn().
				Str("idempotency_token", order.IdempotencyToken).
				Msg("duplicate order rejected by store")
			return err
		}
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to place order: %w", err)
	}

	order.Items = items
	s.guard.Remember(ctx, order.IdempotencyToken, order.ID)

	return nil
}

// validateGuestRequest validates the guest order request.
func (s *orderPlacementService) validateGuestRequest(req *model.GuestOrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}
	if err := validateContact(req.FullName, req.Phone, req.FullAddress); err != nil {
		return err
	}
	if err := s.validateItems(req.Items); err != nil {
		return err
	}
	if strings.TrimSpace(req.IdempotencyToken) == "" {
		return model.NewValidationError("idempotencyToken is required")
	}
	if req.DeliveryCharge != nil {
		if req.DeliveryCharge.LessThan(decimal.Zero) {
			return model.NewValidationError("deliveryCharge must not be negative")
		}
		if !req.DeliveryCharge.Equal(req.DeliveryCharge.Round(2)) {
			return model.NewValidationError("deliveryCharge must have at most 2 decimal places")
		}
	}
	return nil
}

// validateOrderRequest validates the authenticated order request.
func (s *orderPlacementService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}
	if err := s.validateItems(req.Items); err != nil {
		return err
	}
	return validateContact(req.Address.FullName, req.Address.Phone, req.Address.FullAddress)
}

func (s *orderPlacementService) validateItems(items []model.OrderItemRequest) error {
	if len(items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}

	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return model.NewValidationError(fmt.Sprintf("item %d: productId is required", i))
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		if item.Quantity > maxItemQuantity {
			return model.NewValidationError(fmt.Sprintf("item %d: quantity must not exceed %d", i, maxItemQuantity))
		}
	}

	return nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.GreaterThanOrEqual(maxOrderAmount) {
		return model.NewValidationError("order total exceeds the maximum allowed amount")
	}
	return nil
}
