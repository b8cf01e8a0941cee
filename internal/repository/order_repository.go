package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderSelect reads an order together with whichever identity row its buyer
// kind points at.
const orderSelect = `
	SELECT o.id, o.buyer_id, o.buyer_kind,
		o.full_name, o.phone, o.alternate_phone, o.full_address,
		o.note, o.amount, o.delivery_charge, o.payment_method, o.paid,
		o.status, o.tracking_id, o.idempotency_token, o.created_at, o.updated_at,
		(g.id IS NOT NULL OR u.id IS NOT NULL),
		COALESCE(g.full_name, u.name), COALESCE(g.phone, u.phone),
		g.alternate_phone, g.full_address, u.email
	FROM orders o
	LEFT JOIN guest_users g ON o.buyer_kind = 'GuestUser' AND g.id::text = o.buyer_id
	LEFT JOIN users u ON o.buyer_kind = 'User' AND u.id = o.buyer_id
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, buyer_id, buyer_kind, full_name, phone, alternate_phone, full_address,
			note, amount, delivery_charge, payment_method, paid, status,
			tracking_id, idempotency_token
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	var deliveryCharge decimal.NullDecimal
	if order.DeliveryCharge != nil {
		deliveryCharge = decimal.NewNullDecimal(*order.DeliveryCharge)
	}

	err := tx.QueryRow(ctx, query,
		order.ID,
		order.BuyerID,
		string(order.BuyerKind),
		order.Address.FullName,
		order.Address.Phone,
		order.Address.AlternatePhone,
		order.Address.FullAddress,
		order.Note,
		order.Amount,
		deliveryCharge,
		order.PaymentMethod,
		order.Paid,
		string(order.Status),
		order.TrackingID,
		order.IdempotencyToken,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, idempotencyTokenConstraint) {
			r.logger.Warn().
				Str("order_id", order.ID.String()).
				Str("idempotency_token", order.IdempotencyToken).
				Msg("idempotency token already used")
			return model.ErrDuplicateOrder
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("tracking_id", order.TrackingID.String()).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, position, product_id, name, unit_price, quantity, size, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID,
			item.OrderID,
			item.Position,
			item.ProductID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.Size,
			item.Images,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// ExistsByIdempotencyToken reports whether an order already uses token.
func (r *orderRepository) ExistsByIdempotencyToken(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE idempotency_token = $1)`, token,
	).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to check idempotency token")
		return false, fmt.Errorf("failed to check idempotency token: %w", err)
	}
	return exists, nil
}

// GetByTrackingID retrieves an order with its buyer and items.
func (r *orderRepository) GetByTrackingID(ctx context.Context, trackingID uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.tracking_id = $1`, trackingID), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("tracking_id", trackingID.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("tracking_id", trackingID.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	orders := []model.Order{order}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// List retrieves orders newest first, with buyers and items.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)

	if filter.BuyerID != "" {
		args = append(args, string(filter.BuyerKind), filter.BuyerID)
		conds = append(conds, fmt.Sprintf("o.buyer_kind = $%d AND o.buyer_id = $%d", len(args)-1, len(args)))
	}
	if filter.After != nil {
		args = append(args, filter.After.CreatedAt, filter.After.ID)
		conds = append(conds, fmt.Sprintf("(o.created_at, o.id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := orderSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY o.created_at DESC, o.id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("buyer_id", filter.BuyerID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var order model.Order
		if err := scanOrder(rows, &order); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetStatusForUpdate locks the order row and returns its status.
func (r *orderRepository) GetStatusForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (model.OrderStatus, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrOrderNotFound
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to lock order")
		return "", fmt.Errorf("failed to lock order: %w", err)
	}
	return model.OrderStatus(status), nil
}

// UpdateStatus sets the order's status within the provided transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// loadItems attaches line items, with their live product view, to orders in place.
func (r *orderRepository) loadItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []model.OrderItem{}
	}

	query := `
		SELECT oi.id, oi.order_id, oi.position, oi.product_id, oi.name, oi.unit_price,
			oi.quantity, oi.size, oi.images,
			p.id, p.name, p.price, p.image, p.sizes
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.position
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("orders", len(orders)).Msg("failed to query order items")
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item         model.OrderItem
			productID    *string
			productName  *string
			productPrice decimal.NullDecimal
			productImage model.ImageList
			productSizes []string
		)
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Position,
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.Size,
			&item.Images,
			&productID,
			&productName,
			&productPrice,
			&productImage,
			&productSizes,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		if productID != nil {
			item.Product = &model.ProductSummary{
				ID:    *productID,
				Price: productPrice.Decimal,
				Image: productImage.Normalized(),
				Sizes: productSizes,
			}
			if productName != nil {
				item.Product.Name = *productName
			}
		}

		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return fmt.Errorf("error iterating order items: %w", err)
	}

	return nil
}

func scanOrder(row pgx.Row, order *model.Order) error {
	var (
		buyerKind      string
		status         string
		deliveryCharge decimal.NullDecimal
		buyerFound     bool
		buyerName      *string
		buyerPhone     *string
		buyerAltPhone  *string
		buyerAddress   *string
		buyerEmail     *string
	)

	err := row.Scan(
		&order.ID,
		&order.BuyerID,
		&buyerKind,
		&order.Address.FullName,
		&order.Address.Phone,
		&order.Address.AlternatePhone,
		&order.Address.FullAddress,
		&order.Note,
		&order.Amount,
		&deliveryCharge,
		&order.PaymentMethod,
		&order.Paid,
		&status,
		&order.TrackingID,
		&order.IdempotencyToken,
		&order.CreatedAt,
		&order.UpdatedAt,
		&buyerFound,
		&buyerName,
		&buyerPhone,
		&buyerAltPhone,
		&buyerAddress,
		&buyerEmail,
	)
	if err != nil {
		return err
	}

	order.BuyerKind = model.BuyerKind(buyerKind)
	order.Status = model.OrderStatus(status)
	if deliveryCharge.Valid {
		charge := deliveryCharge.Decimal
		order.DeliveryCharge = &charge
	}

	if buyerFound {
		order.Buyer = &model.Buyer{
			ID:             order.BuyerID,
			Kind:           order.BuyerKind,
			FullName:       deref(buyerName),
			Phone:          deref(buyerPhone),
			AlternatePhone: deref(buyerAltPhone),
			FullAddress:    deref(buyerAddress),
			Email:          deref(buyerEmail),
		}
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
