// Package pricing turns requested line items into priced snapshots using live
// catalogue data.
package pricing

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductLookup fetches catalogue products by ID. Unknown IDs are absent from
// the result rather than reported as errors.
type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// Quote is the priced form of an order request.
type Quote struct {
	Items    []model.OrderItem
	Subtotal decimal.Decimal
}

// Resolver prices order items.
type Resolver interface {
	// Resolve looks up every requested product and returns line items in request
	// order. It fails as a whole if any single item cannot be priced.
	Resolve(ctx context.Context, items []model.OrderItemRequest) (*Quote, error)
}

type resolver struct {
	products ProductLookup
	logger   zerolog.Logger
}

// NewResolver creates a resolver backed by products.
func NewResolver(products ProductLookup, logger zerolog.Logger) Resolver {
	return &resolver{
		products: products,
		logger:   logger.With().Str("component", "pricing").Logger(),
	}
}

// Resolve fetches every distinct product in one batch, then prices the items
// in request order. The first item that cannot be priced fails the whole quote.
func (r *resolver) Resolve(ctx context.Context, items []model.OrderItemRequest) (*Quote, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, req := range items {
		if req.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
		if _, ok := seen[req.ProductID]; ok {
			continue
		}
		seen[req.ProductID] = struct{}{}
		ids = append(ids, req.ProductID)
	}

	products, err := r.products.GetByIDs(ctx, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("product lookup failed")
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]model.OrderItem, len(items))
	subtotal := decimal.Zero
	for i, req := range items {
		product, ok := byID[req.ProductID]
		if !ok {
			r.logger.Warn().Str("product_id", req.ProductID).Msg("product not found")
			return nil, model.NewDomainError(model.ErrCodeProductNotFound,
				fmt.Sprintf("Product %s not found", req.ProductID))
		}

		line, err := r.price(product, req)
		if err != nil {
			return nil, err
		}
		line.Position = i
		lines[i] = line
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	r.logger.Debug().
		Int("item_count", len(lines)).
		Str("subtotal", subtotal.StringFixed(2)).
		Msg("items priced")

	return &Quote{Items: lines, Subtotal: subtotal}, nil
}

func (r *resolver) price(product model.Product, req model.OrderItemRequest) (model.OrderItem, error) {
	images := product.Image.Normalized()
	if len(images) == 0 {
		r.logger.Warn().Str("product_id", req.ProductID).Msg("product has no image")
		return model.OrderItem{}, model.NewDomainError(model.ErrCodeProductUnavailable,
			fmt.Sprintf("Product %s has no image", req.ProductID))
	}

	return model.OrderItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Images:    images,
	}, nil
}
