package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuyerKind discriminates which identity collection an order's buyer resolves against.
type BuyerKind string

const (
	BuyerKindUser  BuyerKind = "User"
	BuyerKindGuest BuyerKind = "GuestUser"
)

// PaymentMethodCOD is the only payment method orders are recorded with.
const PaymentMethodCOD = "COD"

// Address is the delivery address captured on an order.
type Address struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternatePhone,omitempty"`
	FullAddress    string `json:"fullAddress"`
}

// Order represents a customer order.
type Order struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	BuyerID          string           `json:"buyerId" db:"buyer_id"`
	BuyerKind        BuyerKind        `json:"buyerKind" db:"buyer_kind"`
	Buyer            *Buyer           `json:"buyer,omitempty"`
	Items            []OrderItem      `json:"items"`
	Address          Address          `json:"address"`
	Note             string           `json:"note" db:"note"`
	Amount           decimal.Decimal  `json:"amount" db:"amount"`
	DeliveryCharge   *decimal.Decimal `json:"deliveryCharge,omitempty" db:"delivery_charge"`
	PaymentMethod    string           `json:"paymentMethod" db:"payment_method"`
	Paid             bool             `json:"paid" db:"paid"`
	Status           OrderStatus      `json:"status" db:"status"`
	TrackingID       uuid.UUID        `json:"trackingId" db:"tracking_id"`
	IdempotencyToken string           `json:"idempotencyToken" db:"idempotency_token"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Name, price and images are a
// snapshot taken when the order was placed.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	Position  int             `json:"-" db:"position"`
	ProductID string          `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"price" db:"unit_price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Size      string          `json:"size,omitempty" db:"size"`
	Images    []string        `json:"images" db:"images"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// ProductSummary is the live catalogue view of a line item's product.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image []string        `json:"image"`
	Sizes []string        `json:"sizes,omitempty"`
}

// Buyer is the identity an order was placed by, joined from users or guest_users.
type Buyer struct {
	ID             string    `json:"id"`
	Kind           BuyerKind `json:"kind"`
	FullName       string    `json:"fullName"`
	Phone          string    `json:"phone,omitempty"`
	AlternatePhone string    `json:"alternatePhone,omitempty"`
	FullAddress    string    `json:"fullAddress,omitempty"`
	Email          string    `json:"email,omitempty"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

// GuestOrderRequest is the payload for placing an order without an account.
type GuestOrderRequest struct {
	FullName         string             `json:"fullName"`
	Phone            string             `json:"phone"`
	AlternatePhone   string             `json:"alternatePhone,omitempty"`
	FullAddress      string             `json:"fullAddress"`
	Items            []OrderItemRequest `json:"items"`
	DeliveryCharge   *decimal.Decimal   `json:"deliveryCharge,omitempty"`
	Note             string             `json:"note,omitempty"`
	IdempotencyToken string             `json:"idempotencyToken"`
}

// OrderRequest is the payload for placing an order as an authenticated user.
type OrderRequest struct {
	Items            []OrderItemRequest `json:"items"`
	Address          Address            `json:"address"`
	Note             string             `json:"note,omitempty"`
	IdempotencyToken string             `json:"idempotencyToken,omitempty"`
}

// PlacementResult is returned once an order has been committed.
type PlacementResult struct {
	TrackingID uuid.UUID `json:"trackingId"`
	Order      *Order    `json:"order"`
}

// OrderFilter narrows an order listing. An empty BuyerID lists every order.
type OrderFilter struct {
	BuyerKind BuyerKind
	BuyerID   string
	Limit     int
	After     *OrderCursor
}

// OrderCursor is the keyset position of the last order on a page.
type OrderCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// PageRequest carries the client's paging parameters.
type PageRequest struct {
	PageSize  int
	PageToken string
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Orders        []Order `json:"orders"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}
