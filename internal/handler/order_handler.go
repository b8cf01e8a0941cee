package handler

import (
	"net/http"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/pagination"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IdempotencyKeyHeader may carry the idempotency token instead of the body.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	placement service.OrderPlacementService
	query     service.OrderQueryService
	status    service.OrderStatusService
	logger    zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(
	placement service.OrderPlacementService,
	query service.OrderQueryService,
	status service.OrderStatusService,
	logger zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		placement: placement,
		query:     query,
		status:    status,
		logger:    logger.With().Str("handler", "order").Logger(),
	}
}

type trackResponse struct {
	Order *model.Order `json:"order"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

// PlaceGuest handles POST /api/orders/guest requests.
func (h *OrderHandler) PlaceGuest(w http.ResponseWriter, r *http.Request) {
	var req model.GuestOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if req.IdempotencyToken == "" {
		req.IdempotencyToken = strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	}

	result, err := h.placement.PlaceGuestOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Place handles POST /api/orders requests from authenticated users.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Authentication required", h.logger)
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if req.IdempotencyToken == "" {
		req.IdempotencyToken = strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	}

	result, err := h.placement.PlaceOrder(r.Context(), claims.UserID, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Track handles GET /api/orders/track/{trackingId} requests.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	trackingID, err := uuid.Parse(chi.URLParam(r, "trackingId"))
	if err != nil {
		// A malformed tracking ID cannot match any order.
		writeServiceError(w, r, model.ErrOrderNotFound, h.logger)
		return
	}

	order, err := h.query.TrackByPublicID(r.Context(), trackingID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, trackResponse{Order: order})
}

// ListMine handles GET /api/orders/mine requests.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Authentication required", h.logger)
		return
	}

	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	result, err := h.query.ListForUser(r.Context(), claims.UserID, page)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListAll handles GET /api/admin/orders requests.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	result, err := h.query.ListAll(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UpdateStatus handles PATCH /api/admin/orders/{orderId}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, model.ErrOrderNotFound, h.logger)
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.status.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}
