package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"storefront/domain"
	"storefront/store"
)

// Handler serves HTTP requests against a single storefront Store.
type Handler struct {
	store *store.Store
}

// NewHandler returns a Handler serving s.
func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProducts lists the catalog. Optional query parameters: min_price,
// max_price, sort_by (name|price) and order (asc|desc).
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListFilter{
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
	}
	var err error
	if filter.MinPrice, err = parsePrice(q.Get("min_price")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "min_price: "+err.Error())
		return
	}
	if filter.MaxPrice, err = parsePrice(q.Get("max_price")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "max_price: "+err.Error())
		return
	}

	products, err := h.store.ListProducts(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by id, 404 when unknown.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetCart returns the cart items with their undiscounted totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.GetCart(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeCart(w, r, items)
}

// AddItem adds one unit unless the body names a quantity.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	items, err := h.store.AddToCart(r.Context(), req.ProductID, qty)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeCart(w, r, items)
}

// UpdateItem sets the quantity of a cart line; zero or less removes it.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "quantity is required")
		return
	}

	items, err := h.store.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeCart(w, r, items)
}

// RemoveItem drops a product from the cart. Removing an absent product is not an error.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.RemoveFromCart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeCart(w, r, items)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ClearCart(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeCart(w, r, items)
}

// CartTotals prices the cart, applying the code query parameter if it is valid.
// The code is not redeemed.
func (h *Handler) CartTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.CartTotals(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// ValidateDiscount reports whether a code exists and is unused.
func (h *Handler) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	var req ValidateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	ok, err := h.store.ValidateDiscountCode(r.Context(), req.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ValidateDiscountResponse{Code: req.Code, Valid: ok})
}

// Checkout places an order from the cart and returns it with 201. An empty
// body means no discount code.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.store.Checkout(r.Context(), req.DiscountCode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "order placed",
		"order_id", order.ID,
		"items", order.ItemCount(),
		"final_amount", order.FinalAmount.StringFixed(2),
		"discount_code", order.DiscountCode,
	)
	writeJSON(w, http.StatusCreated, order)
}

// ListOrders returns every order in creation order.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.GetAllOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder returns one order by id, 404 when unknown.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AdminStats returns purchase totals and every issued discount code.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.AdminStats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GenerateDiscountCode issues a new discount code on demand.
func (h *Handler) GenerateDiscountCode(w http.ResponseWriter, r *http.Request) {
	dc, err := h.store.AdminGenerateDiscountCode(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "discount code generated", "code", dc.Code)
	writeJSON(w, http.StatusCreated, dc)
}

// writeCart prices the items returned by the cart operation itself, so the
// totals always describe the same cart as the items.
func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, items []domain.CartLineItem) {
	writeJSON(w, http.StatusOK, CartResponse{
		Items:  items,
		Totals: domain.ComputeTotals(items, "", nil),
	})
}

// fail maps domain errors onto status codes; anything unrecognised is a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case domain.IsEmptyCartError(err):
		writeError(w, http.StatusConflict, "empty_cart", err.Error())
	case domain.IsInvalidDiscountError(err):
		writeError(w, http.StatusUnprocessableEntity, "invalid_discount", err.Error())
	case domain.IsInvalidQuantityError(err):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "canceled", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// parsePrice returns nil for an absent parameter.
func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
