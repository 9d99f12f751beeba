package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"storefront/domain"
	"storefront/util"
)

// DefaultLoyaltyInterval is the number of orders between automatic discount codes.
const DefaultLoyaltyInterval = 3

// Store is the storefront state for a single shopper: the catalog it resolves
// products against, the cart, issued discount codes, and the order history.
// Every method holds one mutex for its whole duration, so a checkout's
// validate-then-redeem sequence cannot interleave with any other operation.
type Store struct {
	mu sync.Mutex

	catalog   domain.Catalog
	cart      *CartLedger
	discounts *DiscountRegistry
	orders    *OrderLedger

	loyaltyInterval int
	now             func() time.Time
	newID           func() string
}

// Option configures a Store.
type Option func(*config)

type config struct {
	loyaltyInterval    int
	discountPercentage decimal.Decimal
	now                func() time.Time
	newID              func() string
	newToken           func() string
}

// WithLoyaltyInterval sets N for the every-Nth-order discount policy.
// Values below 1 disable automatic generation.
func WithLoyaltyInterval(n int) Option {
	return func(c *config) { c.loyaltyInterval = n }
}

// WithDiscountPercentage sets the percentage carried by generated codes.
func WithDiscountPercentage(p decimal.Decimal) Option {
	return func(c *config) { c.discountPercentage = p }
}

// WithClock overrides the order timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithIDGenerator overrides the order id source.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) { c.newID = newID }
}

// WithTokenGenerator overrides the discount code token source.
func WithTokenGenerator(newToken func() string) Option {
	return func(c *config) { c.newToken = newToken }
}

// New returns a Store over catalog with an empty cart, no orders and no codes.
func New(catalog domain.Catalog, opts ...Option) (*Store, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	cfg := config{
		loyaltyInterval:    DefaultLoyaltyInterval,
		discountPercentage: decimal.NewFromInt(DefaultDiscountPercentage),
		now:                time.Now,
		newID:              util.GenerateUUID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.discountPercentage.IsPositive() || cfg.discountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("discount percentage must be in (0,100], got %s", cfg.discountPercentage)
	}

	return &Store{
		catalog:         catalog,
		cart:            NewCartLedger(),
		discounts:       NewDiscountRegistry(cfg.discountPercentage, cfg.newToken),
		orders:          NewOrderLedger(),
		loyaltyInterval: cfg.loyaltyInterval,
		now:             cfg.now,
		newID:           cfg.newID,
	}, nil
}

// ListProducts returns the whole catalog.
func (s *Store) ListProducts(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.List(ctx, filter)
}

// GetProduct looks a product up in the catalog.
func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	return s.lookupProduct(ctx, id)
}

func (s *Store) lookupProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.catalog.Get(ctx, id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("catalog lookup %s: %w", id, err)
	}
	return p, nil
}

// GetCart returns the current line items.
func (s *Store) GetCart(ctx context.Context) ([]domain.CartLineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items(), nil
}

// AddToCart resolves productID in the catalog and adds quantity units of it.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int) ([]domain.CartLineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.cart.Add(p, quantity)
}

// UpdateQuantity sets the quantity of a line already in the cart; zero or
// less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) ([]domain.CartLineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SetQuantity(productID, quantity)
}

// RemoveFromCart drops productID from the cart if present.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) ([]domain.CartLineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(productID), nil
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) ([]domain.CartLineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clear(), nil
}

// CartTotals prices the current cart, applying code if it is valid. It never
// redeems the code.
func (s *Store) CartTotals(ctx context.Context, code string) (domain.Totals, error) {
	if err := ctx.Err(); err != nil {
		return domain.Totals{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.cart.Items(), code, s.discounts), nil
}

// ValidateDiscountCode reports whether code exists and is unused.
func (s *Store) ValidateDiscountCode(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discounts.Validate(code), nil
}

// Checkout turns the cart into an order. An empty code means no discount.
//
// The cart and code are validated before anything changes, so a failed
// checkout leaves cart, codes and orders exactly as they were. On success the
// code (if any) is redeemed, the order appended, the cart cleared, and when
// the new order count is a multiple of the loyalty interval one new discount
// code is issued.
func (s *Store) Checkout(ctx context.Context, code string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Len() == 0 {
		return domain.Order{}, domain.NewEmptyCartError()
	}
	if code != "" && !s.discounts.Validate(code) {
		return domain.Order{}, domain.NewInvalidDiscountError(code)
	}

	items := s.cart.Items()
	totals := domain.ComputeTotals(items, code, s.discounts)
	order := domain.Order{
		ID:             s.newID(),
		Items:          items,
		Subtotal:       totals.Subtotal,
		DiscountCode:   code,
		DiscountAmount: totals.DiscountAmount,
		FinalAmount:    totals.Total,
		CreatedAt:      s.now(),
	}

	if code != "" {
		// validated above under the same lock
		if err := s.discounts.Redeem(code); err != nil {
			return domain.Order{}, err
		}
	}

	count := s.orders.Append(order)
	if s.loyaltyInterval > 0 && count%s.loyaltyInterval == 0 {
		s.discounts.Generate()
	}
	s.cart.Clear()

	return cloneOrder(order), nil
}

// GetAllOrders returns every order in creation order.
func (s *Store) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.List(), nil
}

// GetOrder returns a single order by id.
func (s *Store) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.FindByID(id)
}

// AdminStats rolls up the order history and lists every discount code.
func (s *Store) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminStats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.AdminStats{
		TotalPurchaseAmount: decimal.Zero,
		TotalDiscountAmount: decimal.Zero,
		DiscountCodes:       s.discounts.List(),
	}
	for _, o := range s.orders.orders {
		stats.TotalItemsPurchased += o.ItemCount()
		stats.TotalPurchaseAmount = stats.TotalPurchaseAmount.Add(o.Subtotal)
		stats.TotalDiscountAmount = stats.TotalDiscountAmount.Add(o.DiscountAmount)
	}
	return stats, nil
}

// AdminGenerateDiscountCode issues a code immediately, outside the loyalty policy.
func (s *Store) AdminGenerateDiscountCode(ctx context.Context) (domain.DiscountCode, error) {
	if err := ctx.Err(); err != nil {
		return domain.DiscountCode{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discounts.Generate(), nil
}
