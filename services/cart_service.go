package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/models"
	"github.com/vladpolisuk/sport-shop-client/storage"
)

// Notifier receives transient user-visible cart messages (the "added to
// cart" toast). Implementations must not block.
type Notifier interface {
	Notify(userID, message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}

// CartService maintains the authoritative cart for each user, synced to the
// storage port after every mutation. A corrupt or missing snapshot is
// treated as an empty cart; a failed write is logged and the in-memory
// result is still returned (persistence is best-effort).
type CartService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger

	// serializes read-modify-write cycles against the snapshot
	mu sync.Mutex
}

func NewCartService(store storage.Store, notifier Notifier, logger *zap.Logger) *CartService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CartService{store: store, notifier: notifier, logger: logger}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Get loads the user's cart.
func (s *CartService) Get(ctx context.Context, userID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

// Add merges quantity units of the product into the cart and persists it.
func (s *CartService) Add(ctx context.Context, userID string, product models.Product, quantity int) *models.Cart {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(ctx, userID)
	cart.Add(product, quantity)
	s.save(ctx, cart)

	s.notifier.Notify(userID, fmt.Sprintf("%q added to cart", product.Name))
	return cart
}

// SetQuantity updates a line's quantity, clamped to the allowed range. A
// quantity of zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(ctx, userID)
	if cart.SetQuantity(productID, quantity) {
		s.save(ctx, cart)
	}
	return cart
}

// Remove deletes a line and persists the cart.
func (s *CartService) Remove(ctx context.Context, userID string, productID int64) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(ctx, userID)
	if cart.Remove(productID) {
		s.save(ctx, cart)
	}
	return cart
}

// Clear empties the cart and persists it.
func (s *CartService) Clear(ctx context.Context, userID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := &models.Cart{UserID: userID, Items: []models.CartItem{}}
	s.save(ctx, cart)
	return cart
}

func (s *CartService) load(ctx context.Context, userID string) *models.Cart {
	empty := &models.Cart{UserID: userID, Items: []models.CartItem{}}

	data, ok, err := s.store.Get(ctx, cartKey(userID))
	if err != nil {
		s.logger.Warn("cart snapshot read failed", zap.String("user_id", userID), zap.Error(err))
		return empty
	}
	if !ok {
		return empty
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.logger.Warn("cart snapshot corrupt, starting empty", zap.String("user_id", userID), zap.Error(err))
		return empty
	}
	cart.UserID = userID
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) {
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		s.logger.Error("cart snapshot encode failed", zap.String("user_id", cart.UserID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, cartKey(cart.UserID), data); err != nil {
		s.logger.Warn("cart snapshot write failed", zap.String("user_id", cart.UserID), zap.Error(err))
	}
}
