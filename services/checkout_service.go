package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/models"
)

// CheckoutState is the position of a user's checkout in its lifecycle.
type CheckoutState string

const (
	StateIdle             CheckoutState = "IDLE"
	StateAwaitingDelivery CheckoutState = "AWAITING_DELIVERY"
	StateAwaitingPayment  CheckoutState = "AWAITING_PAYMENT"
	StateReadyToSubmit    CheckoutState = "READY_TO_SUBMIT"
	StateSubmitting       CheckoutState = "SUBMITTING"
	StateConfirmed        CheckoutState = "CONFIRMED"
)

// Geocoding is out of scope; a fixed distance stands in for the real
// method/address distance when asking the backend for estimates.
const defaultDeliveryDistanceKm = 10

// CheckoutBackend is the slice of the backend API the checkout flow needs.
type CheckoutBackend interface {
	FetchDeliveryMethods(ctx context.Context) ([]models.DeliveryMethod, error)
	FetchPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	DeliveryCost(ctx context.Context, methodID int64, distance, weight float64) (float64, error)
	DeliveryTime(ctx context.Context, methodID int64, distance float64) (int, error)
	CheckCustomerByEmail(ctx context.Context, email string) (models.Customer, error)
	CreateCustomer(ctx context.Context, input models.CustomerInput) (models.Customer, error)
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)
}

// CartProvider is the slice of the cart service the checkout flow needs.
type CartProvider interface {
	Get(ctx context.Context, userID string) *models.Cart
	Clear(ctx context.Context, userID string) *models.Cart
}

// CheckoutContact is the customer data entered on the checkout form.
type CheckoutContact struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"required"`
}

// checkoutFlow is one user's in-progress checkout. Selections survive
// repeated option reloads; everything is reset after a confirmed order.
type checkoutFlow struct {
	mu sync.Mutex

	id              string
	state           CheckoutState
	deliveryMethods []models.DeliveryMethod
	paymentMethods  []models.PaymentMethod

	selectedDelivery *models.DeliveryMethod
	selectedPayment  *models.PaymentMethod
	address          string
	quote            *models.DeliveryQuote

	// quoteSeq orders estimate requests so a slow, stale response can
	// never overwrite a newer quote.
	quoteSeq uint64
}

// recomputeState derives the pre-submission state from the selections.
// Callers hold f.mu.
func (f *checkoutFlow) recomputeState() {
	switch {
	case f.selectedDelivery != nil && f.selectedPayment != nil:
		f.state = StateReadyToSubmit
	case f.selectedDelivery != nil:
		f.state = StateAwaitingPayment
	default:
		f.state = StateAwaitingDelivery
	}
}

// CheckoutView is the serializable snapshot of a flow returned to the UI.
type CheckoutView struct {
	ID              string                  `json:"id"`
	State           CheckoutState           `json:"state"`
	DeliveryMethods []models.DeliveryMethod `json:"deliveryMethods,omitempty"`
	PaymentMethods  []models.PaymentMethod  `json:"paymentMethods,omitempty"`
	DeliveryMethod  *models.DeliveryMethod  `json:"deliveryMethod,omitempty"`
	PaymentMethod   *models.PaymentMethod   `json:"paymentMethod,omitempty"`
	Address         string                  `json:"address,omitempty"`
	Quote           *models.DeliveryQuote   `json:"quote,omitempty"`
	Subtotal        float64                 `json:"subtotal"`
	Total           float64                 `json:"total"`
}

// CheckoutOptions carries the independently fetched method listings. One
// side failing does not block the other; each error is surfaced inline.
type CheckoutOptions struct {
	DeliveryMethods []models.DeliveryMethod
	PaymentMethods  []models.PaymentMethod
	DeliveryErr     error
	PaymentErr      error
}

// CheckoutService orchestrates the multi-step conversion of a cart into a
// submitted order.
type CheckoutService struct {
	backend CheckoutBackend
	carts   CartProvider
	logger  *zap.Logger

	// isNotFound classifies backend errors during customer lookup, where
	// a 404 means "create one" rather than failure.
	isNotFound func(error) bool

	mu    sync.Mutex
	flows map[string]*checkoutFlow
}

func NewCheckoutService(backend CheckoutBackend, isNotFound func(error) bool, carts CartProvider, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		backend:    backend,
		isNotFound: isNotFound,
		carts:      carts,
		logger:     logger,
		flows:      make(map[string]*checkoutFlow),
	}
}

func (s *CheckoutService) flow(userID string) (*checkoutFlow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	return f, ok
}

// Begin enters checkout. The cart must be non-empty; an empty cart yields
// ErrEmptyCart, which the controller turns into a redirect back to the cart
// view. Selections from an interrupted checkout are kept.
func (s *CheckoutService) Begin(ctx context.Context, userID string) (CheckoutView, error) {
	cart := s.carts.Get(ctx, userID)
	if len(cart.Items) == 0 {
		return CheckoutView{}, ErrEmptyCart
	}

	s.mu.Lock()
	f, ok := s.flows[userID]
	if !ok {
		f = &checkoutFlow{id: uuid.NewString(), state: StateIdle}
		s.flows[userID] = f
	}
	s.mu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.recomputeState()
	return s.viewLocked(f, cart), nil
}

// LoadOptions fetches delivery and payment methods concurrently. Inactive
// methods are filtered out. Each listing is independently retryable.
func (s *CheckoutService) LoadOptions(ctx context.Context, userID string) (CheckoutOptions, error) {
	f, ok := s.flow(userID)
	if !ok {
		return CheckoutOptions{}, ErrCheckoutNotStarted
	}

	type deliveryResult struct {
		methods []models.DeliveryMethod
		err     error
	}
	type paymentResult struct {
		methods []models.PaymentMethod
		err     error
	}

	deliveryCh := make(chan deliveryResult, 1)
	paymentCh := make(chan paymentResult, 1)

	go func() {
		methods, err := s.backend.FetchDeliveryMethods(ctx)
		deliveryCh <- deliveryResult{methods: activeDelivery(methods), err: err}
	}()
	go func() {
		methods, err := s.backend.FetchPaymentMethods(ctx)
		paymentCh <- paymentResult{methods: activePayment(methods), err: err}
	}()

	delivery := <-deliveryCh
	payment := <-paymentCh

	f.mu.Lock()
	if delivery.err == nil {
		f.deliveryMethods = delivery.methods
	}
	if payment.err == nil {
		f.paymentMethods = payment.methods
	}
	f.mu.Unlock()

	return CheckoutOptions{
		DeliveryMethods: delivery.methods,
		PaymentMethods:  payment.methods,
		DeliveryErr:     delivery.err,
		PaymentErr:      payment.err,
	}, nil
}

// SelectDelivery picks a delivery method and address and refreshes the
// cost/time estimate. May be called any number of times as the user edits
// the address or switches method; the newest request wins, stale responses
// are dropped.
func (s *CheckoutService) SelectDelivery(ctx context.Context, userID string, methodID int64, address string) (CheckoutView, error) {
	f, ok := s.flow(userID)
	if !ok {
		return CheckoutView{}, ErrCheckoutNotStarted
	}

	f.mu.Lock()
	method := findDeliveryMethod(f.deliveryMethods, methodID)
	if method == nil {
		f.mu.Unlock()
		return CheckoutView{}, &ServiceError{StatusCode: 400, Message: "unknown delivery method"}
	}
	f.selectedDelivery = method
	f.address = address
	f.recomputeState()
	seq := atomic.AddUint64(&f.quoteSeq, 1)
	f.mu.Unlock()

	cart := s.carts.Get(ctx, userID)

	var quote models.DeliveryQuote
	if method.IsPickup() {
		quote = models.DeliveryQuote{Cost: 0, EstimatedDays: 0}
	} else {
		cost, err := s.backend.DeliveryCost(ctx, method.ID, defaultDeliveryDistanceKm, cart.Weight())
		if err != nil {
			return CheckoutView{}, err
		}
		days, err := s.backend.DeliveryTime(ctx, method.ID, defaultDeliveryDistanceKm)
		if err != nil {
			return CheckoutView{}, err
		}
		quote = models.DeliveryQuote{Cost: cost, EstimatedDays: days}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// A newer estimate request was issued while this one was in flight;
	// drop this result.
	if atomic.LoadUint64(&f.quoteSeq) != seq {
		return s.viewLocked(f, cart), nil
	}
	f.quote = &quote
	return s.viewLocked(f, cart), nil
}

// SelectPayment picks a payment method.
func (s *CheckoutService) SelectPayment(ctx context.Context, userID string, methodID int64) (CheckoutView, error) {
	f, ok := s.flow(userID)
	if !ok {
		return CheckoutView{}, ErrCheckoutNotStarted
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	method := findPaymentMethod(f.paymentMethods, methodID)
	if method == nil {
		return CheckoutView{}, &ServiceError{StatusCode: 400, Message: "unknown payment method"}
	}
	f.selectedPayment = method
	f.recomputeState()
	return s.viewLocked(f, s.carts.Get(ctx, userID)), nil
}

// View returns the current flow snapshot.
func (s *CheckoutService) View(ctx context.Context, userID string) (CheckoutView, error) {
	f, ok := s.flow(userID)
	if !ok {
		return CheckoutView{}, ErrCheckoutNotStarted
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return s.viewLocked(f, s.carts.Get(ctx, userID)), nil
}

// Submit validates the selections, resolves the customer by email (creating
// one only when the lookup reports not-found), submits the order draft and,
// on success, clears the cart and resets the selections. On any failure the
// flow stays in READY_TO_SUBMIT so the user can retry without re-entering
// data.
func (s *CheckoutService) Submit(ctx context.Context, userID string, contact CheckoutContact) (models.OrderConfirmation, error) {
	f, ok := s.flow(userID)
	if !ok {
		return models.OrderConfirmation{}, ErrCheckoutNotStarted
	}

	cart := s.carts.Get(ctx, userID)
	if len(cart.Items) == 0 {
		return models.OrderConfirmation{}, ErrEmptyCart
	}

	// Validation gates: each blocks the submission before any backend
	// call is made.
	f.mu.Lock()
	delivery := f.selectedDelivery
	payment := f.selectedPayment
	address := f.address
	quote := f.quote
	if delivery == nil {
		f.mu.Unlock()
		return models.OrderConfirmation{}, ErrNoDeliveryMethod
	}
	if payment == nil {
		f.mu.Unlock()
		return models.OrderConfirmation{}, ErrNoPaymentMethod
	}
	if !delivery.IsPickup() && address == "" {
		f.mu.Unlock()
		return models.OrderConfirmation{}, ErrNoAddress
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	confirmation, err := s.submit(ctx, userID, cart, contact, *delivery, *payment, address, quote)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateReadyToSubmit
		return models.OrderConfirmation{}, err
	}

	f.state = StateConfirmed
	f.selectedDelivery = nil
	f.selectedPayment = nil
	f.address = ""
	f.quote = nil
	return confirmation, nil
}

func (s *CheckoutService) submit(
	ctx context.Context,
	userID string,
	cart *models.Cart,
	contact CheckoutContact,
	delivery models.DeliveryMethod,
	payment models.PaymentMethod,
	address string,
	quote *models.DeliveryQuote,
) (models.OrderConfirmation, error) {
	customer, err := s.resolveCustomer(ctx, contact)
	if err != nil {
		return models.OrderConfirmation{}, err
	}

	draft := models.CreateOrderRequest{
		CustomerID:       customer.ID,
		Items:            draftItems(cart),
		DeliveryMethodID: delivery.ID,
		DeliveryAddress:  address,
		PaymentMethodID:  payment.ID,
	}

	order, err := s.backend.CreateOrder(ctx, draft)
	if err != nil {
		s.logger.Error("order submission failed",
			zap.String("user_id", userID),
			zap.Int64("customer_id", customer.ID),
			zap.Error(err),
		)
		return models.OrderConfirmation{}, err
	}

	s.logger.Info("order created",
		zap.String("user_id", userID),
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customer.ID),
	)

	confirmation := buildConfirmation(order, customer, delivery, payment, address, quote, cart)
	s.carts.Clear(ctx, userID)
	return confirmation, nil
}

// resolveCustomer looks the customer up by email and reuses the existing
// record. Only a not-found lookup falls through to creation; any other
// failure (forbidden, server error) aborts the submission.
func (s *CheckoutService) resolveCustomer(ctx context.Context, contact CheckoutContact) (models.Customer, error) {
	customer, err := s.backend.CheckCustomerByEmail(ctx, contact.Email)
	if err == nil {
		return customer, nil
	}
	if !s.isNotFound(err) {
		return models.Customer{}, err
	}

	created, err := s.backend.CreateCustomer(ctx, models.CustomerInput{
		Name:  contact.Name,
		Phone: contact.Phone,
		Email: contact.Email,
	})
	if err != nil {
		return models.Customer{}, err
	}
	s.logger.Info("customer created", zap.Int64("customer_id", created.ID))
	return created, nil
}

// viewLocked builds a snapshot. Callers hold f.mu.
func (s *CheckoutService) viewLocked(f *checkoutFlow, cart *models.Cart) CheckoutView {
	subtotal := cart.Total()
	total := subtotal
	if f.quote != nil {
		total += f.quote.Cost
	}
	return CheckoutView{
		ID:              f.id,
		State:           f.state,
		DeliveryMethods: f.deliveryMethods,
		PaymentMethods:  f.paymentMethods,
		DeliveryMethod:  f.selectedDelivery,
		PaymentMethod:   f.selectedPayment,
		Address:         f.address,
		Quote:           f.quote,
		Subtotal:        subtotal,
		Total:           total,
	}
}

// buildConfirmation merges the server-returned order with the customer,
// delivery and payment details known locally. Item names and prices fall
// back to the local cart when the server omits them; the displayed total can
// therefore diverge from the authoritative charge if the backend applies
// its own pricing rules.
func buildConfirmation(
	order models.Order,
	customer models.Customer,
	delivery models.DeliveryMethod,
	payment models.PaymentMethod,
	address string,
	quote *models.DeliveryQuote,
	cart *models.Cart,
) models.OrderConfirmation {
	var cost float64
	var days int
	if quote != nil {
		cost = quote.Cost
		days = quote.EstimatedDays
	}

	items := order.OrderItems
	if len(items) == 0 {
		items = make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			items = append(items, models.OrderItem{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Price:       line.Price,
				Quantity:    line.Quantity,
				TotalPrice:  line.Price * float64(line.Quantity),
			})
		}
	}

	itemsTotal := order.TotalPrice
	if itemsTotal == 0 {
		itemsTotal = cart.Total()
	}

	return models.OrderConfirmation{
		Order:    order,
		Customer: customer,
		Delivery: models.DeliveryDetails{
			Method:        delivery,
			Address:       address,
			Cost:          cost,
			EstimatedDays: days,
		},
		Payment:     models.PaymentDetails{Method: payment},
		Items:       items,
		TotalAmount: itemsTotal + cost,
	}
}

func draftItems(cart *models.Cart) []models.OrderDraftItem {
	items := make([]models.OrderDraftItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderDraftItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func findDeliveryMethod(methods []models.DeliveryMethod, id int64) *models.DeliveryMethod {
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i]
		}
	}
	return nil
}

func findPaymentMethod(methods []models.PaymentMethod, id int64) *models.PaymentMethod {
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i]
		}
	}
	return nil
}

func activeDelivery(methods []models.DeliveryMethod) []models.DeliveryMethod {
	out := make([]models.DeliveryMethod, 0, len(methods))
	for _, m := range methods {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out
}

func activePayment(methods []models.PaymentMethod) []models.PaymentMethod {
	out := make([]models.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out
}
