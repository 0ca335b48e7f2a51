package services

// ServiceError is a typed error with an HTTP status code, surfaced to the
// user as-is by the controllers.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// ErrEmptyCart signals a checkout entered or submitted with nothing in the
// cart. Controllers answer with a redirect back to the cart view rather than
// an error page.
var ErrEmptyCart = &ServiceError{StatusCode: 409, Message: "cart is empty"}

// ErrCheckoutNotStarted signals a checkout operation before Begin.
var ErrCheckoutNotStarted = &ServiceError{StatusCode: 409, Message: "checkout has not been started"}

// Validation gates checked before submission. Each blocks the submit without
// any backend call.
var (
	ErrNoDeliveryMethod = &ServiceError{StatusCode: 400, Message: "please select a delivery method"}
	ErrNoPaymentMethod  = &ServiceError{StatusCode: 400, Message: "please select a payment method"}
	ErrNoAddress        = &ServiceError{StatusCode: 400, Message: "please enter a delivery address"}
)
