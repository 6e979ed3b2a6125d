package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutFlow sequences a checkout session through
// ADDRESS_ENTRY → SHIPPING_SELECTION → PAYMENT_PENDING → PAYMENT_CONFIRMING →
// ORDER_CONFIRMED. Each operation guards its source state, and a per-session
// in-flight flag rejects concurrent submissions for the same user.
type CheckoutFlow interface {
	Start(ctx context.Context, userID string) (*models.CheckoutSession, error)
	Current(ctx context.Context, userID string) (*models.CheckoutSession, error)
	SubmitAddress(ctx context.Context, userID string, addr models.ShippingAddress) (*models.CheckoutSession, error)
	RetryOptions(ctx context.Context, userID string) (*models.CheckoutSession, error)
	EditAddress(ctx context.Context, userID string) (*models.CheckoutSession, error)
	SelectShipping(ctx context.Context, userID string, optionID uuid.UUID) (*models.CheckoutSession, error)
	BeginConfirmation(ctx context.Context, userID, intentID string) (*models.Order, error)
	RecordDecline(ctx context.Context, userID, reason string) (*models.CheckoutSession, error)
	Abandon(ctx context.Context, userID string) error
	IntentForUser(userID string) (*IntentRef, bool)
}

type checkoutFlow struct {
	store    *SessionStore
	cart     CartService
	shipping ShippingService
	payments PaymentService
	orders   OrderService
	currency string
	logger   *zap.Logger
}

func NewCheckoutFlow(
	store *SessionStore,
	cart CartService,
	shipping ShippingService,
	payments PaymentService,
	orders OrderService,
	currency string,
	logger *zap.Logger,
) CheckoutFlow {
	return &checkoutFlow{
		store:    store,
		cart:     cart,
		shipping: shipping,
		payments: payments,
		orders:   orders,
		currency: currency,
		logger:   logger,
	}
}

func (f *checkoutFlow) acquire(userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}
	if !f.store.BeginOp(userID) {
		return apperrors.ErrRequestInFlight
	}
	return nil
}

// Start opens a checkout session for the user's current cart. An existing
// unfinished session is resumed rather than replaced, so a reloaded page does
// not lose an intent that may already be charged.
func (f *checkoutFlow) Start(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	if existing, ok := f.store.Get(userID); ok {
		return existing, nil
	}

	cart, err := f.cart.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	session := &models.CheckoutSession{
		UserID:    userID,
		Step:      models.StepAddressEntry,
		Options:   []models.ShippingOption{},
		CreatedAt: time.Now(),
	}
	f.store.Put(session)
	return session, nil
}

func (f *checkoutFlow) Current(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	return session, nil
}

// SubmitAddress stores the address and resolves shipping options for its
// city. On a resolver failure the address is retained and the session stays
// at address entry so the fetch can be retried without re-entry.
func (f *checkoutFlow) SubmitAddress(ctx context.Context, userID string, addr models.ShippingAddress) (*models.CheckoutSession, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	if session.Step != models.StepAddressEntry {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "Address can only be submitted at address entry")
	}
	if strings.TrimSpace(addr.City) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "City is required")
	}

	session.Address = &addr
	return f.resolveOptions(ctx, session)
}

// RetryOptions re-runs shipping resolution with the already-entered address.
func (f *checkoutFlow) RetryOptions(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	if session.Step != models.StepAddressEntry || session.Address == nil {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "No address to retry with")
	}
	return f.resolveOptions(ctx, session)
}

func (f *checkoutFlow) resolveOptions(ctx context.Context, session *models.CheckoutSession) (*models.CheckoutSession, error) {
	options, err := f.shipping.OptionsByCity(ctx, session.Address.City)
	if err != nil {
		session.LastError = apperrors.AsError(err).Message
		f.store.Put(session)
		return nil, err
	}

	session.Options = options
	session.SelectedOption = nil
	session.LastError = ""
	session.Step = models.StepShippingSelection
	f.store.Put(session)
	return session, nil
}

// EditAddress walks back from shipping selection, discarding fetched options.
func (f *checkoutFlow) EditAddress(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	if session.Step != models.StepShippingSelection {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "Address can only be edited before payment")
	}

	session.Step = models.StepAddressEntry
	session.Options = []models.ShippingOption{}
	session.SelectedOption = nil
	f.store.Put(session)
	return session, nil
}

// SelectShipping picks an option from the fetched list, snapshots the cart
// and opens the payment intent. The snapshot is taken here and deliberately
// not re-validated against the live cart before charging. A session that
// already holds an intent reuses it; repeated declines never create a second
// intent for one checkout attempt.
func (f *checkoutFlow) SelectShipping(ctx context.Context, userID string, optionID uuid.UUID) (*models.CheckoutSession, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	if session.Step != models.StepShippingSelection {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "Shipping can only be selected after options are fetched")
	}

	var selected *models.ShippingOption
	for i := range session.Options {
		if session.Options[i].ID == optionID {
			selected = &session.Options[i]
			break
		}
	}
	if selected == nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Shipping option is not available for this address")
	}

	cart, err := f.cart.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	session.SelectedOption = selected
	session.Snapshot = cart.Items

	if session.PaymentIntentID == "" {
		ref, err := f.payments.CreateIntent(ctx, userID, session.Snapshot, *session.Address, *selected, f.currency)
		if err != nil {
			session.LastError = apperrors.AsError(err).Message
			f.store.Put(session)
			return nil, err
		}
		session.PaymentIntentID = ref.ID
		session.ClientSecret = ref.ClientSecret
	}

	session.LastError = ""
	session.Step = models.StepPaymentPending
	f.store.Put(session)
	return session, nil
}

// BeginConfirmation runs after the client reports gateway success. The
// reported intent id must match the session's. On a transport failure the
// session stays at PAYMENT_CONFIRMING — the charge may already exist, so the
// only way forward is retrying this call until it answers.
func (f *checkoutFlow) BeginConfirmation(ctx context.Context, userID, intentID string) (*models.Order, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	if session.Step != models.StepPaymentPending && session.Step != models.StepPaymentConfirming {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "No payment awaiting confirmation")
	}
	if intentID == "" || intentID != session.PaymentIntentID {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Unknown payment intent for this checkout")
	}

	session.Step = models.StepPaymentConfirming
	f.store.Put(session)

	order, err := f.orders.ConfirmOrder(ctx, userID, intentID)
	if err != nil {
		appErr := apperrors.AsError(err)
		switch appErr.Code {
		case apperrors.ErrIntentNotSucceeded.Code:
			// Another card attempt against the same intent is allowed
			session.Step = models.StepPaymentPending
			session.LastDeclineReason = appErr.Message
		default:
			// Transport failure after a possible charge: hold the
			// confirming state, surface "payment captured, confirming
			// order" and keep retrying.
			session.LastError = appErr.Message
		}
		f.store.Put(session)
		return nil, err
	}

	session.Step = models.StepOrderConfirmed
	f.store.Delete(userID)

	f.logger.Info("Checkout completed",
		zap.String("user_id", userID),
		zap.String("order_number", order.OrderNumber),
	)
	return order, nil
}

// RecordDecline registers a gateway decline reported by the client and
// returns the session to PAYMENT_PENDING with the same intent, so the next
// attempt reuses it instead of creating a duplicate authorization.
func (f *checkoutFlow) RecordDecline(ctx context.Context, userID, reason string) (*models.CheckoutSession, error) {
	if err := f.acquire(userID); err != nil {
		return nil, err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No active checkout session")
	}
	if session.Step != models.StepPaymentPending && session.Step != models.StepPaymentConfirming {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "No payment in progress")
	}

	session.Step = models.StepPaymentPending
	session.LastDeclineReason = reason
	f.store.Put(session)

	f.logger.Info("Payment declined",
		zap.String("user_id", userID),
		zap.String("intent_id", session.PaymentIntentID),
		zap.String("reason", reason),
	)
	return session, nil
}

// Abandon discards the session. It is refused during PAYMENT_CONFIRMING:
// once a charge may exist, confirmation has to finish.
func (f *checkoutFlow) Abandon(ctx context.Context, userID string) error {
	if err := f.acquire(userID); err != nil {
		return err
	}
	defer f.store.EndOp(userID)

	session, ok := f.store.Get(userID)
	if !ok {
		return nil
	}
	if session.Step == models.StepPaymentConfirming {
		return apperrors.WithMessage(apperrors.ErrConflict, "Payment captured, order confirmation in progress")
	}

	f.store.Delete(userID)
	return nil
}

// IntentForUser exposes the session's intent, if any, so the direct payment
// endpoint can reuse it instead of opening a second one.
func (f *checkoutFlow) IntentForUser(userID string) (*IntentRef, bool) {
	session, ok := f.store.Get(userID)
	if !ok || session.PaymentIntentID == "" {
		return nil, false
	}
	return &IntentRef{ID: session.PaymentIntentID, ClientSecret: session.ClientSecret}, true
}
