package services

import (
	"context"
	"fmt"

	"tableside/internal/api"
	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/store"
)

// LifecycleService drives an order along the status ladder
// open -> confirmed -> preparing -> ready -> served -> closed and owns
// payment finalization. Kitchen transitions are advisory; the checkout
// path is the only one that records money and closes the bill.
type LifecycleService struct {
	gateway api.Gateway
	state   *store.OrderState
	log     *logger.Logger
}

func NewLifecycleService(gateway api.Gateway, state *store.OrderState, log *logger.Logger) *LifecycleService {
	return &LifecycleService{
		gateway: gateway,
		state:   state,
		log:     log,
	}
}

// CheckoutResult reports what the checkout sequence accomplished. On a
// partial failure (payment recorded, close failed) Payment is set and the
// accompanying error says the close step must be retried.
type CheckoutResult struct {
	Payment *models.Payment
	Order   *models.Order
}

// Confirm moves an open order to confirmed. An order with no lines is
// rejected before any remote call.
func (s *LifecycleService) Confirm(ctx context.Context) (*models.OrderWithItems, error) {
	order := s.state.Order()
	if order == nil {
		return nil, ErrNoSession
	}
	if !order.Status.CanTransitionTo(models.StatusConfirmed) {
		return nil, &InvalidStateError{Op: "confirm", Status: order.Status}
	}
	if len(order.Items) == 0 {
		return nil, &api.ValidationError{Message: "cannot confirm an order with no items"}
	}

	if _, err := s.gateway.UpdateOrderStatus(ctx, order.ID, models.StatusConfirmed); err != nil {
		return nil, fmt.Errorf("confirm order %d: %w", order.ID, err)
	}
	s.log.LogOrder("CONFIRM", order.ID, "order confirmed")

	return s.refresh(ctx, order.ID)
}

// UpdateStatus applies an advisory kitchen transition (preparing, ready,
// served). Closing goes through Checkout or Close, never through here.
func (s *LifecycleService) UpdateStatus(ctx context.Context, next models.OrderStatus) (*models.OrderWithItems, error) {
	if !next.Valid() || next == models.StatusClosed {
		return nil, &api.ValidationError{Message: fmt.Sprintf("status %q is not a valid kitchen transition", next)}
	}

	order := s.state.Order()
	if order == nil {
		return nil, ErrNoSession
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &InvalidStateError{Op: "transition to " + string(next), Status: order.Status}
	}

	if _, err := s.gateway.UpdateOrderStatus(ctx, order.ID, next); err != nil {
		return nil, fmt.Errorf("update order %d to %s: %w", order.ID, next, err)
	}
	s.log.LogOrder("STATUS", order.ID, fmt.Sprintf("%s -> %s", order.Status, next))

	return s.refresh(ctx, order.ID)
}

// Checkout settles a confirmed order: record the payment, then close.
// The charged amount is recomputed from the authoritative line subtotals
// so it equals the total the guest was shown. If the payment call fails
// the order stays confirmed and nothing is charged. If the close call
// fails after a successful payment, the payment stands and the returned
// error marks the close step as the one to retry.
func (s *LifecycleService) Checkout(ctx context.Context, method models.PaymentMethod) (*CheckoutResult, error) {
	if !method.Valid() {
		return nil, &api.ValidationError{Message: fmt.Sprintf("unknown payment method %q", method)}
	}

	orderID, bound := s.state.OrderID()
	if !bound {
		return nil, ErrNoSession
	}

	// Settle against the latest authoritative snapshot, not a stale one.
	order, err := s.refresh(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusConfirmed {
		return nil, &InvalidStateError{Op: "checkout", Status: order.Status}
	}
	if len(order.Items) == 0 {
		return nil, &api.ValidationError{Message: "cannot settle an order with no items"}
	}

	amount := order.ItemsTotal()

	payment, err := s.gateway.CreatePayment(ctx, api.CreatePaymentRequest{
		OrderID: orderID,
		Amount:  amount,
		Method:  method,
	})
	if err != nil {
		s.log.Error("ORDER", fmt.Sprintf("payment for order %d failed: %v", orderID, err))
		return nil, fmt.Errorf("payment for order %d: %w", orderID, err)
	}
	s.log.LogOrder("PAYMENT", orderID, fmt.Sprintf("%s %s recorded", amount.StringFixed(2), method))

	closed, err := s.gateway.CloseOrder(ctx, orderID)
	if err != nil {
		// The payment is committed; only the close needs retrying.
		s.log.Error("ORDER", fmt.Sprintf("close after payment failed for order %d: %v", orderID, err))
		return &CheckoutResult{Payment: payment}, fmt.Errorf("payment recorded, close of order %d failed: %w", orderID, err)
	}
	s.log.LogOrder("CLOSE", orderID, "order closed")

	if refreshed, rerr := s.refresh(ctx, orderID); rerr == nil {
		closed = &refreshed.Order
	}

	return &CheckoutResult{Payment: payment, Order: closed}, nil
}

// Close retries the close step for an order whose payment is already
// recorded (the recovery path after a partial Checkout).
func (s *LifecycleService) Close(ctx context.Context) (*models.Order, error) {
	orderID, bound := s.state.OrderID()
	if !bound {
		return nil, ErrNoSession
	}

	closed, err := s.gateway.CloseOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("close order %d: %w", orderID, err)
	}
	s.log.LogOrder("CLOSE", orderID, "order closed")

	if refreshed, rerr := s.refresh(ctx, orderID); rerr == nil {
		closed = &refreshed.Order
	}
	return closed, nil
}

func (s *LifecycleService) refresh(ctx context.Context, orderID int64) (*models.OrderWithItems, error) {
	refreshed, err := s.gateway.GetOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("refresh order %d: %w", orderID, err)
	}
	s.state.ApplyMutation(refreshed)
	return refreshed, nil
}
