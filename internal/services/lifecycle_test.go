package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tableside/internal/api"
	"tableside/internal/models"
)

func TestConfirmRequiresItems(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusOpen)
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	_, err := lifecycle.Confirm(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	gateway.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything)
}

func TestConfirmHappyPath(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusOpen, line(55, 7, 2, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	confirmed := snapshot(models.StatusConfirmed, line(55, 7, 2, 50))
	gateway.On("UpdateOrderStatus", int64(101), models.StatusConfirmed).
		Return(&confirmed.Order, nil).Once()
	gateway.On("GetOrderWithItems", int64(101)).Return(confirmed, nil).Once()

	result, err := lifecycle.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, result.Status)

	status, _ := state.Status()
	assert.Equal(t, models.StatusConfirmed, status)
	gateway.AssertExpectations(t)
}

func TestConfirmTwiceRejected(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusConfirmed, line(55, 7, 2, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	_, err := lifecycle.Confirm(context.Background())
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
	gateway.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything)
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusPreparing, line(55, 7, 2, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	_, err := lifecycle.UpdateStatus(context.Background(), models.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))

	_, err = lifecycle.UpdateStatus(context.Background(), models.StatusClosed)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	gateway.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything)
}

func TestUpdateStatusKitchenAdvance(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusConfirmed, line(55, 7, 2, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	ready := snapshot(models.StatusReady, line(55, 7, 2, 50))
	gateway.On("UpdateOrderStatus", int64(101), models.StatusReady).
		Return(&ready.Order, nil).Once()
	gateway.On("GetOrderWithItems", int64(101)).Return(ready, nil).Once()

	// confirmed -> ready skips preparing; the ladder allows jumps.
	result, err := lifecycle.UpdateStatus(context.Background(), models.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, result.Status)
	gateway.AssertExpectations(t)
}

func TestCheckoutPaymentFailureLeavesOrderConfirmed(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusConfirmed, line(55, 7, 5, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	confirmed := snapshot(models.StatusConfirmed, line(55, 7, 5, 50))
	gateway.On("GetOrderWithItems", int64(101)).Return(confirmed, nil).Once()
	gateway.On("CreatePayment", mock.Anything).
		Return(nil, &api.TransportError{Op: "POST /payments", Err: context.DeadlineExceeded}).Once()

	result, err := lifecycle.Checkout(context.Background(), models.MethodCash)
	require.Error(t, err)
	assert.Nil(t, result)

	status, _ := state.Status()
	assert.Equal(t, models.StatusConfirmed, status)
	gateway.AssertNotCalled(t, "CloseOrder", mock.Anything)
}

func TestCheckoutChargesDisplayedTotal(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusConfirmed, line(55, 7, 5, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	confirmed := snapshot(models.StatusConfirmed, line(55, 7, 5, 50))
	now := time.Now()
	closedOrder := models.Order{ID: 101, TableID: 5, Status: models.StatusClosed, ClosedAt: &now}
	closedSnap := &models.OrderWithItems{Order: closedOrder, Items: confirmed.Items, Total: confirmed.Total}

	payment := &models.Payment{ID: 900, OrderID: 101, Amount: decimal.NewFromInt(250), Method: models.MethodCash, PaidAt: now}

	gateway.On("GetOrderWithItems", int64(101)).Return(confirmed, nil).Once()
	gateway.On("CreatePayment", mock.MatchedBy(func(req api.CreatePaymentRequest) bool {
		return req.OrderID == 101 && req.Amount.Equal(decimal.NewFromInt(250)) && req.Method == models.MethodCash
	})).Return(payment, nil).Once()
	gateway.On("CloseOrder", int64(101)).Return(&closedOrder, nil).Once()
	gateway.On("GetOrderWithItems", int64(101)).Return(closedSnap, nil).Once()

	result, err := lifecycle.Checkout(context.Background(), models.MethodCash)
	require.NoError(t, err)
	assert.True(t, result.Payment.Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, models.StatusClosed, result.Order.Status)
	require.NotNil(t, result.Order.ClosedAt)

	status, _ := state.Status()
	assert.Equal(t, models.StatusClosed, status)
	gateway.AssertExpectations(t)
}

func TestCheckoutCloseFailureKeepsPayment(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusConfirmed, line(55, 7, 5, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	confirmed := snapshot(models.StatusConfirmed, line(55, 7, 5, 50))
	payment := &models.Payment{ID: 900, OrderID: 101, Amount: decimal.NewFromInt(250), Method: models.MethodCash}

	gateway.On("GetOrderWithItems", int64(101)).Return(confirmed, nil).Once()
	gateway.On("CreatePayment", mock.Anything).Return(payment, nil).Once()
	gateway.On("CloseOrder", int64(101)).
		Return(nil, &api.TransportError{Op: "PUT /orders/101/close", Err: context.DeadlineExceeded}).Once()

	result, err := lifecycle.Checkout(context.Background(), models.MethodCash)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, payment, result.Payment)
	assert.Nil(t, result.Order)

	// The payment is committed; only the close needs retrying.
	status, _ := state.Status()
	assert.Equal(t, models.StatusConfirmed, status)
}

func TestCheckoutRejectedWhenOpen(t *testing.T) {
	gateway := new(MockGateway)
	state := boundState(models.StatusOpen, line(55, 7, 5, 50))
	lifecycle := NewLifecycleService(gateway, state, testLogger())

	open := snapshot(models.StatusOpen, line(55, 7, 5, 50))
	gateway.On("GetOrderWithItems", int64(101)).Return(open, nil).Once()

	_, err := lifecycle.Checkout(context.Background(), models.MethodCash)
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
	gateway.AssertNotCalled(t, "CreatePayment", mock.Anything)
}
