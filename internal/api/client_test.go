package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/api"
	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/stubapi"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	stub := stubapi.NewServer()
	stub.SeedDemo()

	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	return api.NewClient(srv.URL+"/api/v1", logger.NewLogger())
}

func TestScanResolvesTableAndOpenOrder(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	scan, err := client.ScanQR(ctx, "TBL-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), scan.TableID)
	assert.False(t, scan.HasOpenOrder)

	order, err := client.CreateOrder(ctx, scan.TableID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, order.Status)

	// The next scan of the same code reports the order in progress.
	scan, err = client.ScanQR(ctx, "TBL-0001")
	require.NoError(t, err)
	require.True(t, scan.HasOpenOrder)
	assert.Equal(t, order.ID, scan.OpenOrder.ID)
}

func TestCreateOrderFromQRFastPath(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	order, err := client.CreateOrderFromQR(ctx, "TBL-0002")
	require.NoError(t, err)
	assert.Equal(t, int64(2), order.TableID)
	assert.Equal(t, models.StatusOpen, order.Status)

	// The uniqueness rule holds on the fast path too.
	_, err = client.CreateOrderFromQR(ctx, "TBL-0002")
	assert.True(t, api.IsConflict(err))

	_, err = client.CreateOrderFromQR(ctx, "TBL-9999")
	assert.True(t, api.IsNotFound(err))
}

func TestScanUnknownCodeIsNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ScanQR(context.Background(), "TBL-9999")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestAddOrderItemMayAccumulate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, 1)
	require.NoError(t, err)

	_, err = client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: order.ID, ItemID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: order.ID, ItemID: 1, Quantity: 1})
	require.NoError(t, err)

	// This server folds repeated adds into one line. Callers must refetch
	// rather than assume either behavior; verify the refetch sees it.
	snapshot, err := client.GetOrderWithItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 3, snapshot.Items[0].Quantity)
	assert.True(t, snapshot.Total.Equal(decimal.NewFromInt(360)), "3 x Pad Thai at 120")
}

func TestUpdateAndRemoveOrderItem(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, 1)
	require.NoError(t, err)
	line, err := client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: order.ID, ItemID: 3, Quantity: 4})
	require.NoError(t, err)

	updated, err := client.UpdateOrderItem(ctx, line.ID, api.UpdateOrderItemRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(50)))

	require.NoError(t, client.RemoveOrderItem(ctx, line.ID))

	snapshot, err := client.GetOrderWithItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.True(t, snapshot.Total.IsZero())
}

func TestErrorTaxonomyMapping(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetOrder(ctx, 424242)
	assert.True(t, api.IsNotFound(err), "unknown order maps to not found")

	_, err = client.CreateOrder(ctx, 1)
	require.NoError(t, err)
	_, err = client.CreateOrder(ctx, 1)
	assert.True(t, api.IsConflict(err), "second open order on a table maps to conflict")

	_, err = client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: 1, ItemID: 1, Quantity: 0})
	assert.True(t, api.IsValidation(err), "zero quantity maps to validation")

	_, err = client.CreateOrder(ctx, 4)
	assert.True(t, api.IsValidation(err), "inactive table maps to validation")
}

func TestTransportErrorWhenServerUnreachable(t *testing.T) {
	stub := stubapi.NewServer()
	srv := httptest.NewServer(stub.Handler())
	client := api.NewClient(srv.URL+"/api/v1", logger.NewLogger())
	srv.Close()

	_, err := client.GetOrder(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
}

func TestCheckoutFlowEndToEnd(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, 2)
	require.NoError(t, err)
	_, err = client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: order.ID, ItemID: 2, Quantity: 2})
	require.NoError(t, err)

	// Payment is rejected while the order is still open.
	total := decimal.NewFromInt(300)
	_, err = client.CreatePayment(ctx, api.CreatePaymentRequest{OrderID: order.ID, Amount: total, Method: models.MethodCash})
	assert.True(t, api.IsValidation(err))

	// So is closing without a payment.
	_, err = client.CloseOrder(ctx, order.ID)
	assert.True(t, api.IsValidation(err))

	_, err = client.UpdateOrderStatus(ctx, order.ID, models.StatusConfirmed)
	require.NoError(t, err)

	// The charged amount must match the computed total exactly.
	_, err = client.CreatePayment(ctx, api.CreatePaymentRequest{OrderID: order.ID, Amount: decimal.NewFromInt(299), Method: models.MethodCash})
	assert.True(t, api.IsValidation(err))

	computed, err := client.CalculateOrderTotal(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, computed.Total.Equal(total))

	payment, err := client.CreatePayment(ctx, api.CreatePaymentRequest{OrderID: order.ID, Amount: computed.Total, Method: models.MethodCash})
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(total))

	// Double payment is a conflict.
	_, err = client.CreatePayment(ctx, api.CreatePaymentRequest{OrderID: order.ID, Amount: total, Method: models.MethodCash})
	assert.True(t, api.IsConflict(err))

	closed, err := client.CloseOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// Closed orders reject further item mutation.
	_, err = client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: order.ID, ItemID: 1, Quantity: 1})
	assert.True(t, api.IsValidation(err))

	// And the table frees up for the next party.
	_, err = client.GetOpenOrderByTable(ctx, 2)
	assert.True(t, api.IsNotFound(err))
}

func TestStatusRegressionRejectedByServer(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, 3)
	require.NoError(t, err)
	_, err = client.UpdateOrderStatus(ctx, order.ID, models.StatusPreparing)
	require.NoError(t, err)

	_, err = client.UpdateOrderStatus(ctx, order.ID, models.StatusOpen)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
}

func TestMenuCatalogReads(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	categories, err := client.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	page, err := client.GetMenuItems(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)

	drinks, err := client.GetMenuItemsByCategory(ctx, 2, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, drinks.Total)

	found, err := client.SearchMenuItems(ctx, "pad", 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "Pad Thai", found.Items[0].Name)

	item, err := client.GetMenuItem(ctx, 2)
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(150)))
}

func TestOrdersByStatusFeed(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	first, err := client.CreateOrder(ctx, 1)
	require.NoError(t, err)
	_, err = client.CreateOrder(ctx, 2)
	require.NoError(t, err)
	_, err = client.UpdateOrderStatus(ctx, first.ID, models.StatusPreparing)
	require.NoError(t, err)

	preparing, err := client.GetOrdersByStatus(ctx, models.StatusPreparing, 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, preparing.Total)
	assert.Equal(t, first.ID, preparing.Orders[0].ID)

	open, err := client.GetOrdersByStatus(ctx, models.StatusOpen, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, open.Total)
}

func TestTotalRevenueAfterCheckout(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, 1)
	require.NoError(t, err)
	_, err = client.AddOrderItem(ctx, api.AddOrderItemRequest{OrderID: order.ID, ItemID: 4, Quantity: 2})
	require.NoError(t, err)
	_, err = client.UpdateOrderStatus(ctx, order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	_, err = client.CreatePayment(ctx, api.CreatePaymentRequest{OrderID: order.ID, Amount: decimal.NewFromInt(90), Method: models.MethodWallet})
	require.NoError(t, err)
	_, err = client.CloseOrder(ctx, order.ID)
	require.NoError(t, err)

	rev, err := client.GetTotalRevenue(ctx, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	assert.True(t, rev.TotalRevenue.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 1, rev.TotalOrders)

	now := time.Now()
	today := now.Format("2006-01-02")

	daily, err := client.GetDailyRevenue(ctx, today)
	require.NoError(t, err)
	assert.True(t, daily.TotalRevenue.Equal(decimal.NewFromInt(90)))

	monthly, err := client.GetMonthlyRevenue(ctx, now.Year(), int(now.Month()))
	require.NoError(t, err)
	assert.True(t, monthly.TotalRevenue.Equal(decimal.NewFromInt(90)))
	require.Len(t, monthly.DailyBreakdown, 1)
	assert.Equal(t, today, monthly.DailyBreakdown[0].Date)

	days, err := client.GetDailyRevenueRange(ctx, today, today)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].TotalOrders)
}
