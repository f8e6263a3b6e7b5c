package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tableside/internal/api"
	"tableside/internal/models"
)

// MockGateway implements api.Gateway for testing.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ScanQR(ctx context.Context, qrCode string) (*models.ScanResult, error) {
	args := m.Called(qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScanResult), args.Error(1)
}

func (m *MockGateway) GetTable(ctx context.Context, id int64) (*models.Table, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockGateway) CreateOrderFromQR(ctx context.Context, qrCode string) (*models.Order, error) {
	args := m.Called(qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) CreateOrder(ctx context.Context, tableID int64) (*models.Order, error) {
	args := m.Called(tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) GetOrderWithItems(ctx context.Context, id int64) (*models.OrderWithItems, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithItems), args.Error(1)
}

func (m *MockGateway) GetOpenOrderByTable(ctx context.Context, tableID int64) (*models.Order, error) {
	args := m.Called(tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) CloseOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) AddOrderItem(ctx context.Context, req api.AddOrderItemRequest) (*models.OrderItem, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *MockGateway) UpdateOrderItem(ctx context.Context, id int64, req api.UpdateOrderItemRequest) (*models.OrderItem, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *MockGateway) RemoveOrderItem(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockGateway) CalculateOrderTotal(ctx context.Context, orderID int64) (*models.OrderTotal, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderTotal), args.Error(1)
}

func (m *MockGateway) CreatePayment(ctx context.Context, req api.CreatePaymentRequest) (*models.Payment, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
