package services

import (
	"context"
	"fmt"

	"tableside/internal/api"
	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/store"
)

// SessionService resolves an external table reference (QR payload or
// table id) into a bound (table, order) session, creating an order when
// the table has none open. The server arbitrates the one-open-order-per-
// table invariant: a conflict on create means somebody else just opened
// one, and the binder adopts theirs instead of failing.
type SessionService struct {
	gateway api.Gateway
	state   *store.OrderState
	log     *logger.Logger
}

func NewSessionService(gateway api.Gateway, state *store.OrderState, log *logger.Logger) *SessionService {
	return &SessionService{
		gateway: gateway,
		state:   state,
		log:     log,
	}
}

// BindQR resolves a QR payload and binds its table's session.
func (s *SessionService) BindQR(ctx context.Context, qrCode string) (*models.OrderWithItems, error) {
	scan, err := s.gateway.ScanQR(ctx, qrCode)
	if err != nil {
		return nil, fmt.Errorf("scan qr %q: %w", qrCode, err)
	}

	table := scan.Table
	if !table.IsActive {
		return nil, fmt.Errorf("table %d: %w", table.ID, ErrTableInactive)
	}

	if scan.HasOpenOrder && scan.OpenOrder != nil {
		s.log.LogOrder("RESUME", scan.OpenOrder.ID, fmt.Sprintf("resuming open order on table %d", table.ID))
		return s.hydrate(ctx, &table, scan.OpenOrder.ID)
	}

	// Single-call fast path: the scan already resolved the table, so the
	// order is created straight from the QR payload.
	return s.open(ctx, &table, func(ctx context.Context) (*models.Order, error) {
		return s.gateway.CreateOrderFromQR(ctx, qrCode)
	})
}

// BindTable binds a session by numeric table id.
func (s *SessionService) BindTable(ctx context.Context, tableID int64) (*models.OrderWithItems, error) {
	table, err := s.gateway.GetTable(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("resolve table %d: %w", tableID, err)
	}
	if !table.IsActive {
		return nil, fmt.Errorf("table %d: %w", table.ID, ErrTableInactive)
	}

	open, err := s.gateway.GetOpenOrderByTable(ctx, table.ID)
	switch {
	case err == nil:
		s.log.LogOrder("RESUME", open.ID, fmt.Sprintf("resuming open order on table %d", table.ID))
		return s.hydrate(ctx, table, open.ID)
	case api.IsNotFound(err):
		return s.open(ctx, table, func(ctx context.Context) (*models.Order, error) {
			return s.gateway.CreateOrder(ctx, table.ID)
		})
	default:
		return nil, fmt.Errorf("look up open order for table %d: %w", table.ID, err)
	}
}

// open creates a fresh order on the table via the given create call,
// adopting a concurrently created one if the server reports the
// uniqueness conflict.
func (s *SessionService) open(ctx context.Context, table *models.Table, create func(context.Context) (*models.Order, error)) (*models.OrderWithItems, error) {
	order, err := create(ctx)
	if err == nil {
		s.log.LogOrder("CREATE", order.ID, fmt.Sprintf("opened order on table %d", table.ID))
		return s.hydrate(ctx, table, order.ID)
	}

	if !api.IsConflict(err) {
		return nil, fmt.Errorf("create order for table %d: %w", table.ID, err)
	}

	// Lost the race: another scan opened the order first. Bind to theirs.
	s.log.Warn("SESSION", fmt.Sprintf("open order already exists on table %d, rebinding", table.ID))
	existing, ferr := s.gateway.GetOpenOrderByTable(ctx, table.ID)
	if ferr != nil {
		return nil, fmt.Errorf("create order for table %d conflicted and rebind failed: %w", table.ID, ferr)
	}

	s.log.LogOrder("REBIND", existing.ID, fmt.Sprintf("adopted concurrent order on table %d", table.ID))
	return s.hydrate(ctx, table, existing.ID)
}

// hydrate pulls the full order snapshot and installs the session.
func (s *SessionService) hydrate(ctx context.Context, table *models.Table, orderID int64) (*models.OrderWithItems, error) {
	order, err := s.gateway.GetOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("hydrate order %d: %w", orderID, err)
	}

	s.state.Bind(table, order)
	return order, nil
}
