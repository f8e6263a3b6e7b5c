package services

import (
	"context"
	"fmt"

	"tableside/internal/api"
	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/store"
)

// CartService reconciles desired line quantities with the server. Given
// "set item M to quantity Q" it computes the minimal remote mutation,
// applies the displayed quantity optimistically, and replaces local state
// with the server's snapshot once the mutation is acknowledged.
//
// Calls for the same order are expected to be issued serially; rapid
// repeated quantity changes should be debounced by the caller.
type CartService struct {
	gateway api.Gateway
	state   *store.OrderState
	log     *logger.Logger
}

func NewCartService(gateway api.Gateway, state *store.OrderState, log *logger.Logger) *CartService {
	return &CartService{
		gateway: gateway,
		state:   state,
		log:     log,
	}
}

// SetQuantity brings the remote order line for menuItemID to desired.
// desired == 0 removes the line. The returned snapshot is the server's
// authoritative post-mutation state. A nil snapshot with nil error means
// the state was already correct and no remote call was made.
func (s *CartService) SetQuantity(ctx context.Context, menuItemID int64, desired int, notes string) (*models.OrderWithItems, error) {
	if desired < 0 {
		return nil, &api.ValidationError{Message: fmt.Sprintf("quantity %d is negative", desired)}
	}

	order := s.state.Order()
	if order == nil {
		return nil, ErrNoSession
	}
	if !order.Status.AllowsItemMutation() {
		return nil, &InvalidStateError{Op: "item mutation", Status: order.Status}
	}

	current := s.state.KnownQuantity(menuItemID)
	delta := desired - current
	if delta == 0 {
		s.log.LogCart("NOOP", menuItemID, fmt.Sprintf("already at quantity %d", desired))
		return order, nil
	}

	// Optimistic half: show the desired quantity while the call is out.
	s.state.SetTentative(menuItemID, desired)

	var mutErr error
	switch {
	case delta > 0:
		// The server may accumulate into an existing line or open a new
		// one; the refetch below resolves which without guessing.
		_, mutErr = s.gateway.AddOrderItem(ctx, api.AddOrderItemRequest{
			OrderID:  order.ID,
			ItemID:   menuItemID,
			Quantity: delta,
			Notes:    notes,
		})
		if mutErr == nil {
			s.log.LogCart("ADD", menuItemID, fmt.Sprintf("+%d (now %d)", delta, desired))
		}

	default:
		line, ok := s.state.Line(menuItemID)
		if !ok {
			s.state.ClearTentative(menuItemID)
			return nil, &api.NotFoundError{Resource: "order item", Message: fmt.Sprintf("no line for menu item %d", menuItemID)}
		}
		if desired == 0 {
			mutErr = s.gateway.RemoveOrderItem(ctx, line.ID)
			if mutErr == nil {
				s.log.LogCart("REMOVE", menuItemID, fmt.Sprintf("line %d removed", line.ID))
			}
		} else {
			_, mutErr = s.gateway.UpdateOrderItem(ctx, line.ID, api.UpdateOrderItemRequest{
				Quantity: desired,
				Notes:    notes,
			})
			if mutErr == nil {
				s.log.LogCart("UPDATE", menuItemID, fmt.Sprintf("%d -> %d", current, desired))
			}
		}
	}

	if mutErr != nil {
		// Roll the display back; the store never saw the failed delta.
		s.state.ClearTentative(menuItemID)
		s.log.Error("CART", fmt.Sprintf("mutation for item %d failed: %v", menuItemID, mutErr))
		return nil, fmt.Errorf("set quantity for item %d: %w", menuItemID, mutErr)
	}

	refreshed, err := s.gateway.GetOrderWithItems(ctx, order.ID)
	if err != nil {
		// The mutation is committed server-side; keep the optimistic
		// quantity on display and tell the caller the refresh step failed.
		// The next snapshot to land (a poll or a later mutation) retires
		// the overlay and converges the display.
		s.log.Warn("CART", fmt.Sprintf("mutation committed but refresh failed for order %d: %v", order.ID, err))
		return nil, fmt.Errorf("mutation committed, refresh of order %d failed: %w", order.ID, err)
	}

	s.state.ApplyMutation(refreshed)
	s.state.DropStaged(menuItemID)
	return refreshed, nil
}

// AddToCart raises the quantity of a menu item by qty, capturing the
// catalog price. With no order bound yet the line is staged locally and
// submitted later by SubmitStaged.
func (s *CartService) AddToCart(ctx context.Context, item models.MenuItem, qty int, notes string) (*models.OrderWithItems, error) {
	if qty < 1 {
		return nil, &api.ValidationError{Message: fmt.Sprintf("quantity %d must be at least 1", qty)}
	}

	if _, bound := s.state.OrderID(); !bound {
		s.state.StageCartItem(models.NewCartItem(item, qty, notes))
		s.log.LogCart("STAGE", item.ID, fmt.Sprintf("+%d staged locally", qty))
		return nil, nil
	}

	// A staged line for this item may have survived the bind; fold it
	// into the target quantity so it is submitted here rather than
	// counted alongside the remote line.
	desired := s.state.KnownQuantity(item.ID) + s.state.StagedQuantity(item.ID) + qty
	return s.SetQuantity(ctx, item.ID, desired, notes)
}

// SubmitStaged pushes staged lines into the bound order, in order. On
// failure the already-submitted lines stay committed (and leave the
// staging area); the failed line and everything after it remain staged
// so the caller can retry just the remainder.
func (s *CartService) SubmitStaged(ctx context.Context) (*models.OrderWithItems, error) {
	orderID, bound := s.state.OrderID()
	if !bound {
		return nil, ErrNoSession
	}
	if status, _ := s.state.Status(); !status.AllowsItemMutation() {
		return nil, &InvalidStateError{Op: "item mutation", Status: status}
	}

	staged := s.state.StagedItems()
	if len(staged) == 0 {
		return s.state.Order(), nil
	}

	for i, line := range staged {
		_, err := s.gateway.AddOrderItem(ctx, api.AddOrderItemRequest{
			OrderID:  orderID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		})
		if err != nil {
			s.state.ClearStaged()
			for _, rest := range staged[i:] {
				s.state.StageCartItem(rest)
			}
			// Committed lines will appear on the next refresh.
			if refreshed, rerr := s.gateway.GetOrderWithItems(ctx, orderID); rerr == nil {
				s.state.ApplyMutation(refreshed)
			}
			return nil, &SubmitError{ItemID: line.ItemID, Err: err}
		}
		s.log.LogCart("SUBMIT", line.ItemID, fmt.Sprintf("x%d submitted to order %d", line.Quantity, orderID))
	}

	refreshed, err := s.gateway.GetOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("staged lines committed, refresh of order %d failed: %w", orderID, err)
	}

	s.state.ApplyMutation(refreshed)
	s.state.ClearStaged()
	return refreshed, nil
}
