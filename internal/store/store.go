package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"tableside/internal/models"
)

// OrderState holds everything this terminal believes about its session:
// the bound table, the authoritative order snapshot last confirmed by the
// server, staged cart lines not yet submitted, and a tentative quantity
// overlay for in-flight reconciliations.
//
// Only the reconciler, the lifecycle controller and the refresher mutate
// it. The generation counter arbitrates between them: every mutation
// bumps it, and a poll snapshot fetched under an older generation is
// discarded instead of clobbering fresher state.
type OrderState struct {
	mu        sync.RWMutex
	table     *models.Table
	order     *models.OrderWithItems
	staged    []models.CartItem
	tentative map[int64]int // menu item id -> displayed quantity during an in-flight call
	gen       uint64
}

func NewOrderState() *OrderState {
	return &OrderState{
		tentative: make(map[int64]int),
	}
}

// Bind installs a freshly resolved session. Staged lines survive binding
// so a cart built before scanning can be submitted afterwards.
func (s *OrderState) Bind(table *models.Table, order *models.OrderWithItems) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	s.order = order
	s.tentative = make(map[int64]int)
	s.gen++
}

// Clear drops the whole session, including staged lines.
func (s *OrderState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
	s.order = nil
	s.staged = nil
	s.tentative = make(map[int64]int)
	s.gen++
}

func (s *OrderState) Table() *models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil
	}
	t := *s.table
	return &t
}

// Order returns a copy of the authoritative snapshot, or nil when no
// order is bound.
func (s *OrderState) Order() *models.OrderWithItems {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrder(s.order)
}

func (s *OrderState) OrderID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.order == nil {
		return 0, false
	}
	return s.order.ID, true
}

func (s *OrderState) Status() (models.OrderStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.order == nil {
		return "", false
	}
	return s.order.Status, true
}

// Line returns the authoritative order line for a menu item, if one exists.
func (s *OrderState) Line(menuItemID int64) (models.OrderItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.order == nil {
		return models.OrderItem{}, false
	}
	for _, it := range s.order.Items {
		if it.ItemID == menuItemID {
			return it, true
		}
	}
	return models.OrderItem{}, false
}

// Quantity is the quantity currently displayed for a menu item: the
// tentative overlay when a reconciliation is in flight, the authoritative
// line otherwise, zero when neither exists.
func (s *OrderState) Quantity(menuItemID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.tentative[menuItemID]; ok {
		return q
	}
	if s.order != nil {
		for _, it := range s.order.Items {
			if it.ItemID == menuItemID {
				return it.Quantity
			}
		}
	}
	return 0
}

// KnownQuantity is the last server-confirmed quantity, ignoring any
// tentative overlay. The reconciler computes deltas against this.
func (s *OrderState) KnownQuantity(menuItemID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.order != nil {
		for _, it := range s.order.Items {
			if it.ItemID == menuItemID {
				return it.Quantity
			}
		}
	}
	return 0
}

// SetTentative applies the optimistic half of a two-phase update: the UI
// shows the desired quantity while the remote call is outstanding.
func (s *OrderState) SetTentative(menuItemID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tentative[menuItemID] = quantity
}

// ClearTentative rolls the displayed quantity back to the authoritative
// snapshot after a failed mutation. On success no explicit clear is
// needed; installing the post-mutation snapshot retires the overlay.
func (s *OrderState) ClearTentative(menuItemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tentative, menuItemID)
}

// ApplyMutation installs the post-mutation snapshot fetched by the
// operation itself. It always wins: the generation bump invalidates any
// poll that was in flight while the mutation ran.
func (s *OrderState) ApplyMutation(order *models.OrderWithItems) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = cloneOrder(order)
	s.tentative = make(map[int64]int)
	s.gen++
}

// Generation tags a refresh cycle; pass the value back to ApplyRefresh.
func (s *OrderState) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// ApplyRefresh merges a polled snapshot, unless a mutation landed since
// the poll started. Returns whether the snapshot was applied. An applied
// snapshot is the displayed truth: any tentative overlay still hanging
// around (a mutation whose refetch step failed) is retired so the
// display converges on the last fetch.
func (s *OrderState) ApplyRefresh(order *models.OrderWithItems, fetchedAt uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != fetchedAt {
		return false
	}
	s.order = cloneOrder(order)
	s.tentative = make(map[int64]int)
	return true
}

// RefreshTable merges a polled table snapshot (seating/active changes).
// Table state is not guarded by the generation counter; the order
// snapshot is the only contended resource.
func (s *OrderState) RefreshTable(table *models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil && table != nil && s.table.ID == table.ID {
		t := *table
		s.table = &t
	}
}

// StageCartItem accumulates a staged line for a menu item not yet
// submitted to the server; repeated adds for the same item merge.
func (s *OrderState) StageCartItem(item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.staged {
		if s.staged[i].ItemID == item.ItemID {
			s.staged[i].Quantity += item.Quantity
			s.staged[i].Subtotal = s.staged[i].UnitPrice.Mul(decimal.NewFromInt(int64(s.staged[i].Quantity)))
			if item.Notes != "" {
				s.staged[i].Notes = item.Notes
			}
			return
		}
	}
	s.staged = append(s.staged, item)
}

// StagedQuantity reports the staged (not yet submitted) quantity for a
// menu item, zero when none is staged.
func (s *OrderState) StagedQuantity(menuItemID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.staged {
		if s.staged[i].ItemID == menuItemID {
			return s.staged[i].Quantity
		}
	}
	return 0
}

// DropStaged removes the staged line for a menu item, if any. Called
// when an authoritative mutation for the item supersedes the staged
// intent, so the line is not counted twice.
func (s *OrderState) DropStaged(menuItemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.staged {
		if s.staged[i].ItemID == menuItemID {
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			return
		}
	}
}

func (s *OrderState) StagedItems() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartItem, len(s.staged))
	copy(out, s.staged)
	return out
}

func (s *OrderState) ClearStaged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = nil
}

// Total recomputes the displayed bill: authoritative line subtotals
// (tentative quantities substituted where an update is in flight) plus
// staged lines. Never cached.
func (s *OrderState) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	if s.order != nil {
		for _, it := range s.order.Items {
			qty := it.Quantity
			if q, ok := s.tentative[it.ItemID]; ok {
				qty = q
			}
			total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	for _, it := range s.staged {
		total = total.Add(it.Subtotal)
	}
	return total
}

func cloneOrder(o *models.OrderWithItems) *models.OrderWithItems {
	if o == nil {
		return nil
	}
	dup := *o
	dup.Items = make([]models.OrderItem, len(o.Items))
	copy(dup.Items, o.Items)
	return &dup
}
