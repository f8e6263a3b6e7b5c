// Package stubapi is an in-memory stand-in for the remote POS service.
// The real service is an external collaborator; this stub implements just
// enough of its contract, including the awkward parts the client must
// cope with (accumulating adds, the one-open-order-per-table conflict),
// to back the client tests and the offline demo mode.
package stubapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tableside/internal/models"
)

type Server struct {
	mu         sync.Mutex
	engine     *gin.Engine
	categories map[int64]*models.Category
	menu       map[int64]*models.MenuItem
	tables     map[int64]*models.Table
	orders     map[int64]*models.Order
	items      map[int64]*models.OrderItem
	payments   map[int64]*models.Payment
	nextID     int64
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		categories: make(map[int64]*models.Category),
		menu:       make(map[int64]*models.MenuItem),
		tables:     make(map[int64]*models.Table),
		orders:     make(map[int64]*models.Order),
		items:      make(map[int64]*models.OrderItem),
		payments:   make(map[int64]*models.Payment),
		nextID:     100,
	}

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/categories", s.listCategories)
		v1.GET("/menu-items", s.listMenuItems)
		v1.GET("/menu-items/:a", s.getMenuItem)
		v1.GET("/menu-items/:a/:b", s.listMenuItemsByCategory)

		v1.GET("/tables", s.listTables)
		v1.GET("/tables/:a", s.getTableOrScan)
		v1.GET("/tables/:a/:b", s.getTableByNumber)
		v1.POST("/tables/:a/:b", s.createOrderFromScan)

		v1.POST("/orders", s.createOrder)
		v1.POST("/orders/:a", s.addOrderItem) // POST /orders/items
		v1.GET("/orders/:a", s.getOrder)
		v1.GET("/orders/:a/:b", s.getOrderSub)            // items | total | table listing
		v1.GET("/orders/:a/:b/:c", s.getOpenOrderByTable) // /orders/table/:id/open
		v1.PUT("/orders/:a", s.updateOrderStatus)
		v1.PUT("/orders/:a/:b", s.putOrderSub) // close | items update
		v1.DELETE("/orders/:a/:b", s.removeOrderItem)

		v1.POST("/payments", s.createPayment)
		v1.GET("/payments/:a", s.getPayment)
		v1.GET("/payments/:a/:b", s.getPaymentByOrder)

		v1.GET("/revenue/:a", s.getRevenue)
		v1.GET("/revenue/:a/:b", s.getRevenueRange)
	}
	s.engine = engine
	return s
}

// Handler exposes the stub as an http.Handler for httptest or a real
// listener in offline demo mode.
func (s *Server) Handler() http.Handler { return s.engine }

// SeedDemo loads a small restaurant: two categories, four menu items,
// three active tables and one inactive one.
func (s *Server) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	mains := &models.Category{ID: 1, Name: "Mains", CreatedAt: now}
	drinks := &models.Category{ID: 2, Name: "Drinks", CreatedAt: now}
	s.categories[mains.ID] = mains
	s.categories[drinks.ID] = drinks

	for _, m := range []*models.MenuItem{
		{ID: 1, CategoryID: 1, Name: "Pad Thai", Price: decimal.NewFromInt(120), CreatedAt: now},
		{ID: 2, CategoryID: 1, Name: "Green Curry", Price: decimal.NewFromInt(150), CreatedAt: now},
		{ID: 3, CategoryID: 2, Name: "Thai Iced Tea", Price: decimal.NewFromInt(50), CreatedAt: now},
		{ID: 4, CategoryID: 2, Name: "Coconut Water", Price: decimal.NewFromInt(45), CreatedAt: now},
	} {
		s.menu[m.ID] = m
	}

	for i := 1; i <= 4; i++ {
		s.tables[int64(i)] = &models.Table{
			ID:          int64(i),
			TableNumber: i,
			QRCode:      "TBL-000" + strconv.Itoa(i),
			Seating:     4,
			IsActive:    i != 4,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
}

// AddTable and AddMenuItem let tests shape the fixture directly.
func (s *Server) AddTable(t models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID] = &t
}

func (s *Server) AddMenuItem(m models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu[m.ID] = &m
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

// --- envelope helpers (the remote service wraps every response) ---

func respond(c *gin.Context, code int, message string, data any) {
	c.JSON(code, gin.H{"status": code, "message": message, "data": data})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": code, "message": message, "data": nil})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil
}

// --- menu ---

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		out = append(out, *cat)
	}
	respond(c, http.StatusOK, "categories retrieved", out)
}

func (s *Server) listMenuItems(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		out = append(out, *m)
	}
	respond(c, http.StatusOK, "menu items retrieved", models.MenuItemPage{
		Items: out, Total: len(out), Limit: len(out),
	})
}

func (s *Server) getMenuItem(c *gin.Context) {
	if c.Param("a") == "search" {
		s.searchMenuItems(c)
		return
	}
	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid menu item id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, exists := s.menu[id]
	if !exists {
		fail(c, http.StatusNotFound, "menu item not found")
		return
	}
	respond(c, http.StatusOK, "menu item retrieved", m)
}

func (s *Server) searchMenuItems(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MenuItem
	for _, m := range s.menu {
		if strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, *m)
		}
	}
	respond(c, http.StatusOK, "menu items retrieved", models.MenuItemPage{Items: out, Total: len(out), Limit: len(out)})
}

func (s *Server) listMenuItemsByCategory(c *gin.Context) {
	if c.Param("a") != "category" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	catID, ok := paramID(c, "b")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid category id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MenuItem
	for _, m := range s.menu {
		if m.CategoryID == catID {
			out = append(out, *m)
		}
	}
	respond(c, http.StatusOK, "menu items retrieved", models.MenuItemPage{Items: out, Total: len(out), Limit: len(out)})
}

// --- tables ---

func (s *Server) listTables(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, *t)
	}
	respond(c, http.StatusOK, "tables retrieved", gin.H{"tables": out, "total": len(out)})
}

func (s *Server) getTableOrScan(c *gin.Context) {
	if c.Param("a") == "scan" {
		s.scanQR(c)
		return
	}
	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid table id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, exists := s.tables[id]
	if !exists {
		fail(c, http.StatusNotFound, "table not found")
		return
	}
	respond(c, http.StatusOK, "table retrieved", t)
}

func (s *Server) getTableByNumber(c *gin.Context) {
	if c.Param("a") != "number" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	number, ok := paramID(c, "b")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid table number")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		if t.TableNumber == int(number) {
			respond(c, http.StatusOK, "table retrieved", t)
			return
		}
	}
	fail(c, http.StatusNotFound, "table not found")
}

func (s *Server) scanQR(c *gin.Context) {
	qr := c.Query("qr_code")
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.tableByQR(qr)
	if table == nil {
		fail(c, http.StatusNotFound, "table not found for qr code")
		return
	}

	result := models.ScanResult{TableID: table.ID, Table: *table}
	if open := s.openOrderFor(table.ID); open != nil {
		result.HasOpenOrder = true
		dup := *open
		result.OpenOrder = &dup
	}
	respond(c, http.StatusOK, "qr code scanned", result)
}

func (s *Server) createOrderFromScan(c *gin.Context) {
	if c.Param("a") != "scan" || c.Param("b") != "order" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	qr := c.Query("qr_code")
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.tableByQR(qr)
	if table == nil {
		fail(c, http.StatusNotFound, "table not found for qr code")
		return
	}
	s.openOrderLocked(c, table)
}

func (s *Server) tableByQR(qr string) *models.Table {
	for _, t := range s.tables {
		if t.QRCode == qr {
			return t
		}
	}
	return nil
}

func (s *Server) openOrderFor(tableID int64) *models.Order {
	for _, o := range s.orders {
		if o.TableID == tableID && o.Status != models.StatusClosed {
			return o
		}
	}
	return nil
}

// --- orders ---

func (s *Server) createOrder(c *gin.Context) {
	var req struct {
		TableID int64 `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, exists := s.tables[req.TableID]
	if !exists {
		fail(c, http.StatusNotFound, "table not found")
		return
	}
	s.openOrderLocked(c, table)
}

// openOrderLocked enforces the one-open-order-per-table invariant the
// client's conflict recovery depends on.
func (s *Server) openOrderLocked(c *gin.Context, table *models.Table) {
	if !table.IsActive {
		fail(c, http.StatusUnprocessableEntity, "table is not active")
		return
	}
	if s.openOrderFor(table.ID) != nil {
		fail(c, http.StatusConflict, "an open order already exists for this table")
		return
	}

	now := time.Now()
	order := &models.Order{
		ID:        s.allocID(),
		TableID:   table.ID,
		Status:    models.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[order.ID] = order
	respond(c, http.StatusCreated, "order created", order)
}

func (s *Server) getOrder(c *gin.Context) {
	if c.Param("a") == "search" {
		s.searchOrders(c)
		return
	}
	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, exists := s.orders[id]
	if !exists {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	respond(c, http.StatusOK, "order retrieved", order)
}

func (s *Server) searchOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	respond(c, http.StatusOK, "orders retrieved", models.OrderPage{Orders: out, Total: len(out), Limit: len(out)})
}

func (s *Server) getOrderSub(c *gin.Context) {
	if c.Param("a") == "table" {
		tableID, ok := paramID(c, "b")
		if !ok {
			fail(c, http.StatusBadRequest, "invalid table id")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []models.Order{}
		for _, o := range s.orders {
			if o.TableID == tableID {
				out = append(out, *o)
			}
		}
		respond(c, http.StatusOK, "orders retrieved", models.OrderPage{Orders: out, Total: len(out), Limit: len(out)})
		return
	}

	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order, exists := s.orders[id]
	if !exists {
		fail(c, http.StatusNotFound, "order not found")
		return
	}

	switch c.Param("b") {
	case "items":
		snapshot := s.snapshotLocked(order)
		respond(c, http.StatusOK, "order retrieved", snapshot)
	case "total":
		snapshot := s.snapshotLocked(order)
		respond(c, http.StatusOK, "total calculated", models.OrderTotal{
			OrderID:   order.ID,
			Items:     snapshot.Items,
			Total:     snapshot.Total,
			ItemCount: len(snapshot.Items),
		})
	default:
		fail(c, http.StatusNotFound, "not found")
	}
}

func (s *Server) getOpenOrderByTable(c *gin.Context) {
	if c.Param("a") != "table" || c.Param("c") != "open" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	tableID, ok := paramID(c, "b")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid table id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	open := s.openOrderFor(tableID)
	if open == nil {
		fail(c, http.StatusNotFound, "no open order for table")
		return
	}
	respond(c, http.StatusOK, "order retrieved", open)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order id")
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		fail(c, http.StatusBadRequest, "invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order, exists := s.orders[id]
	if !exists {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	if !order.Status.CanTransitionTo(req.Status) {
		fail(c, http.StatusBadRequest, "status may not move backwards")
		return
	}
	if req.Status == models.StatusClosed {
		s.closeLocked(c, order)
		return
	}

	order.Status = req.Status
	order.UpdatedAt = time.Now()
	respond(c, http.StatusOK, "order updated", order)
}

func (s *Server) putOrderSub(c *gin.Context) {
	if c.Param("a") == "items" {
		s.updateOrderItem(c)
		return
	}
	if c.Param("b") != "close" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, exists := s.orders[id]
	if !exists {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	s.closeLocked(c, order)
}

// closeLocked gates closing on a recorded payment and a confirmed-or-
// later status, per the checkout protocol.
func (s *Server) closeLocked(c *gin.Context, order *models.Order) {
	if order.Status == models.StatusClosed {
		fail(c, http.StatusUnprocessableEntity, "order is already closed")
		return
	}
	if order.Status == models.StatusOpen {
		fail(c, http.StatusUnprocessableEntity, "order must be confirmed before closing")
		return
	}
	if s.paymentForOrder(order.ID) == nil {
		fail(c, http.StatusUnprocessableEntity, "order has no recorded payment")
		return
	}

	now := time.Now()
	order.Status = models.StatusClosed
	order.UpdatedAt = now
	order.ClosedAt = &now
	respond(c, http.StatusOK, "order closed", order)
}

// --- order items ---

func (s *Server) addOrderItem(c *gin.Context) {
	if c.Param("a") != "items" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	var req struct {
		OrderID  int64  `json:"order_id"`
		ItemID   int64  `json:"item_id"`
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Quantity < 1 {
		fail(c, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[req.OrderID]
	if !exists {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	if !order.Status.AllowsItemMutation() {
		fail(c, http.StatusUnprocessableEntity, "order items may no longer be changed")
		return
	}
	menuItem, exists := s.menu[req.ItemID]
	if !exists {
		fail(c, http.StatusNotFound, "menu item not found")
		return
	}

	now := time.Now()

	// Accumulate into an existing line for the same menu item. The client
	// deliberately does not rely on this; it refetches afterwards.
	for _, line := range s.items {
		if line.OrderID == req.OrderID && line.ItemID == req.ItemID {
			line.Quantity += req.Quantity
			line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			if req.Notes != "" {
				line.Notes = req.Notes
			}
			line.UpdatedAt = now
			respond(c, http.StatusOK, "order item updated", line)
			return
		}
	}

	line := &models.OrderItem{
		ID:        s.allocID(),
		OrderID:   req.OrderID,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		UnitPrice: menuItem.Price,
		Subtotal:  menuItem.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items[line.ID] = line
	respond(c, http.StatusCreated, "order item added", line)
}

func (s *Server) updateOrderItem(c *gin.Context) {
	id, ok := paramID(c, "b")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order item id")
		return
	}
	var req struct {
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Quantity < 1 {
		fail(c, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line, exists := s.items[id]
	if !exists {
		fail(c, http.StatusNotFound, "order item not found")
		return
	}
	order := s.orders[line.OrderID]
	if order != nil && !order.Status.AllowsItemMutation() {
		fail(c, http.StatusUnprocessableEntity, "order items may no longer be changed")
		return
	}

	line.Quantity = req.Quantity
	line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.Notes != "" {
		line.Notes = req.Notes
	}
	line.UpdatedAt = time.Now()
	respond(c, http.StatusOK, "order item updated", line)
}

func (s *Server) removeOrderItem(c *gin.Context) {
	if c.Param("a") != "items" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	id, ok := paramID(c, "b")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order item id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line, exists := s.items[id]
	if !exists {
		fail(c, http.StatusNotFound, "order item not found")
		return
	}
	order := s.orders[line.OrderID]
	if order != nil && !order.Status.AllowsItemMutation() {
		fail(c, http.StatusUnprocessableEntity, "order items may no longer be changed")
		return
	}

	delete(s.items, id)
	respond(c, http.StatusOK, "order item removed", nil)
}

func (s *Server) snapshotLocked(order *models.Order) models.OrderWithItems {
	snapshot := models.OrderWithItems{Order: *order}
	total := decimal.Zero
	for _, line := range s.items {
		if line.OrderID == order.ID {
			snapshot.Items = append(snapshot.Items, *line)
			total = total.Add(line.Subtotal)
		}
	}
	snapshot.Total = total
	return snapshot
}

// --- payments ---

func (s *Server) createPayment(c *gin.Context) {
	var req struct {
		OrderID int64                `json:"order_id"`
		Amount  decimal.Decimal      `json:"amount"`
		Method  models.PaymentMethod `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Method.Valid() {
		fail(c, http.StatusBadRequest, "invalid payment payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[req.OrderID]
	if !exists {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	if order.Status == models.StatusOpen {
		fail(c, http.StatusUnprocessableEntity, "order must be confirmed before payment")
		return
	}
	if order.Status == models.StatusClosed {
		fail(c, http.StatusUnprocessableEntity, "order is already closed")
		return
	}
	if s.paymentForOrder(req.OrderID) != nil {
		fail(c, http.StatusConflict, "payment already recorded for this order")
		return
	}

	expected := s.snapshotLocked(order).Total
	if !req.Amount.Equal(expected) {
		fail(c, http.StatusBadRequest, "payment amount does not match order total")
		return
	}

	payment := &models.Payment{
		ID:      s.allocID(),
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
		PaidAt:  time.Now(),
	}
	s.payments[payment.ID] = payment
	respond(c, http.StatusCreated, "payment recorded", payment)
}

func (s *Server) paymentForOrder(orderID int64) *models.Payment {
	for _, p := range s.payments {
		if p.OrderID == orderID {
			return p
		}
	}
	return nil
}

func (s *Server) getPayment(c *gin.Context) {
	id, ok := paramID(c, "a")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, exists := s.payments[id]
	if !exists {
		fail(c, http.StatusNotFound, "payment not found")
		return
	}
	respond(c, http.StatusOK, "payment retrieved", payment)
}

func (s *Server) getPaymentByOrder(c *gin.Context) {
	if c.Param("a") != "order" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	orderID, ok := paramID(c, "b")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid order id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payment := s.paymentForOrder(orderID)
	if payment == nil {
		fail(c, http.StatusNotFound, "payment not found for order")
		return
	}
	respond(c, http.StatusOK, "payment retrieved", payment)
}

// --- revenue ---

func (s *Server) getRevenue(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c.Param("a") {
	case "daily":
		date := c.Query("date")
		total := decimal.Zero
		count := 0
		for _, p := range s.payments {
			if p.PaidAt.Format("2006-01-02") == date {
				total = total.Add(p.Amount)
				count++
			}
		}
		respond(c, http.StatusOK, "revenue retrieved", models.DailyRevenue{
			Date: date, TotalRevenue: total, TotalOrders: count,
		})
	case "monthly":
		year, _ := strconv.Atoi(c.Query("year"))
		month, _ := strconv.Atoi(c.Query("month"))
		total := decimal.Zero
		byDay := map[string]models.DailyRevenue{}
		for _, p := range s.payments {
			if p.PaidAt.Year() != year || int(p.PaidAt.Month()) != month {
				continue
			}
			total = total.Add(p.Amount)
			date := p.PaidAt.Format("2006-01-02")
			d := byDay[date]
			d.Date = date
			d.TotalRevenue = d.TotalRevenue.Add(p.Amount)
			d.TotalOrders++
			byDay[date] = d
		}
		breakdown := make([]models.DailyRevenue, 0, len(byDay))
		for _, d := range byDay {
			breakdown = append(breakdown, d)
		}
		respond(c, http.StatusOK, "revenue retrieved", models.MonthlyRevenue{
			Year: year, Month: month, TotalRevenue: total, DailyBreakdown: breakdown,
		})
	case "total":
		total := decimal.Zero
		count := 0
		for _, p := range s.payments {
			total = total.Add(p.Amount)
			count++
		}
		respond(c, http.StatusOK, "revenue retrieved", models.RevenueTotal{
			StartDate:    c.Query("start_date"),
			EndDate:      c.Query("end_date"),
			TotalRevenue: total,
			TotalOrders:  count,
		})
	default:
		fail(c, http.StatusNotFound, "not found")
	}
}

func (s *Server) getRevenueRange(c *gin.Context) {
	if c.Param("a") != "daily" || c.Param("b") != "range" {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	start, end := c.Query("start_date"), c.Query("end_date")

	s.mu.Lock()
	defer s.mu.Unlock()

	byDay := map[string]models.DailyRevenue{}
	for _, p := range s.payments {
		date := p.PaidAt.Format("2006-01-02")
		if date < start || date > end {
			continue
		}
		d := byDay[date]
		d.Date = date
		d.TotalRevenue = d.TotalRevenue.Add(p.Amount)
		d.TotalOrders++
		byDay[date] = d
	}
	out := make([]models.DailyRevenue, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, d)
	}
	respond(c, http.StatusOK, "revenue retrieved", out)
}
