package http

// CreateOrder godoc
// @Summary Create order
// @Description Reserves stock for every line and records the order. Send an Idempotency-Key header to make retries safe: a repeated key returns the original order with 200 and X-Idempotent-Replay: true.
// @Tags Orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-chosen idempotency key"
// @Param request body object{location_id=string,user_id=string,items=[]object{item_id=string,quantity=string,unit_price=string}} true "Order"
// @Success 201 {object} object{success=bool,message=string,data=OrderResponse}
// @Success 200 {object} object{success=bool,message=string,data=OrderResponse} "Replayed"
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string,data=object{item_id=string}} "Insufficient stock, or key in flight (Retry-After: 1)"
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrderDoc() {}

// GetOrder godoc
// @Summary Get order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (uuid)"
// @Success 200 {object} object{success=bool,data=OrderResponse}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrderDoc() {}

// ListOrders godoc
// @Summary List orders
// @Description Newest first
// @Tags Orders
// @Produce json
// @Param location_id query string false "Location filter"
// @Param user_id query string false "User filter"
// @Param status query string false "Status filter" Enums(created, confirmed, preparing, ready, completed, cancelled)
// @Param skip query int false "Offset"
// @Param limit query int false "Limit (default 20, max 100)"
// @Success 200 {object} object{success=bool,data=[]OrderResponse}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}

// UpdateStatus godoc
// @Summary Update order status
// @Description Any status may follow any other
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (uuid)"
// @Param request body object{status=string} true "New status"
// @Success 200 {object} object{success=bool,message=string,data=OrderResponse}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatusDoc() {}
