package http

// AdjustQuantity godoc
// @Summary Adjust stock
// @Description Add a signed delta to the stock of an item at a location. Positive deltas create the record when absent; negative deltas fail with 409 when stock would go below zero.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param location_id path string true "Location ID"
// @Param request body object{item_id=string,delta=string} true "Adjustment"
// @Success 200 {object} object{success=bool,message=string,data=InventoryResponse}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string,data=object{item_id=string}}
// @Router /api/locations/{location_id}/inventory/adjust [post]
func (h *InventoryHandler) AdjustQuantityDoc() {}

// GetInventory godoc
// @Summary Get stock of one item
// @Tags Inventory
// @Produce json
// @Param location_id path string true "Location ID"
// @Param item_id path string true "Item ID"
// @Success 200 {object} object{success=bool,data=InventoryResponse}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/locations/{location_id}/inventory/{item_id} [get]
func (h *InventoryHandler) GetInventoryDoc() {}

// ListInventory godoc
// @Summary List stock at a location
// @Description Records ordered by item id
// @Tags Inventory
// @Produce json
// @Param location_id path string true "Location ID"
// @Param limit query int false "Limit (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=[]InventoryResponse}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/locations/{location_id}/inventory [get]
func (h *InventoryHandler) ListInventoryDoc() {}
