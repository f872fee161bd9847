package main

// @title POS Ledger API
// @version 1.0
// @description Inventory ledger and idempotent order placement for point-of-sale locations.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Inventory
// @tag.description Stock levels per location

// @tag.name Orders
// @tag.description Order placement and lifecycle

// @tag.name Health
// @tag.description Health check endpoints
