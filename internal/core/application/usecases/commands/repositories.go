// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductionRepoFactory provides access to the production order repository within a transaction.
	ProductionRepoFactory interface {
		ProductionOrderRepository() ports.ProductionOrderRepository
	}

	// CapacityRepoFactory provides access to the capacity repository within a transaction.
	CapacityRepoFactory interface {
		CapacityRepository() ports.CapacityRepository
	}

	// PresenceRepoFactory provides access to the presence repository within a transaction.
	PresenceRepoFactory interface {
		PresenceRepository() ports.PresenceRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProductionUoW manages transactions for production-order-only operations.
	ProductionUoW interface {
		TxManager
		ProductionRepoFactory
	}

	// ProductionUoWFactory creates new production unit of work instances.
	ProductionUoWFactory interface {
		Create() ProductionUoW
	}

	// CapacityUoW manages transactions for capacity recalculation and alerts.
	CapacityUoW interface {
		TxManager
		CapacityRepoFactory
	}

	// CapacityUoWFactory creates new capacity unit of work instances.
	CapacityUoWFactory interface {
		Create() CapacityUoW
	}

	// PresenceUoW manages transactions for heartbeat updates.
	PresenceUoW interface {
		TxManager
		PresenceRepoFactory
	}

	// PresenceUoWFactory creates new presence unit of work instances.
	PresenceUoWFactory interface {
		Create() PresenceUoW
	}
)
