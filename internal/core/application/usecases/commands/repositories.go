// Package commands contains the write side of the logistics service: the
// order lifecycle engine and the catalog maintenance commands.
//
// Every command follows the same shape: a constructor validates input into an
// immutable command value, and a handler runs it inside exactly one
// transaction through withTransaction. A handler either commits all of its
// writes (order rows, stock, ledger) or none of them.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces give handlers transaction control plus repositories
// bound to that transaction.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	ShipmentStatusRepoFactory interface {
		ShipmentStatusRepository() ports.ShipmentStatusRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UoW spans every aggregate a command may touch. Lifecycle commands need
	// orders, products, carriers and the status catalog in one transaction.
	//
	// Example:
	//   created, err := withTransaction(ctx, factory, "CreateOrder",
	//       func(ctx context.Context, uow UoW) (*order.Order, error) {
	//           carrier, err := uow.CarrierRepository().GetForUpdate(ctx, carrierID)
	//           // ...
	//       })
	UoW interface {
		TxManager
		ClientRepoFactory
		ProductRepoFactory
		CarrierRepoFactory
		RouteRepoFactory
		ShipmentStatusRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates a new unit of work per command.
	UoWFactory interface {
		Create() UoW
	}
)
