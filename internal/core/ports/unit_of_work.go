package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Repositories obtained
// after Begin share its transaction; nothing is visible to other transactions
// before Commit.
type UnitOfWork interface {
	// Begin starts a read-committed transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	Rollback(ctx context.Context) error

	ClientRepository() ClientRepository
	ProductRepository() ProductRepository
	CarrierRepository() CarrierRepository
	RouteRepository() RouteRepository
	ShipmentStatusRepository() ShipmentStatusRepository
	OrderRepository() OrderRepository
}
