// Package product models the sellable catalog and its stock.
//
// A Product never holds negative stock. Reservations for orders and manual
// adjustments fail with an InsufficientStockError (matching
// ErrInsufficientStock) instead of clamping. Every accepted change is
// described by a Movement so the adapter layer can keep a stock ledger.
package product
