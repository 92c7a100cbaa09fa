// Package kernel holds the value objects shared by every aggregate of the
// logistics domain.
//
// The package includes:
//   - UUID: identifier of clients, products, carriers, routes, shipment statuses and orders
//   - Money: a non-negative decimal amount with two fractional digits for prices and totals
//
// Both are immutable; their zero values are either invalid (UUID) or equal to
// an explicit constructor result (Money is 0.00).
package kernel
