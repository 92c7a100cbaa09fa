// Package order provides the Order aggregate, the root of the logistics
// lifecycle engine.
//
// An order is created in PENDING, holding a stock reservation on its product
// and a capacity slot on its carrier. From there it follows the shipment
// transition table:
//
//	PENDING -> PREPARATION -> IN_TRANSIT -> DELIVERED
//	                              └──> NOT_DELIVERED -> IN_TRANSIT
//	PENDING, PREPARATION -> CANCELLED
//
// Key business rules:
//   - only PENDING and PREPARATION orders may be edited
//   - only PENDING and CANCELLED orders may be deleted
//   - status notes accumulate, one line per change
//   - reaching DELIVERED stamps the actual delivery time
//
// Stock and carrier capacity live in other aggregates; the order only
// exposes what the commands need to keep them consistent (HoldsStock,
// Quantity, CarrierID).
package order
