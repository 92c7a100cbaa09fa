// Package shipment defines the shipment status vocabulary, the table of legal
// transitions between statuses and the status catalog entity.
//
// The transition table is plain data: IsAllowed and AllowedFrom are pure
// lookups with no side effects, and anything not listed is rejected. Effects
// of a transition (stock restoration on CANCELLED, delivery stamping on
// DELIVERED) belong to the order lifecycle commands, not to this package.
package shipment
