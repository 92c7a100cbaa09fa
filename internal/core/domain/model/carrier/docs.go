// Package carrier models the drivers and transport companies that move orders.
package carrier
