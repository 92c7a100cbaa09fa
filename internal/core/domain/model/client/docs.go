// Package client models the customers that place orders.
package client
