// Package route models delivery lanes and the daily hours they operate.
package route
