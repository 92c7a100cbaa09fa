package product_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidget(t *testing.T, stock int) *product.Product {
	t.Helper()
	price, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), " sku-1 ", " Widget ", price, stock, product.DefaultStockMinimum, "tools")
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("normalizes code and name", func(t *testing.T) {
		p := newWidget(t, 5)

		require.NoError(t, p.Validate())
		assert.Equal(t, "SKU-1", p.Code())
		assert.Equal(t, "Widget", p.Name())
		assert.Equal(t, "10.00", p.Price().String())
		assert.Equal(t, 5, p.Stock())
		assert.Equal(t, 5, p.StockMinimum())
		assert.Equal(t, "tools", p.Category())
		assert.True(t, p.IsActive())
	})

	t.Run("rejects invalid fields together", func(t *testing.T) {
		p, err := product.NewProduct(kernel.UUID{}, "", "ab", kernel.ZeroMoney(), -1, -1, "")

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "code")
		assert.Contains(t, err.Error(), "name length")
		assert.Contains(t, err.Error(), "stockMinimum")
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("decrements stock", func(t *testing.T) {
		p := newWidget(t, 5)

		before, err := p.Reserve(3)

		require.NoError(t, err)
		assert.Equal(t, 5, before)
		assert.Equal(t, 2, p.Stock())
	})

	t.Run("exact stock is allowed", func(t *testing.T) {
		p := newWidget(t, 3)

		_, err := p.Reserve(3)

		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("shortfall leaves stock untouched", func(t *testing.T) {
		p := newWidget(t, 2)

		_, err := p.Reserve(3)

		require.ErrorIs(t, err, product.ErrInsufficientStock)
		var shortfall *product.InsufficientStockError
		require.True(t, errors.As(err, &shortfall))
		assert.Equal(t, 2, shortfall.Available)
		assert.Equal(t, 3, shortfall.Requested)
		assert.Equal(t, 2, p.Stock())
	})

	t.Run("non positive quantity", func(t *testing.T) {
		p := newWidget(t, 2)

		_, err := p.Reserve(0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestProduct_Release(t *testing.T) {
	p := newWidget(t, 2)

	before, err := p.Release(3)

	require.NoError(t, err)
	assert.Equal(t, 2, before)
	assert.Equal(t, 5, p.Stock())

	_, err = p.Release(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestProduct_Rebook(t *testing.T) {
	t.Run("grow within held units plus stock", func(t *testing.T) {
		// order holds 5, shelf has 1: 6 units are available to the order
		p := newWidget(t, 1)

		_, err := p.Rebook(5, 6)

		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("shrink returns units", func(t *testing.T) {
		p := newWidget(t, 1)

		_, err := p.Rebook(5, 2)

		require.NoError(t, err)
		assert.Equal(t, 4, p.Stock())
	})

	t.Run("shortfall reports stock plus held units", func(t *testing.T) {
		p := newWidget(t, 0)

		_, err := p.Rebook(2, 5)

		var shortfall *product.InsufficientStockError
		require.True(t, errors.As(err, &shortfall))
		assert.Equal(t, 2, shortfall.Available)
		assert.Equal(t, 5, shortfall.Requested)
		assert.Equal(t, 0, p.Stock())
	})
}

func TestProduct_AdjustStock(t *testing.T) {
	p := newWidget(t, 4)

	_, err := p.AdjustStock(-4)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock())

	_, err = p.AdjustStock(-1)
	require.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 0, p.Stock())

	_, err = p.AdjustStock(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestProduct_IsLowStock(t *testing.T) {
	assert.True(t, newWidget(t, 5).IsLowStock())
	assert.False(t, newWidget(t, 6).IsLowStock())
}

func TestProduct_EnsureActive(t *testing.T) {
	p := newWidget(t, 1)
	require.NoError(t, p.EnsureActive())

	p.Deactivate()

	err := p.EnsureActive()
	require.ErrorIs(t, err, product.ErrProductIsInactive)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewMovement(t *testing.T) {
	p := newWidget(t, 5)
	orderID := kernel.NewUUID()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	before, err := p.Reserve(2)
	require.NoError(t, err)

	m, err := product.NewMovement(p, before, product.ReasonOrderCreated, &orderID, now)

	require.NoError(t, err)
	assert.True(t, m.ProductID.IsEqual(p.ID()))
	assert.True(t, m.OrderID.IsEqual(orderID))
	assert.Equal(t, -2, m.Delta)
	assert.Equal(t, 5, m.StockBefore)
	assert.Equal(t, 3, m.StockAfter)
	assert.True(t, now.Equal(m.CreatedAt))

	_, err = product.NewMovement(p, p.Stock(), product.ReasonOrderCreated, nil, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = product.NewMovement(p, before, "RESTOCK", nil, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
