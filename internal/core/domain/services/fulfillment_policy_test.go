package services_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	client  *client.Client
	product *product.Product
	carrier *carrier.Carrier
	route   *route.Route
	pending order.StatusRef
}

func newFixture(t *testing.T, stock, maxOrders int) fixture {
	t.Helper()
	c, err := client.NewClient(kernel.NewUUID(), "Ana", "ana@example.com", "12345678", "Main St 1")
	require.NoError(t, err)
	price, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), "SKU-1", "Widget", price, stock, 1, "tools")
	require.NoError(t, err)
	cr, err := carrier.NewCarrier(kernel.NewUUID(), "Fast Lane", "DOC-1", "", "van", maxOrders)
	require.NoError(t, err)
	r, err := route.NewRoute(kernel.NewUUID(), "R-1", "Depot", "Downtown", route.OperatingHours{Start: 8, End: 18}, cr.ID())
	require.NoError(t, err)
	return fixture{
		client:  c,
		product: p,
		carrier: cr,
		route:   r,
		pending: order.StatusRef{ID: kernel.NewUUID(), Name: shipment.Pending},
	}
}

func (f fixture) placement(quantity, load int) services.Placement {
	return services.Placement{
		Client:      f.client,
		Product:     f.product,
		Carrier:     f.carrier,
		Route:       f.route,
		Pending:     f.pending,
		CarrierLoad: load,
		Quantity:    quantity,
		OrderDate:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFulfillmentPolicy_Place(t *testing.T) {
	policy := services.NewFulfillmentPolicy()

	t.Run("reserves stock and prices the order", func(t *testing.T) {
		f := newFixture(t, 5, 10)

		o, change, err := policy.Place(kernel.NewUUID(), f.placement(3, 0))

		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, o.Status().Name)
		assert.Equal(t, "30.00", o.Total().String())
		assert.Equal(t, 2, f.product.Stock())
		assert.Equal(t, 5, change.Before)
		assert.Same(t, f.product, change.Product)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		f := newFixture(t, 2, 10)

		_, _, err := policy.Place(kernel.NewUUID(), f.placement(3, 0))

		var shortfall *product.InsufficientStockError
		require.True(t, errors.As(err, &shortfall))
		assert.Equal(t, 2, shortfall.Available)
		assert.Equal(t, 3, shortfall.Requested)
		assert.Equal(t, 2, f.product.Stock())
	})

	t.Run("carrier at capacity keeps stock", func(t *testing.T) {
		f := newFixture(t, 5, 1)

		_, _, err := policy.Place(kernel.NewUUID(), f.placement(1, 1))

		var unavailable *carrier.UnavailableError
		require.True(t, errors.As(err, &unavailable))
		assert.Equal(t, 1, unavailable.ActiveCount)
		assert.Equal(t, 1, unavailable.Max)
		assert.Equal(t, 5, f.product.Stock())
	})

	t.Run("stock is checked before capacity", func(t *testing.T) {
		f := newFixture(t, 0, 1)

		_, _, err := policy.Place(kernel.NewUUID(), f.placement(1, 1))

		require.ErrorIs(t, err, product.ErrInsufficientStock)
	})

	t.Run("inactive parties are rejected", func(t *testing.T) {
		f := newFixture(t, 5, 10)
		f.client.Deactivate()
		f.route.Deactivate()

		_, _, err := policy.Place(kernel.NewUUID(), f.placement(1, 0))

		require.ErrorIs(t, err, client.ErrClientIsInactive)
		require.ErrorIs(t, err, route.ErrRouteIsInactive)
		assert.Equal(t, 5, f.product.Stock())
	})

	t.Run("zero quantity", func(t *testing.T) {
		f := newFixture(t, 5, 10)

		_, _, err := policy.Place(kernel.NewUUID(), f.placement(0, 0))

		require.Error(t, err)
		assert.Equal(t, 5, f.product.Stock())
	})
}

func TestFulfillmentPolicy_Rebook(t *testing.T) {
	policy := services.NewFulfillmentPolicy()

	place := func(t *testing.T, f fixture, quantity int) *order.Order {
		t.Helper()
		o, _, err := policy.Place(kernel.NewUUID(), f.placement(quantity, 0))
		require.NoError(t, err)
		return o
	}

	t.Run("same product grows within held plus stock", func(t *testing.T) {
		f := newFixture(t, 6, 10)
		o := place(t, f, 5) // stock 1

		changes, err := policy.Rebook(o, f.product, f.product, 6)

		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, 1, changes[0].Before)
		assert.Equal(t, 0, f.product.Stock())
		assert.Equal(t, 6, o.Quantity())
		assert.Equal(t, "60.00", o.Total().String())
	})

	t.Run("same product shortfall reports held plus stock", func(t *testing.T) {
		f := newFixture(t, 6, 10)
		o := place(t, f, 5)

		_, err := policy.Rebook(o, f.product, f.product, 7)

		var shortfall *product.InsufficientStockError
		require.True(t, errors.As(err, &shortfall))
		assert.Equal(t, 6, shortfall.Available)
		assert.Equal(t, 7, shortfall.Requested)
		assert.Equal(t, 1, f.product.Stock())
		assert.Equal(t, 5, o.Quantity())
	})

	t.Run("unchanged quantity is a no-op", func(t *testing.T) {
		f := newFixture(t, 6, 10)
		o := place(t, f, 5)

		changes, err := policy.Rebook(o, f.product, f.product, 5)

		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("product swap releases and reserves", func(t *testing.T) {
		f := newFixture(t, 6, 10)
		o := place(t, f, 5)
		price, _ := kernel.MoneyFromString("1.50")
		other, err := product.NewProduct(kernel.NewUUID(), "SKU-2", "Gadget", price, 4, 1, "tools")
		require.NoError(t, err)

		changes, err := policy.Rebook(o, f.product, other, 4)

		require.NoError(t, err)
		require.Len(t, changes, 2)
		assert.Equal(t, 6, f.product.Stock())
		assert.Equal(t, 0, other.Stock())
		assert.True(t, o.ProductID().IsEqual(other.ID()))
		assert.Equal(t, "6.00", o.Total().String())
	})

	t.Run("product swap shortfall touches nothing", func(t *testing.T) {
		f := newFixture(t, 6, 10)
		o := place(t, f, 5)
		other, err := product.NewProduct(kernel.NewUUID(), "SKU-2", "Gadget", kernel.ZeroMoney(), 1, 1, "tools")
		require.NoError(t, err)

		_, err = policy.Rebook(o, f.product, other, 2)

		require.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.Equal(t, 1, f.product.Stock())
		assert.Equal(t, 1, other.Stock())
	})

	t.Run("not editable once in transit", func(t *testing.T) {
		f := newFixture(t, 6, 10)
		o := place(t, f, 1)
		for _, name := range []shipment.StatusName{shipment.Preparation, shipment.InTransit} {
			_, err := o.ChangeStatus(order.StatusRef{ID: kernel.NewUUID(), Name: name}, "", time.Now())
			require.NoError(t, err)
		}

		_, err := policy.Rebook(o, f.product, f.product, 2)

		require.ErrorIs(t, err, order.ErrOrderNotEditable)
	})
}

func TestFulfillmentPolicy_AcceptCarrier(t *testing.T) {
	policy := services.NewFulfillmentPolicy()
	f := newFixture(t, 1, 2)

	require.NoError(t, policy.AcceptCarrier(f.carrier, 1))
	require.ErrorIs(t, policy.AcceptCarrier(f.carrier, 2), carrier.ErrCarrierUnavailable)

	f.carrier.Deactivate()
	require.ErrorIs(t, policy.AcceptCarrier(f.carrier, 0), carrier.ErrCarrierIsInactive)
}

func TestLockOrder(t *testing.T) {
	a, _ := kernel.UUIDFromString("00000000-0000-4000-8000-00000000000a")
	b, _ := kernel.UUIDFromString("00000000-0000-4000-8000-00000000000b")

	got := services.LockOrder(b, a, b)

	require.Len(t, got, 2)
	assert.True(t, got[0].IsEqual(a))
	assert.True(t, got[1].IsEqual(b))
}
