package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedShipmentStatuses_IsIdempotent(t *testing.T) {
	c := newCatalog(t, 1, 0, 1)
	h := commands.NewSeedShipmentStatusesCommandHandler(c.store, discard)

	statuses, err := h.Handle(t.Context())

	require.NoError(t, err)
	require.Len(t, statuses, 6)
	assert.Len(t, c.store.snapshot().statuses, 6)
	for i, s := range statuses {
		assert.Equal(t, shipment.AllStatusNames()[i], s.Name())
		assert.Equal(t, c.statuses[s.Name()], s.ID())
	}
}

func TestCreateClient_DuplicateEmail(t *testing.T) {
	c := newCatalog(t, 1, 0, 1)
	cmd, err := commands.NewCreateClientCommand("Bruno", "  ANA@example.com ", "+5511999999999", "Av. Paulista 1000")
	require.NoError(t, err)
	h := commands.NewCreateClientCommandHandler(c.store, discard)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	assert.Len(t, c.store.snapshot().clients, 1)
}

func TestCreateCommands_RejectMissingFields(t *testing.T) {
	_, err := commands.NewCreateClientCommand("", "a@b.co", "", "street 1")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateProductCommand("SKU", "Widget", "abc", 1, nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCreateProductCommand("SKU", "Widget", "-1", 1, nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewCreateCarrierCommand("Van", " ", "", "", 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateRouteCommand("R-9", "A", "B", route.OperatingHours{Start: 10, End: 9}, kernel.NewUUID())
	require.Error(t, err)

	_, err = commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, commands.OrderOptions{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestCreateProduct_DefaultsAndOpeningMovement(t *testing.T) {
	c := newCatalog(t, 1, 0, 1)
	cmd, err := commands.NewCreateProductCommand("sku-9", "Gadget", "19.999", 12, nil, "toys")
	require.NoError(t, err)
	h := commands.NewCreateProductCommandHandler(c.store, discard)

	created, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "SKU-9", created.Code())
	assert.Equal(t, product.DefaultStockMinimum, created.StockMinimum())
	assert.Equal(t, "20.00", created.Price().String())

	var opening []product.Movement
	for _, m := range c.store.snapshot().movements {
		if m.ProductID.IsEqual(created.ID()) {
			opening = append(opening, m)
		}
	}
	require.Len(t, opening, 1)
	assert.Equal(t, 12, opening[0].Delta)
	assert.Equal(t, product.ReasonManualAdjustment, opening[0].Reason)
}

func TestCreateRoute_UnknownCarrier(t *testing.T) {
	c := newCatalog(t, 1, 0, 1)
	cmd, err := commands.NewCreateRouteCommand("R-2", "Depot", "Airport", route.OperatingHours{Start: 6, End: 22}, kernel.NewUUID())
	require.NoError(t, err)
	h := commands.NewCreateRouteCommandHandler(c.store, discard)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Len(t, c.store.snapshot().routes, 1)
}

func TestRemoveEntity(t *testing.T) {
	remove := func(t *testing.T, c catalog, kind commands.EntityKind, id kernel.UUID) (commands.Removal, error) {
		t.Helper()
		cmd, err := commands.NewRemoveEntityCommand(kind, id)
		require.NoError(t, err)
		h := commands.NewRemoveEntityCommandHandler(c.store, discard)
		return h.Handle(t.Context(), cmd)
	}

	t.Run("unreferenced_rows_are_deleted", func(t *testing.T) {
		c := newCatalog(t, 0, 0, 1)

		removal, err := remove(t, c, commands.KindClient, c.client)
		require.NoError(t, err)
		assert.False(t, removal.Deactivated)

		removal, err = remove(t, c, commands.KindRoute, c.route)
		require.NoError(t, err)
		assert.False(t, removal.Deactivated)

		removal, err = remove(t, c, commands.KindCarrier, c.carrier)
		require.NoError(t, err)
		assert.False(t, removal.Deactivated)

		removal, err = remove(t, c, commands.KindProduct, c.product)
		require.NoError(t, err)
		assert.False(t, removal.Deactivated)

		state := c.store.snapshot()
		assert.Empty(t, state.clients)
		assert.Empty(t, state.routes)
		assert.Empty(t, state.carriers)
		assert.Empty(t, state.products)
	})

	t.Run("referenced_rows_are_deactivated", func(t *testing.T) {
		c := newCatalog(t, 5, 0, 1)
		c.mustCreateOrder(t, 1)

		for kind, id := range map[commands.EntityKind]kernel.UUID{
			commands.KindClient:         c.client,
			commands.KindProduct:        c.product,
			commands.KindCarrier:        c.carrier,
			commands.KindRoute:          c.route,
			commands.KindShipmentStatus: c.statuses[shipment.Pending],
		} {
			removal, err := remove(t, c, kind, id)
			require.NoError(t, err, kind)
			assert.True(t, removal.Deactivated, kind)
		}

		state := c.store.snapshot()
		p := state.products[c.product.String()]
		assert.False(t, p.IsActive())
		cr := state.carriers[c.carrier.String()]
		assert.False(t, cr.IsActive())
		assert.Len(t, state.orders, 1)
	})

	t.Run("missing_row", func(t *testing.T) {
		c := newCatalog(t, 0, 0, 1)

		_, err := remove(t, c, commands.KindRoute, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unknown_kind", func(t *testing.T) {
		_, err := commands.NewRemoveEntityCommand("warehouse", kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAdjustProductStock(t *testing.T) {
	adjust := func(t *testing.T, c catalog, quantity int, op string) (commands.StockAdjustment, error) {
		t.Helper()
		cmd, err := commands.NewAdjustProductStockCommand(c.product, quantity, op)
		require.NoError(t, err)
		h := commands.NewAdjustProductStockCommandHandler(c.store, discard)
		return h.Handle(t.Context(), cmd)
	}

	c := newCatalog(t, 10, 3, 1)

	res, err := adjust(t, c, 5, "add")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Before)
	assert.Equal(t, 15, res.After)
	assert.False(t, res.LowStock)

	res, err = adjust(t, c, 12, "SUBTRACT")
	require.NoError(t, err)
	assert.Equal(t, 3, res.After)
	assert.True(t, res.LowStock)

	_, err = adjust(t, c, 4, "SUBTRACT")
	var stockErr *product.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 3, c.stock(c.product))

	_, err = commands.NewAdjustProductStockCommand(c.product, 1, "MULTIPLY")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = commands.NewAdjustProductStockCommand(c.product, 0, "ADD")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestHandlers_RejectUnconstructedCommands(t *testing.T) {
	store := newMemoryStore()
	ctx := t.Context()

	create := commands.NewCreateOrderCommandHandler(store, discard)
	_, err := create.Handle(ctx, commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)

	change := commands.NewChangeOrderStatusCommandHandler(store, discard)
	_, err = change.Handle(ctx, commands.ChangeOrderStatusCommand{})
	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)

	update := commands.NewUpdateOrderCommandHandler(store, discard)
	_, err = update.Handle(ctx, commands.UpdateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrUpdateOrderCommandIsNotConstructed)

	del := commands.NewDeleteOrderCommandHandler(store, discard)
	_, err = del.Handle(ctx, commands.DeleteOrderCommand{})
	require.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)

	assert.Zero(t, store.commits)
}
