package commands_test

import (
	"context"
	"log/slog"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

// catalog is a seeded store with one client, product, carrier and route.
type catalog struct {
	store    *memoryStore
	client   kernel.UUID
	product  kernel.UUID
	carrier  kernel.UUID
	route    kernel.UUID
	statuses map[shipment.StatusName]kernel.UUID
}

func newCatalog(t *testing.T, stock, stockMinimum, maxOrders int) catalog {
	t.Helper()
	ctx := t.Context()
	store := newMemoryStore()

	seed := commands.NewSeedShipmentStatusesCommandHandler(store, discard)
	statuses, err := seed.Handle(ctx)
	require.NoError(t, err)
	byName := make(map[shipment.StatusName]kernel.UUID, len(statuses))
	for _, s := range statuses {
		byName[s.Name()] = s.ID()
	}

	c := catalog{store: store, statuses: byName}
	c.client = c.addClient(t, "ana@example.com")
	c.product = c.addProduct(t, "SKU-1", "10.00", stock, stockMinimum)
	c.carrier = c.addCarrier(t, "DOC-1", maxOrders)
	c.route = c.addRoute(t, "R-1", c.carrier)
	return c
}

func (c catalog) addClient(t *testing.T, email string) kernel.UUID {
	t.Helper()
	cmd, err := commands.NewCreateClientCommand("Ana Souza", email, "12345678", "Rua Central 100")
	require.NoError(t, err)
	h := commands.NewCreateClientCommandHandler(c.store, discard)
	created, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created.ID()
}

func (c catalog) addProduct(t *testing.T, code, price string, stock, stockMinimum int) kernel.UUID {
	t.Helper()
	cmd, err := commands.NewCreateProductCommand(code, "Widget "+code, price, stock, &stockMinimum, "tools")
	require.NoError(t, err)
	h := commands.NewCreateProductCommandHandler(c.store, discard)
	created, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created.ID()
}

func (c catalog) addCarrier(t *testing.T, document string, maxOrders int) kernel.UUID {
	t.Helper()
	cmd, err := commands.NewCreateCarrierCommand("Fast Lane", document, "", "van", maxOrders)
	require.NoError(t, err)
	h := commands.NewCreateCarrierCommandHandler(c.store, discard)
	created, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created.ID()
}

func (c catalog) addRoute(t *testing.T, code string, carrierID kernel.UUID) kernel.UUID {
	t.Helper()
	cmd, err := commands.NewCreateRouteCommand(code, "Depot", "Downtown", route.OperatingHours{Start: 0, End: 23}, carrierID)
	require.NoError(t, err)
	h := commands.NewCreateRouteCommandHandler(c.store, discard)
	created, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created.ID()
}

func (c catalog) createOrder(ctx context.Context, quantity int) (*order.Order, error) {
	return c.createOrderWith(ctx, c.product, c.carrier, quantity)
}

func (c catalog) createOrderWith(ctx context.Context, productID, carrierID kernel.UUID, quantity int) (*order.Order, error) {
	cmd, err := commands.NewCreateOrderCommand(c.client, productID, carrierID, c.route, quantity, commands.OrderOptions{})
	if err != nil {
		return nil, err
	}
	h := commands.NewCreateOrderCommandHandler(c.store, discard)
	return h.Handle(ctx, cmd)
}

func (c catalog) mustCreateOrder(t *testing.T, quantity int) *order.Order {
	t.Helper()
	o, err := c.createOrder(t.Context(), quantity)
	require.NoError(t, err)
	return o
}

func (c catalog) changeStatus(ctx context.Context, orderID kernel.UUID, status shipment.StatusName) (commands.StatusChange, error) {
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, string(status), "")
	if err != nil {
		return commands.StatusChange{}, err
	}
	h := commands.NewChangeOrderStatusCommandHandler(c.store, discard)
	return h.Handle(ctx, cmd)
}

func (c catalog) walk(t *testing.T, orderID kernel.UUID, path ...shipment.StatusName) {
	t.Helper()
	for _, next := range path {
		_, err := c.changeStatus(t.Context(), orderID, next)
		require.NoError(t, err)
	}
}

func (c catalog) updateOrder(ctx context.Context, orderID kernel.UUID, patch commands.OrderPatch) (*order.Order, error) {
	cmd, err := commands.NewUpdateOrderCommand(orderID, patch)
	if err != nil {
		return nil, err
	}
	h := commands.NewUpdateOrderCommandHandler(c.store, discard)
	return h.Handle(ctx, cmd)
}

func (c catalog) deleteOrder(ctx context.Context, orderID kernel.UUID) (kernel.UUID, error) {
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return kernel.UUID{}, err
	}
	h := commands.NewDeleteOrderCommandHandler(c.store, discard)
	return h.Handle(ctx, cmd)
}

func (c catalog) stock(id kernel.UUID) int {
	p := c.store.product(id)
	return p.Stock()
}

func ptr[T any](v T) *T {
	return &v
}
