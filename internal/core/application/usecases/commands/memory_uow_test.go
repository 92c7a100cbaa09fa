package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// memoryState is one consistent view of every table. Aggregates are stored by
// value, so mutating a loaded aggregate never leaks into the store before
// Update is called.
type memoryState struct {
	clients   map[string]client.Client
	products  map[string]product.Product
	carriers  map[string]carrier.Carrier
	routes    map[string]route.Route
	statuses  map[string]shipment.ShipmentStatus
	orders    map[string]order.Order
	movements []product.Movement
}

func (s memoryState) clone() memoryState {
	return memoryState{
		clients:   maps.Clone(s.clients),
		products:  maps.Clone(s.products),
		carriers:  maps.Clone(s.carriers),
		routes:    maps.Clone(s.routes),
		statuses:  maps.Clone(s.statuses),
		orders:    maps.Clone(s.orders),
		movements: slices.Clone(s.movements),
	}
}

// memoryStore is an in-memory database whose transactions are serialized by
// a single lock, standing in for the row locks of the real adapter.
type memoryStore struct {
	mu        sync.Mutex
	committed memoryState

	commits   int
	rollbacks int

	// failCommit, when set, makes the next Commit fail with it.
	failCommit error
	// failMovement, when set, makes RecordMovement fail with it.
	failMovement error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{committed: memoryState{
		clients:  map[string]client.Client{},
		products: map[string]product.Product{},
		carriers: map[string]carrier.Carrier{},
		routes:   map[string]route.Route{},
		statuses: map[string]shipment.ShipmentStatus{},
		orders:   map[string]order.Order{},
	}}
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

// snapshot returns a copy of the committed state for assertions.
func (s *memoryStore) snapshot() memoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.clone()
}

func (s *memoryStore) product(id kernel.UUID) product.Product {
	return s.snapshot().products[id.String()]
}

func (s *memoryStore) order(id kernel.UUID) (order.Order, bool) {
	o, ok := s.snapshot().orders[id.String()]
	return o, ok
}

type memoryUoW struct {
	store *memoryStore
	tx    *memoryState
}

func (u *memoryUoW) Begin(_ context.Context) error {
	u.store.mu.Lock()
	state := u.store.committed.clone()
	u.tx = &state
	return nil
}

func (u *memoryUoW) Commit(_ context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	defer func() {
		u.tx = nil
		u.store.mu.Unlock()
	}()
	if err := u.store.failCommit; err != nil {
		u.store.failCommit = nil
		u.store.rollbacks++
		return err
	}
	u.store.committed = *u.tx
	u.store.commits++
	return nil
}

func (u *memoryUoW) Rollback(_ context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.tx = nil
	u.store.rollbacks++
	u.store.mu.Unlock()
	return nil
}

func (u *memoryUoW) ClientRepository() ports.ClientRepository   { return memoryClients{u} }
func (u *memoryUoW) ProductRepository() ports.ProductRepository { return memoryProducts{u} }
func (u *memoryUoW) CarrierRepository() ports.CarrierRepository { return memoryCarriers{u} }
func (u *memoryUoW) RouteRepository() ports.RouteRepository     { return memoryRoutes{u} }
func (u *memoryUoW) OrderRepository() ports.OrderRepository     { return memoryOrders{u} }
func (u *memoryUoW) ShipmentStatusRepository() ports.ShipmentStatusRepository {
	return memoryStatuses{u}
}

func (u *memoryUoW) state() *memoryState {
	if u.tx == nil {
		panic("repository used outside of a transaction")
	}
	return u.tx
}

// get copies the stored value out of m.
func get[T any](m map[string]T, param string, id kernel.UUID) (*T, error) {
	v, ok := m[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError(param, id.String())
	}
	return &v, nil
}

func put[T any](m map[string]T, param string, id kernel.UUID, v *T, mustExist bool) error {
	_, ok := m[id.String()]
	if mustExist && !ok {
		return errs.NewObjectNotFoundError(param, id.String())
	}
	if !mustExist && ok {
		return errs.NewObjectAlreadyExistsError(param, id.String())
	}
	m[id.String()] = *v
	return nil
}

func remove[T any](m map[string]T, param string, id kernel.UUID) error {
	if _, ok := m[id.String()]; !ok {
		return errs.NewObjectNotFoundError(param, id.String())
	}
	delete(m, id.String())
	return nil
}

type memoryClients struct{ u *memoryUoW }

func (r memoryClients) Add(_ context.Context, c *client.Client) error {
	for _, existing := range r.u.state().clients {
		if existing.Email() == c.Email() {
			return errs.NewObjectAlreadyExistsError("email", c.Email())
		}
	}
	return put(r.u.state().clients, "clientId", c.ID(), c, false)
}

func (r memoryClients) Update(_ context.Context, c *client.Client) error {
	return put(r.u.state().clients, "clientId", c.ID(), c, true)
}

func (r memoryClients) Get(_ context.Context, id kernel.UUID) (*client.Client, error) {
	return get(r.u.state().clients, "clientId", id)
}

func (r memoryClients) Delete(_ context.Context, id kernel.UUID) error {
	return remove(r.u.state().clients, "clientId", id)
}

type memoryProducts struct{ u *memoryUoW }

func (r memoryProducts) Add(_ context.Context, p *product.Product) error {
	for _, existing := range r.u.state().products {
		if existing.Code() == p.Code() {
			return errs.NewObjectAlreadyExistsError("code", p.Code())
		}
	}
	return put(r.u.state().products, "productId", p.ID(), p, false)
}

func (r memoryProducts) Update(_ context.Context, p *product.Product) error {
	return put(r.u.state().products, "productId", p.ID(), p, true)
}

func (r memoryProducts) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	return get(r.u.state().products, "productId", id)
}

func (r memoryProducts) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.Get(ctx, id)
}

func (r memoryProducts) Delete(_ context.Context, id kernel.UUID) error {
	return remove(r.u.state().products, "productId", id)
}

func (r memoryProducts) RecordMovement(_ context.Context, m product.Movement) error {
	if err := r.u.store.failMovement; err != nil {
		return err
	}
	r.u.state().movements = append(r.u.state().movements, m)
	return nil
}

func (r memoryProducts) HasMovements(_ context.Context, id kernel.UUID) (bool, error) {
	return slices.ContainsFunc(r.u.state().movements, func(m product.Movement) bool {
		return m.ProductID.IsEqual(id)
	}), nil
}

type memoryCarriers struct{ u *memoryUoW }

func (r memoryCarriers) Add(_ context.Context, c *carrier.Carrier) error {
	return put(r.u.state().carriers, "carrierId", c.ID(), c, false)
}

func (r memoryCarriers) Update(_ context.Context, c *carrier.Carrier) error {
	return put(r.u.state().carriers, "carrierId", c.ID(), c, true)
}

func (r memoryCarriers) Get(_ context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return get(r.u.state().carriers, "carrierId", id)
}

func (r memoryCarriers) GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return r.Get(ctx, id)
}

func (r memoryCarriers) Delete(_ context.Context, id kernel.UUID) error {
	return remove(r.u.state().carriers, "carrierId", id)
}

type memoryRoutes struct{ u *memoryUoW }

func (r memoryRoutes) Add(_ context.Context, rt *route.Route) error {
	return put(r.u.state().routes, "routeId", rt.ID(), rt, false)
}

func (r memoryRoutes) Update(_ context.Context, rt *route.Route) error {
	return put(r.u.state().routes, "routeId", rt.ID(), rt, true)
}

func (r memoryRoutes) Get(_ context.Context, id kernel.UUID) (*route.Route, error) {
	return get(r.u.state().routes, "routeId", id)
}

func (r memoryRoutes) Delete(_ context.Context, id kernel.UUID) error {
	return remove(r.u.state().routes, "routeId", id)
}

func (r memoryRoutes) CountByCarrier(_ context.Context, carrierID kernel.UUID) (int, error) {
	n := 0
	for _, rt := range r.u.state().routes {
		if rt.CarrierID().IsEqual(carrierID) {
			n++
		}
	}
	return n, nil
}

type memoryStatuses struct{ u *memoryUoW }

func (r memoryStatuses) Add(_ context.Context, s *shipment.ShipmentStatus) error {
	if _, err := r.GetByName(context.Background(), s.Name()); err == nil {
		return errs.NewObjectAlreadyExistsError("name", s.Name())
	}
	return put(r.u.state().statuses, "statusId", s.ID(), s, false)
}

func (r memoryStatuses) Update(_ context.Context, s *shipment.ShipmentStatus) error {
	return put(r.u.state().statuses, "statusId", s.ID(), s, true)
}

func (r memoryStatuses) Get(_ context.Context, id kernel.UUID) (*shipment.ShipmentStatus, error) {
	return get(r.u.state().statuses, "statusId", id)
}

func (r memoryStatuses) GetByName(_ context.Context, name shipment.StatusName) (*shipment.ShipmentStatus, error) {
	for _, s := range r.u.state().statuses {
		if s.Name() == name {
			return &s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("status", name)
}

func (r memoryStatuses) Delete(_ context.Context, id kernel.UUID) error {
	return remove(r.u.state().statuses, "statusId", id)
}

type memoryOrders struct{ u *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	return put(r.u.state().orders, "orderId", o.ID(), o, false)
}

func (r memoryOrders) Update(_ context.Context, o *order.Order) error {
	return put(r.u.state().orders, "orderId", o.ID(), o, true)
}

func (r memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return get(r.u.state().orders, "orderId", id)
}

func (r memoryOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memoryOrders) Delete(_ context.Context, id kernel.UUID) error {
	return remove(r.u.state().orders, "orderId", id)
}

func (r memoryOrders) CountActiveByCarrier(_ context.Context, carrierID kernel.UUID) (int, error) {
	n := 0
	for _, o := range r.u.state().orders {
		if o.CarrierID().IsEqual(carrierID) && o.Status().Name.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r memoryOrders) CountReferencing(_ context.Context, ref ports.OrderReference, id kernel.UUID) (int, error) {
	n := 0
	for _, o := range r.u.state().orders {
		var target kernel.UUID
		switch ref {
		case ports.ReferenceClient:
			target = o.ClientID()
		case ports.ReferenceProduct:
			target = o.ProductID()
		case ports.ReferenceCarrier:
			target = o.CarrierID()
		case ports.ReferenceRoute:
			target = o.RouteID()
		case ports.ReferenceStatus:
			target = o.Status().ID
		}
		if target.IsEqual(id) {
			n++
		}
	}
	return n, nil
}
