package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Draft carries the data of an order about to be placed. The product's unit
// price is read at placement time and frozen into the order total.
type Draft struct {
	ClientID          kernel.UUID
	ProductID         kernel.UUID
	CarrierID         kernel.UUID
	RouteID           kernel.UUID
	Status            StatusRef
	Quantity          int
	UnitPrice         kernel.Money
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	Notes             string
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ClientID          kernel.UUID
	ProductID         kernel.UUID
	CarrierID         kernel.UUID
	RouteID           kernel.UUID
	Status            StatusRef
	Quantity          int
	Total             kernel.Money
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string
}

// Order is the aggregate root of the lifecycle engine: one client buying a
// quantity of one product, moved by one carrier along one route.
//
// Invariants held by the aggregate itself:
//   - quantity is at least 1
//   - a new order starts in PENDING
//   - status changes follow the shipment transition table
//   - edits are only accepted while PENDING or PREPARATION
//   - total is quantity times the unit price known at the last repricing
//
// Invariants spanning other aggregates (stock, carrier capacity) are enforced
// by the commands that load those aggregates in the same transaction.
type Order struct {
	id                kernel.UUID
	clientID          kernel.UUID
	productID         kernel.UUID
	carrierID         kernel.UUID
	routeID           kernel.UUID
	status            StatusRef
	quantity          int
	total             kernel.Money
	orderDate         time.Time
	estimatedDelivery *time.Time
	actualDelivery    *time.Time
	notes             string

	guard guard.ConstructorGuard
}

// NewOrder places a new order in PENDING with total = quantity x unit price.
// A zero OrderDate defaults to now.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
//	    ClientID: clientID, ProductID: p.ID(), CarrierID: carrierID, RouteID: routeID,
//	    Status: order.RefOf(pending), Quantity: 3, UnitPrice: p.Price(),
//	})
func NewOrder(id kernel.UUID, d Draft) (*Order, error) {
	if d.OrderDate.IsZero() {
		d.OrderDate = time.Now()
	}

	o := &Order{
		orderDate:         d.OrderDate.UTC(),
		estimatedDelivery: utcPtr(d.EstimatedDelivery),
		notes:             strings.TrimSpace(d.Notes),
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(d.ClientID, d.ProductID, d.CarrierID, d.RouteID),
		o.setInitialStatus(d.Status),
		o.setQuantity(d.Quantity),
	); err != nil {
		return nil, err
	}
	o.total = d.UnitPrice.Multiply(o.quantity)

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. It does not replay the
// transition table; the stored status is trusted once it is a known name.
func RestoreOrder(id kernel.UUID, s Snapshot) (*Order, error) {
	o := &Order{
		total:             s.Total,
		orderDate:         s.OrderDate.UTC(),
		estimatedDelivery: utcPtr(s.EstimatedDelivery),
		actualDelivery:    utcPtr(s.ActualDelivery),
		notes:             s.Notes,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(s.ClientID, s.ProductID, s.CarrierID, s.RouteID),
		o.setStatus(s.Status),
		o.setQuantity(s.Quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID               { return o.id }
func (o *Order) ClientID() kernel.UUID         { return o.clientID }
func (o *Order) ProductID() kernel.UUID        { return o.productID }
func (o *Order) CarrierID() kernel.UUID        { return o.carrierID }
func (o *Order) RouteID() kernel.UUID          { return o.routeID }
func (o *Order) Status() StatusRef             { return o.status }
func (o *Order) Quantity() int                 { return o.quantity }
func (o *Order) Total() kernel.Money           { return o.total }
func (o *Order) OrderDate() time.Time          { return o.orderDate }
func (o *Order) EstimatedDelivery() *time.Time { return o.estimatedDelivery }
func (o *Order) ActualDelivery() *time.Time    { return o.actualDelivery }
func (o *Order) Notes() string                 { return o.notes }

// HoldsStock reports whether the order's quantity is still reserved against
// the product. Cancelled orders have already given their units back.
func (o *Order) HoldsStock() bool {
	return o.status.Name != shipment.Cancelled
}

// ChangeStatus moves the order to next if the transition table allows it.
// notes, when non-empty, are appended on a new line. Moving to DELIVERED
// stamps the actual delivery time with now. The previous status is returned.
func (o *Order) ChangeStatus(next StatusRef, notes string, now time.Time) (StatusRef, error) {
	if err := next.Validate(); err != nil {
		return StatusRef{}, err
	}
	if err := shipment.CheckTransition(o.status.Name, next.Name); err != nil {
		return StatusRef{}, err
	}

	previous := o.status
	o.status = next
	o.appendNotes(notes)
	if next.Name == shipment.Delivered {
		delivered := now.UTC()
		o.actualDelivery = &delivered
	}

	return previous, nil
}

// EnsureEditable fails with NotEditableError outside PENDING and PREPARATION.
func (o *Order) EnsureEditable() error {
	if !slices.Contains(editableStatuses, o.status.Name) {
		return &NotEditableError{Status: o.status.Name}
	}
	return nil
}

// EnsureDeletable fails with NotDeletableError outside PENDING and CANCELLED.
func (o *Order) EnsureDeletable() error {
	if !slices.Contains(deletableStatuses, o.status.Name) {
		return &NotDeletableError{Status: o.status.Name}
	}
	return nil
}

// Reprice sets product and quantity and recomputes the total from unitPrice.
// The caller has already moved the stock reservation accordingly.
func (o *Order) Reprice(productID kernel.UUID, quantity int, unitPrice kernel.Money) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	if err := o.setQuantity(quantity); err != nil {
		return err
	}
	o.productID = productID
	o.total = unitPrice.Multiply(quantity)
	return nil
}

// Reassign replaces the client, carrier and route of an editable order.
func (o *Order) Reassign(clientID, carrierID, routeID kernel.UUID) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	return o.setParties(clientID, o.productID, carrierID, routeID)
}

// Reschedule replaces the estimated delivery of an editable order.
func (o *Order) Reschedule(estimatedDelivery *time.Time) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	o.estimatedDelivery = utcPtr(estimatedDelivery)
	return nil
}

// ReplaceNotes overwrites the notes of an editable order.
func (o *Order) ReplaceNotes(notes string) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	o.notes = strings.TrimSpace(notes)
	return nil
}

func (o *Order) appendNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}
	if o.notes == "" {
		o.notes = notes
		return
	}
	o.notes = o.notes + "\n" + notes
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(clientID, productID, carrierID, routeID kernel.UUID) error {
	var joined []error
	for _, ref := range []struct {
		name string
		id   kernel.UUID
	}{
		{"clientId", clientID},
		{"productId", productID},
		{"carrierId", carrierID},
		{"routeId", routeID},
	} {
		if err := ref.id.Validate(); err != nil {
			joined = append(joined, errs.NewValueIsRequiredErrorWithCause(ref.name, err))
		}
	}
	if err := errors.Join(joined...); err != nil {
		return err
	}

	o.clientID = clientID
	o.productID = productID
	o.carrierID = carrierID
	o.routeID = routeID
	return nil
}

func (o *Order) setInitialStatus(status StatusRef) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.Name != shipment.Pending {
		return errs.NewValueIsInvalidErrorWithCause("statusId",
			fmt.Errorf("new orders start in %s, got %s", shipment.Pending, status.Name))
	}
	o.status = status
	return nil
}

func (o *Order) setStatus(status StatusRef) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	o.quantity = quantity
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
