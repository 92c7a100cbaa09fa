package carrier

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
	"logistics/internal/pkg/validation"
)

const (
	// DefaultMaxConcurrentOrders applies when a carrier is registered without a capacity.
	DefaultMaxConcurrentOrders = 10
	// DefaultVehicleType applies when a carrier is registered without a vehicle.
	DefaultVehicleType = "car"
)

var (
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")
	ErrCarrierIsInactive       = errors.New("carrier is inactive")
)

// Carrier is a driver or courier company that transports orders.
//
// Capacity is expressed as the number of orders in an active shipment state
// (PENDING, PREPARATION, IN_TRANSIT) the carrier may hold at once. The count
// itself lives with the orders; the carrier only judges it through
// EnsureCapacity.
type Carrier struct {
	id                  kernel.UUID
	name                string
	document            string
	phone               string
	vehicleType         string
	maxConcurrentOrders int
	active              bool

	guard guard.ConstructorGuard
}

// NewCarrier registers an active carrier. A zero maxConcurrentOrders becomes
// DefaultMaxConcurrentOrders and an empty vehicleType becomes DefaultVehicleType.
func NewCarrier(id kernel.UUID, name, document, phone, vehicleType string, maxConcurrentOrders int) (*Carrier, error) {
	if maxConcurrentOrders == 0 {
		maxConcurrentOrders = DefaultMaxConcurrentOrders
	}
	if strings.TrimSpace(vehicleType) == "" {
		vehicleType = DefaultVehicleType
	}
	return RestoreCarrier(id, name, document, phone, vehicleType, maxConcurrentOrders, true)
}

// RestoreCarrier rebuilds a carrier loaded from storage.
func RestoreCarrier(
	id kernel.UUID,
	name, document, phone, vehicleType string,
	maxConcurrentOrders int,
	active bool,
) (*Carrier, error) {
	c := &Carrier{
		vehicleType: strings.ToLower(strings.TrimSpace(vehicleType)),
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setDocument(document),
		c.setPhone(phone),
		c.setMaxConcurrentOrders(maxConcurrentOrders),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

func (c *Carrier) ID() kernel.UUID          { return c.id }
func (c *Carrier) Name() string             { return c.name }
func (c *Carrier) Document() string         { return c.document }
func (c *Carrier) Phone() string            { return c.phone }
func (c *Carrier) VehicleType() string      { return c.vehicleType }
func (c *Carrier) MaxConcurrentOrders() int { return c.maxConcurrentOrders }
func (c *Carrier) IsActive() bool           { return c.active }

// EnsureActive fails for carriers that no longer take orders.
func (c *Carrier) EnsureActive() error {
	if !c.active {
		return errs.NewValueIsInvalidErrorWithCause("carrierId", fmt.Errorf("%w: %s", ErrCarrierIsInactive, c.document))
	}
	return nil
}

// EnsureCapacity fails with UnavailableError when activeCount, the number of
// orders currently holding a slot, leaves no room for one more.
func (c *Carrier) EnsureCapacity(activeCount int) error {
	if activeCount >= c.maxConcurrentOrders {
		return NewUnavailableError(activeCount, c.maxConcurrentOrders)
	}
	return nil
}

// Deactivate stops the carrier from receiving new orders.
func (c *Carrier) Deactivate() {
	c.active = false
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return errs.NewValueIsOutOfRangeError("name length", n, 2, 100)
	}
	c.name = name
	return nil
}

func (c *Carrier) setDocument(document string) error {
	document = strings.ToUpper(strings.TrimSpace(document))
	if document == "" {
		return errs.NewValueIsRequiredError("document")
	}
	c.document = document
	return nil
}

func (c *Carrier) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		c.phone = ""
		return nil
	}
	if err := validation.Phone("phone", phone); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *Carrier) setMaxConcurrentOrders(maxOrders int) error {
	if maxOrders < 1 {
		return errs.NewValueIsOutOfRangeError("maxConcurrentOrders", maxOrders, 1, "unbounded")
	}
	c.maxConcurrentOrders = maxOrders
	return nil
}
