package shipment

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
	"logistics/internal/pkg/validation"
)

var (
	ErrShipmentStatusIsNotConstructed = errors.New("ShipmentStatus must be created via NewShipmentStatus constructor")
	ErrShipmentStatusIsInactive       = errors.New("shipment status is inactive")
)

// Definition describes one row of the status catalog before it is persisted.
type Definition struct {
	Name         StatusName
	Description  string
	Color        string
	DisplayOrder int
}

// DefaultDefinitions is the catalog seeded on an empty database.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: Pending, Description: "Order received, awaiting preparation", Color: "#FFA500", DisplayOrder: 1},
		{Name: Preparation, Description: "Order is being prepared", Color: "#0000FF", DisplayOrder: 2},
		{Name: InTransit, Description: "Order is on its way", Color: "#008000", DisplayOrder: 3},
		{Name: Delivered, Description: "Order delivered to the client", Color: "#008000", DisplayOrder: 4},
		{Name: NotDelivered, Description: "Delivery attempt failed", Color: "#FF0000", DisplayOrder: 5},
		{Name: Cancelled, Description: "Order cancelled", Color: "#FF0000", DisplayOrder: 6},
	}
}

// ShipmentStatus is a row of the status catalog that orders reference by id.
// Its name is one of the fixed StatusName values; description, color and
// display order are presentation data.
type ShipmentStatus struct {
	id           kernel.UUID
	name         StatusName
	description  string
	color        string
	displayOrder int
	active       bool

	guard guard.ConstructorGuard
}

// NewShipmentStatus creates an active catalog row.
func NewShipmentStatus(id kernel.UUID, def Definition) (*ShipmentStatus, error) {
	return RestoreShipmentStatus(id, def, true)
}

// RestoreShipmentStatus rebuilds a catalog row loaded from storage.
func RestoreShipmentStatus(id kernel.UUID, def Definition, active bool) (*ShipmentStatus, error) {
	s := &ShipmentStatus{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(def.Name),
		s.setColor(def.Color),
		s.setDisplayOrder(def.DisplayOrder),
	); err != nil {
		return nil, err
	}
	s.description = strings.TrimSpace(def.Description)

	return s, nil
}

func (s *ShipmentStatus) Validate() error {
	if s == nil {
		return ErrShipmentStatusIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentStatusIsNotConstructed)
}

func (s *ShipmentStatus) ID() kernel.UUID     { return s.id }
func (s *ShipmentStatus) Name() StatusName    { return s.name }
func (s *ShipmentStatus) Description() string { return s.description }
func (s *ShipmentStatus) Color() string       { return s.color }
func (s *ShipmentStatus) DisplayOrder() int   { return s.displayOrder }
func (s *ShipmentStatus) IsActive() bool      { return s.active }

// EnsureActive fails for rows withdrawn from the catalog.
func (s *ShipmentStatus) EnsureActive() error {
	if !s.active {
		return errs.NewValueIsInvalidErrorWithCause("statusId", fmt.Errorf("%w: %s", ErrShipmentStatusIsInactive, s.name))
	}
	return nil
}

// Deactivate hides the row from new orders while keeping it referenced by
// existing ones.
func (s *ShipmentStatus) Deactivate() {
	s.active = false
}

func (s *ShipmentStatus) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *ShipmentStatus) setName(name StatusName) error {
	if err := name.Validate(); err != nil {
		return err
	}
	s.name = name
	return nil
}

func (s *ShipmentStatus) setColor(color string) error {
	color = strings.ToUpper(strings.TrimSpace(color))
	if color == "" {
		return errs.NewValueIsRequiredError("color")
	}
	if err := validation.Var("color", color, "len=7,hexcolor"); err != nil {
		return err
	}
	s.color = color
	return nil
}

func (s *ShipmentStatus) setDisplayOrder(order int) error {
	if order < 0 {
		return errs.NewValueIsOutOfRangeError("displayOrder", order, 0, "unbounded")
	}
	s.displayOrder = order
	return nil
}
