package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRemoveEntityCommandIsNotConstructed = errors.New(
	"RemoveEntityCommand must be created via NewRemoveEntityCommand constructor",
)

// EntityKind names a removable catalog entity.
type EntityKind string

const (
	KindClient         EntityKind = "client"
	KindProduct        EntityKind = "product"
	KindCarrier        EntityKind = "carrier"
	KindRoute          EntityKind = "route"
	KindShipmentStatus EntityKind = "shipment-status"
)

// ParseEntityKind normalizes raw and checks it names a catalog entity.
func ParseEntityKind(raw string) (EntityKind, error) {
	kind := EntityKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindClient, KindProduct, KindCarrier, KindRoute, KindShipmentStatus:
		return kind, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a removable entity", raw))
	}
}

// RemoveEntityCommand removes a catalog entity, or deactivates it when
// something still refers to it.
type RemoveEntityCommand struct { //nolint:recvcheck //using for validation
	kind EntityKind
	id   kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveEntityCommand(kind EntityKind, id kernel.UUID) (RemoveEntityCommand, error) {
	cmd := RemoveEntityCommand{
		guard: guard.NewConstructorGuard(),
	}

	parsed, kindErr := ParseEntityKind(string(kind))
	if err := errors.Join(kindErr, requireID("id", id, &cmd.id)); err != nil {
		return RemoveEntityCommand{}, err
	}
	cmd.kind = parsed

	return cmd, nil
}

func (c RemoveEntityCommand) Validate() error {
	return c.guard.Validate(ErrRemoveEntityCommandIsNotConstructed)
}

func (c RemoveEntityCommand) Kind() EntityKind { return c.kind }
func (c RemoveEntityCommand) ID() kernel.UUID  { return c.id }
