package order

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// StatusRef points an order at a row of the shipment status catalog. The
// name is carried along so lifecycle rules can be evaluated without another
// lookup.
type StatusRef struct {
	ID   kernel.UUID
	Name shipment.StatusName
}

// RefOf builds the reference for a catalog row.
func RefOf(s *shipment.ShipmentStatus) StatusRef {
	return StatusRef{ID: s.ID(), Name: s.Name()}
}

// Validate requires both an id and a known name.
func (r StatusRef) Validate() error {
	var idErr error
	if err := r.ID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("statusId", err)
	}
	return errors.Join(idErr, r.Name.Validate())
}

func (r StatusRef) String() string {
	return r.Name.String()
}
