package order

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/shipment"
)

var (
	// ErrOrderNotEditable is the sentinel for edits attempted past PREPARATION.
	ErrOrderNotEditable = errors.New("order is not editable")
	// ErrOrderNotDeletable is the sentinel for deletes of orders that already shipped.
	ErrOrderNotDeletable = errors.New("order is not deletable")
)

// editableStatuses are the states in which an order may still be edited.
var editableStatuses = []shipment.StatusName{shipment.Pending, shipment.Preparation}

// deletableStatuses are the states in which an order may be removed.
var deletableStatuses = []shipment.StatusName{shipment.Pending, shipment.Cancelled}

// NotEditableError reports the status that blocked an edit.
type NotEditableError struct {
	Status shipment.StatusName
}

func (e *NotEditableError) Error() string {
	return fmt.Sprintf("%s: status is %s, editable statuses are %v", ErrOrderNotEditable, e.Status, editableStatuses)
}

func (e *NotEditableError) Unwrap() error {
	return ErrOrderNotEditable
}

// NotDeletableError reports the status that blocked a delete.
type NotDeletableError struct {
	Status shipment.StatusName
}

func (e *NotDeletableError) Error() string {
	return fmt.Sprintf("%s: status is %s, deletable statuses are %v", ErrOrderNotDeletable, e.Status, deletableStatuses)
}

func (e *NotDeletableError) Unwrap() error {
	return ErrOrderNotDeletable
}
