// Package errs is the error taxonomy shared by the domain, the use cases and
// the adapters.
//
// Validation and lookup failures each have a sentinel (ErrValueIsRequired,
// ErrValueIsInvalid, ErrValueIsOutOfRange, ErrObjectNotFound,
// ErrObjectAlreadyExists) and a struct carrying the offending parameter. The
// structs unwrap to their sentinel, so callers test with errors.Is and read
// details with errors.As. IsDomain groups them.
//
// InfrastructureError wraps datastore and collaborator failures and unwraps to
// both ErrInfrastructure and its cause.
//
// Rule violations that carry their own values (insufficient stock, carrier
// capacity, illegal status transitions) live next to the aggregates that
// raise them.
package errs
