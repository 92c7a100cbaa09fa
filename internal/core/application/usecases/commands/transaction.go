package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/actor"
	"logistics/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("logistics/commands")

// withTransaction runs fn inside one unit of work named operation.
//
// The transaction is committed only when fn returns nil. On an error or a
// panic it is rolled back; the panic is re-raised afterwards. Errors outside
// the business taxonomy are wrapped in errs.InfrastructureError so callers can
// tell a rejected request from a failing datastore. There is no retry: a
// serialization or lock failure surfaces as an infrastructure error.
func withTransaction[T any](
	ctx context.Context,
	factory UoWFactory,
	operation string,
	fn func(ctx context.Context, uow UoW) (T, error),
) (T, error) {
	var zero T

	ctx, span := tracer.Start(ctx, operation,
		trace.WithAttributes(attribute.String("actor", actor.SubjectOf(ctx))))
	defer span.End()

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return zero, failSpan(span, errs.NewInfrastructureError(operation+": begin transaction", err))
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = uow.Rollback(ctx)
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, "panic")
			panic(r)
		}
	}()

	result, err := fn(ctx, uow)
	if err != nil {
		return zero, failSpan(span, classify(operation, err))
	}

	if err = uow.Commit(ctx); err != nil {
		return zero, failSpan(span, errs.NewInfrastructureError(operation+": commit", err))
	}
	committed = true

	return result, nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// classify keeps business errors as they are and wraps everything else.
func classify(operation string, err error) error {
	if IsBusinessError(err) || errors.Is(err, errs.ErrInfrastructure) {
		return err
	}
	return errs.NewInfrastructureError(operation, err)
}

// IsBusinessError reports whether err is a rejection by a business rule
// (validation, lookup, stock, capacity, lifecycle) rather than a failure.
func IsBusinessError(err error) bool {
	return errs.IsDomain(err) ||
		errors.Is(err, product.ErrInsufficientStock) ||
		errors.Is(err, carrier.ErrCarrierUnavailable) ||
		errors.Is(err, shipment.ErrIllegalTransition) ||
		errors.Is(err, order.ErrOrderNotEditable) ||
		errors.Is(err, order.ErrOrderNotDeletable)
}
