package http

import (
	"errors"
	"log/slog"
	"net/http"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// toErrorResponse maps an error returned by a use case onto the HTTP error
// taxonomy. Anything unrecognised is an internal error and its text is not
// exposed.
func toErrorResponse(err error) ErrorResponse {
	var (
		httpErr      *echo.HTTPError
		notFound     *errs.ObjectNotFoundError
		exists       *errs.ObjectAlreadyExistsError
		required     *errs.ValueIsRequiredError
		invalid      *errs.ValueIsInvalidError
		outOfRange   *errs.ValueIsOutOfRangeError
		stock        *product.InsufficientStockError
		unavailable  *carrier.UnavailableError
		transition   *shipment.IllegalTransitionError
		notEditable  *order.NotEditableError
		notDeletable *order.NotDeletableError
	)

	switch {
	case errors.As(err, &httpErr):
		resp := ErrorResponse{Code: httpErr.Code, Message: http.StatusText(httpErr.Code)}
		if msg, ok := httpErr.Message.(string); ok {
			resp.Message = msg
		}
		if httpErr.Internal != nil && httpErr.Code < http.StatusInternalServerError {
			resp.Details = map[string]any{"reason": httpErr.Internal.Error()}
		}
		return resp
	case errors.As(err, &notFound):
		return newErrorResponse(http.StatusNotFound, err, map[string]any{"param": notFound.ParamName})
	case errors.As(err, &required):
		return newErrorResponse(http.StatusBadRequest, err, map[string]any{"param": required.ParamName})
	case errors.As(err, &invalid):
		return newErrorResponse(http.StatusBadRequest, err, map[string]any{"param": invalid.ParamName})
	case errors.As(err, &outOfRange):
		return newErrorResponse(http.StatusBadRequest, err, map[string]any{
			"param": outOfRange.ParamName,
			"min":   outOfRange.Min,
			"max":   outOfRange.Max,
		})
	case errors.As(err, &exists):
		return newErrorResponse(http.StatusConflict, err, map[string]any{"param": exists.ParamName})
	case errors.As(err, &stock):
		return newErrorResponse(http.StatusConflict, err, map[string]any{
			"available": stock.Available,
			"requested": stock.Requested,
		})
	case errors.As(err, &unavailable):
		return newErrorResponse(http.StatusConflict, err, map[string]any{
			"activeOrders": unavailable.ActiveCount,
			"maxOrders":    unavailable.Max,
		})
	case errors.Is(err, ports.ErrIdempotencyKeyInUse):
		return newErrorResponse(http.StatusConflict, err, nil)
	case errors.As(err, &transition):
		return newErrorResponse(http.StatusUnprocessableEntity, err, map[string]any{
			"current":   transition.Current,
			"requested": transition.Requested,
			"allowed":   transition.Allowed,
		})
	case errors.As(err, &notEditable):
		return newErrorResponse(http.StatusUnprocessableEntity, err, map[string]any{"status": notEditable.Status})
	case errors.As(err, &notDeletable):
		return newErrorResponse(http.StatusUnprocessableEntity, err, map[string]any{"status": notDeletable.Status})
	default:
		return ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

func newErrorResponse(code int, err error, details map[string]any) ErrorResponse {
	return ErrorResponse{Code: code, Message: err.Error(), Details: details}
}

// errorHandler replaces echo's default handler so every error leaves as an
// ErrorResponse. Server errors are logged with their cause.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		if resp.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(resp.Code)
		} else {
			writeErr = c.JSON(resp.Code, resp)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
