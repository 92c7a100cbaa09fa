package http

import (
	"net/http"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/validation"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// structValidator plugs the shared go-playground validator into echo.
type structValidator struct{}

func (structValidator) Validate(i any) error {
	return validation.Struct(i)
}

func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	return c.Validate(dst)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return parseID("id", raw)
}

// queryParam binds an optional form-style query parameter into dst, which
// must be a pointer to a pointer.
func queryParam(c echo.Context, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}
