// Package validation holds the process-wide go-playground validator used by
// domain constructors for field formats and by the HTTP adapter for request bodies.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"logistics/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// phonePattern accepts an optional leading plus and 8 to 14 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,14}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = instance.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
	return instance
}

// Var validates a single value against tag and maps a failure to
// errs.ValueIsInvalidError named after paramName.
func Var(paramName string, value any, tag string) error {
	if err := Validator().Var(value, tag); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(paramName, describe(err))
	}
	return nil
}

// Phone checks value against the "phone" tag.
func Phone(paramName, value string) error {
	return Var(paramName, value, "phone")
}

// Struct validates a tagged struct. Each failing field becomes its own
// errs.ValueIsInvalidError and the results are joined.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(fe.Field(), describeField(fe)))
	}
	return errors.Join(joined...)
}

func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return describeField(fieldErrs[0])
	}
	return err
}

func describeField(fe validator.FieldError) error {
	if fe.Param() != "" {
		return fmt.Errorf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return fmt.Errorf("failed %s", fe.Tag())
}
