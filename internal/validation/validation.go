package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"rental-backend/internal/apperr"
	"rental-backend/pkg/id"

	"github.com/go-playground/validator/v10"
)

const dateOnly = "2006-01-02"

// ParseDate accepts YYYY-MM-DD (midnight UTC) or RFC3339 and returns UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t.UTC(), nil
}

type Validator struct{ v *validator.Validate }

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json/query names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	// ids are canonical lowercase uuids
	_ = v.RegisterValidation("uuidid", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	// at least one non-space character
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})

	return &Validator{v: v}
}

var std = New()

// Struct validates i with the shared validator.
func Struct(i any) error { return std.Validate(i) }

// Validate satisfies echo.Validator. Failures come back as
// *apperr.ValidationError.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	return ToValidationError(err)
}

// ToValidationError maps validator.ValidationErrors to one FieldError per
// failing field. Any other error is reported against "_".
func ToValidationError(err error) *apperr.ValidationError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.Field("_", "invalid", err.Error())
	}
	out := make([]apperr.FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, fieldError(e))
	}
	return apperr.Validation(out...)
}

func fieldError(e validator.FieldError) apperr.FieldError {
	fe := apperr.FieldError{Path: e.Field(), Code: e.Tag()}
	switch e.Tag() {
	case "required", "notblank":
		fe.Code = "required"
		fe.Message = "is required"
	case "uuidid":
		fe.Code = "format"
		fe.Message = "must be a lowercase UUID"
	case "datestr":
		fe.Code = "format"
		fe.Message = "must be a date (YYYY-MM-DD) or RFC3339 timestamp"
	case "dec2":
		fe.Message = "must have at most 2 decimal places"
	case "gt":
		fe.Message = "must be greater than " + e.Param()
	case "gte":
		fe.Message = "must be greater than or equal to " + e.Param()
	case "lte":
		fe.Message = "must be less than or equal to " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			fe.Message = "must be at most " + e.Param() + " characters"
		} else {
			fe.Message = "must be at most " + e.Param()
		}
	case "email":
		fe.Code = "format"
		fe.Message = "must be a valid email address"
	default:
		fe.Message = e.Tag() + " validation failed"
	}
	return fe
}
