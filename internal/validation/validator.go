// Package validation checks request bodies against per-endpoint schemas.
//
// Schemas are plain structs with `validate` tags. A malformed body fails
// once with a parse error; a well-formed body is checked exhaustively and
// every violated field is reported.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/brand-studio-api/internal/dto"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(dto.Nullable[string]); ok && n.Valid {
			return n.Value
		}
		return nil
	}, dto.Nullable[string]{})

	mustRegister(v, "hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Bind decodes the request body into dst and validates it.
func (v *Validator) Bind(c *gin.Context, dst interface{}) *apierrors.APIError {
	return v.decode(c.Request.Body, dst, false)
}

// BindPatch is Bind for partial updates: fields outside dst's allow-list
// are rejected instead of silently ignored.
func (v *Validator) BindPatch(c *gin.Context, dst interface{}) *apierrors.APIError {
	return v.decode(c.Request.Body, dst, true)
}

func (v *Validator) decode(body io.Reader, dst interface{}, strict bool) *apierrors.APIError {
	if body == nil {
		return apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Request body is required")
	}

	dec := json.NewDecoder(body)
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Request body is required")
		case errors.As(err, &typeErr):
			return failed([]FieldError{{
				Field:   typeErr.Field,
				Rule:    "type",
				Param:   typeErr.Type.String(),
				Message: fmt.Sprintf("must be of type %s", jsonKind(typeErr.Type)),
			}})
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return failed([]FieldError{{
				Field:   field,
				Rule:    "allowed",
				Message: "is not an updatable field",
			}})
		default:
			return apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Invalid JSON body")
		}
	}

	return v.Validate(dst)
}

// Validate checks an already-populated struct.
func (v *Validator) Validate(dst interface{}) *apierrors.APIError {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.NewAPIError(apierrors.ErrCodeInternalError, "Validation could not be performed")
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return failed(details)
}

func failed(details []FieldError) *apierrors.APIError {
	return apierrors.NewAPIErrorWithDetails(apierrors.ErrCodeValidationFailed, "Validation failed", details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "must be a valid email address"
	case "hexcolor6":
		return "must be a hex color like #RRGGBB"
	case "isodate":
		return "must be a date (YYYY-MM-DD or RFC 3339)"
	case "notblank":
		return "must not be blank"
	default:
		return "is invalid"
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// ParseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates (UTC).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
