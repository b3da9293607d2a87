// Package validate checks routine candidates before they reach the store.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
)

// strictInput and partialInput share model.RoutineInput's layout so a plain
// conversion selects the rule set.
type strictInput struct {
	Name           *string         `json:"name" validate:"required,min=1"`
	Description    *string         `json:"description"`
	FrequencyType  *model.TimeUnit `json:"frequencyType" validate:"required,unit"`
	FrequencyValue *int            `json:"frequencyValue" validate:"required,min=1"`
	StartTime      *string         `json:"startTime" validate:"required,hhmm"`
	Duration       *int            `json:"duration" validate:"required,min=1"`
	DurationUnit   *model.TimeUnit `json:"durationUnit" validate:"required,unit"`
	IsActive       *bool           `json:"isActive" validate:"required"`
}

type partialInput struct {
	Name           *string         `json:"name" validate:"omitempty,min=1"`
	Description    *string         `json:"description"`
	FrequencyType  *model.TimeUnit `json:"frequencyType" validate:"omitempty,unit"`
	FrequencyValue *int            `json:"frequencyValue" validate:"omitempty,min=1"`
	StartTime      *string         `json:"startTime" validate:"omitempty,hhmm"`
	Duration       *int            `json:"duration" validate:"omitempty,min=1"`
	DurationUnit   *model.TimeUnit `json:"durationUnit" validate:"omitempty,unit"`
	IsActive       *bool           `json:"isActive"`
}

// StatusInput is the body of a status-only update.
type StatusInput struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return model.StartTimeRx.MatchString(fl.Field().String())
	})
	_ = val.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return model.TimeUnit(fl.Field().String()).Valid()
	})
	return val
}

// Strict validates a create candidate: every field except description is required.
func Strict(in model.RoutineInput) model.FieldErrors {
	return check(strictInput(in))
}

// Partial validates only the fields present in an edit candidate.
func Partial(in model.RoutineInput) model.FieldErrors {
	return check(partialInput(in))
}

// Status validates a status-only update.
func Status(in StatusInput) model.FieldErrors {
	return check(in)
}

// Routine validates a complete record, typically the result of a merge.
func Routine(r model.Routine) model.FieldErrors {
	return Strict(model.InputFrom(r))
}

func check(s interface{}) model.FieldErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.FieldErrors{{Field: "body", Message: err.Error()}}
	}
	out := make(model.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, model.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "must be greater than 0"
	case "unit":
		return "must be one of: second, minute, hour"
	case "hhmm":
		return "invalid time format, expected HH:MM"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// DecodeInput reads a JSON body into dst. Type mismatches are reported as field
// errors; a body that is not JSON yields a single "body" error.
func DecodeInput(r io.Reader, dst interface{}) model.FieldErrors {
	err := json.NewDecoder(r).Decode(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return model.FieldErrors{{Field: "body", Message: "request body must be a JSON object"}}
		}
		return model.FieldErrors{{Field: typeErr.Field, Message: "must be " + kindName(typeErr.Type)}}
	}
	if errors.Is(err, io.EOF) {
		return model.FieldErrors{{Field: "body", Message: "request body is empty"}}
	}
	return model.FieldErrors{{Field: "body", Message: "invalid JSON"}}
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	}
	return "of type " + t.String()
}

// Merge combines decode errors with rule errors, keeping one entry per field.
func Merge(decodeErrs, ruleErrs model.FieldErrors) model.FieldErrors {
	out := append(model.FieldErrors{}, decodeErrs...)
	for _, fe := range ruleErrs {
		if !out.Has(fe.Field) {
			out = append(out, fe)
		}
	}
	return out
}
