// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// tags returns the shared struct-tag engine. The engine caches struct
// metadata and is safe for concurrent use.
func tags() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names instead of Go field names.
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = engine.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return Username(fl.Field().String()) == nil
		})
		_ = engine.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRegex.MatchString(fl.Field().String())
		})
	})
	return engine
}

// Struct validates dto against its `validate` tags and returns a
// VALIDATION_ERROR listing every failing field, or nil.
func Struct(dto any) error {
	errs := structErrors(dto)
	if len(errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", errs...)
}

func structErrors(dto any) []apperr.FieldError {
	err := tags().Struct(dto)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []apperr.FieldError{{Field: "body", Message: "Invalid payload"}}
	}

	out := make([]apperr.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		out = append(out, apperr.FieldError{Field: fe.Field(), Message: tagMessage(fe)})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Maximum %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Minimum %s characters", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "username":
		value := reflect.Indirect(reflect.ValueOf(fe.Value()))
		if value.Kind() == reflect.String {
			if err := Username(value.String()); err != nil {
				return err.Error()
			}
		}
		return "Invalid characters in username"
	case "slug":
		return "Must be a valid slug (letters, digits, hyphens, underscores only)"
	default:
		return fmt.Sprintf("Failed the %q rule", fe.Tag())
	}
}
