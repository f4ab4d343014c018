// Package validate runs declarative per-field rule chains over request
// payloads and aggregates every violation into a single report, so a client
// can fix all problems in one round trip.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"foodhub/internal/entity/dto"

	"github.com/go-playground/validator/v10"
)

// FieldError 描述单个字段的违规。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Report 是统一的校验错误报告。
type Report struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Validator wraps a configured validator instance.
type Validator struct {
	engine *validator.Validate
}

// New builds a validator with the project's custom rules registered.
func New() *Validator {
	engine := validator.New(validator.WithRequiredStructEnabled())

	// 错误报告里使用 json 字段名而不是 Go 字段名
	engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = engine.RegisterValidation("sku", validSKU)
	_ = engine.RegisterValidation("currency_code", validCurrencyCode)
	_ = engine.RegisterValidation("established_year", validEstablishedYear)

	engine.RegisterStructValidation(foodShelfLifeValidation, dto.FoodProductForm{})

	return &Validator{engine: engine}
}

// Check runs every rule chain over the payload and returns the collected
// report, or nil when the payload is valid. Rules never short-circuit across
// fields; optional fields skip their chain when absent.
func (v *Validator) Check(payload interface{}) *Report {
	err := v.engine.Struct(payload)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Report{
			Message: "validation failed",
			Errors:  []FieldError{{Field: "", Message: err.Error()}},
		}
	}

	report := &Report{
		Message: "validation failed",
		Errors:  make([]FieldError, 0, len(violations)),
	}
	for _, violation := range violations {
		report.Errors = append(report.Errors, FieldError{
			Field:   fieldPath(violation),
			Message: describe(violation),
		})
	}
	return report
}

// fieldPath 去掉命名空间里的顶层结构体名，保留嵌套和数组路径，
// 例如 contact.email、flavor_types[1]。
func fieldPath(fe validator.FieldError) string {
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "numeric":
		return "must be numeric"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "sku":
		return "must contain only letters, digits, dashes, and underscores"
	case "currency_code":
		return "must be a 3-letter currency code"
	case "established_year":
		return "must be a valid year not in the future"
	case "shelf_life_window":
		return "shelf life start date must be before end date"
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
