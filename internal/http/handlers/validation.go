package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type FieldValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var (
	productNameRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	priceRe       = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

	priceFloor   = decimal.RequireFromString("0.01")
	priceCeiling = decimal.RequireFromString("999999.99")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json field names, not Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("product_name", func(fl validator.FieldLevel) bool {
		return productNameRe.MatchString(fl.Field().String())
	})

	v.RegisterValidation("price_string", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !priceRe.MatchString(s) {
			return false
		}
		price, err := decimal.NewFromString(s)
		if err != nil {
			return false
		}
		return price.Cmp(priceFloor) >= 0 && price.Cmp(priceCeiling) <= 0
	})

	return v
}

func validateStruct(s any) []FieldValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldValidationError{{Field: "", Description: "invalid input"}}
	}

	out := make([]FieldValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldValidationError{Field: fe.Field(), Description: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "cannot exceed " + fe.Param() + " characters"
		}
		return "cannot exceed " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "cannot be negative"
	case "url":
		return "must be a valid URL"
	case "startswith":
		return "must start with " + fe.Param()
	case "product_name":
		return "can only contain letters, numbers, spaces, hyphens and underscores"
	case "price_string":
		return "must be a decimal between 0.01 and 999999.99 with up to 2 decimal places"
	default:
		return "is invalid"
	}
}
