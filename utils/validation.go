package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	looseEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	ifscRegex       = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	suffixRegex     = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	registerOnce    sync.Once
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidateEmail(email string) bool {
	return looseEmailRegex.MatchString(email)
}

func ValidateIFSC(code string) bool {
	return ifscRegex.MatchString(code)
}

// ValidateInvoiceSuffix keeps invoice numbers usable verbatim as file names.
func ValidateInvoiceSuffix(suffix string) bool {
	return suffixRegex.MatchString(suffix)
}

// RegisterValidators installs the custom binding tags on gin's validator and
// makes errors report JSON field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			return ValidateEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
			return ValidateIFSC(fl.Field().String())
		})
		_ = v.RegisterValidation("invoice_suffix", func(fl validator.FieldLevel) bool {
			return ValidateInvoiceSuffix(fl.Field().String())
		})
	})
}

func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// DescribeValidationErrors turns a binding error into per-field messages.
// Errors that are not field validation failures yield a single entry.
func DescribeValidationErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// ValidationMessage joins DescribeValidationErrors into one sentence.
func ValidationMessage(err error) string {
	parts := make([]string, 0)
	for _, ve := range DescribeValidationErrors(err) {
		parts = append(parts, ve.Message)
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "loose_email", "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "ifsc":
		return fmt.Sprintf("%s must be a valid IFSC code", fe.Field())
	case "invoice_suffix":
		return fmt.Sprintf("%s may only contain letters, digits and hyphens", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
