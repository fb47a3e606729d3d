// Package validation registers the request validation rules used by the HTTP layer.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// Register adds the custom rules to v and reports fields by their json or form name.
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	rules := map[string]validator.Func{
		"iso_date":       validateISODate,
		"type_filter":    validateTypeFilter,
		"nonzero_amount": validateNonZeroAmount,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return nil
}

var (
	ginOnce sync.Once
	ginErr  error
)

// RegisterWithGin installs the rules on gin's default binding engine. Only
// the first call registers.
func RegisterWithGin() error {
	ginOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ginErr = errors.New("gin binding engine is not a go-playground validator")
			return
		}
		ginErr = Register(v)
	})
	return ginErr
}

// decimalValue lets the validator see decimal amounts as their string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validateISODate accepts YYYY-MM-DD calendar dates.
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(entity.DayLayout, fl.Field().String())
	return err == nil
}

// validateTypeFilter accepts all, expense and income.
func validateTypeFilter(fl validator.FieldLevel) bool {
	return entity.TypeFilter(fl.Field().String()).IsValid()
}

// validateNonZeroAmount rejects zero and unparsable amounts.
func validateNonZeroAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !amount.IsZero()
}

// Describe turns binding errors into a short "field: reason" list.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fe.Field()+": "+reason(fe))
	}
	return strings.Join(messages, "; ")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "iso_date":
		return "must be a date in YYYY-MM-DD format"
	case "type_filter":
		return "must be one of all, expense, income"
	case "nonzero_amount":
		return "must be a non-zero number"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
