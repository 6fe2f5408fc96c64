package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches the validator about decimal amounts and adds the
// percent and confidence tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("percent", inRange(0, 100)); err != nil {
		return err
	}
	if err := v.RegisterValidation("confidence", inRange(0, 1)); err != nil {
		return err
	}
	return v.RegisterValidation("nonzero_amount", nonZero)
}

// decimalValue lets numeric tags such as gte=0 work on decimal.Decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func inRange(min, max float64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return f >= min && f <= max
		case reflect.Int, reflect.Int32, reflect.Int64:
			i := float64(fl.Field().Int())
			return i >= min && i <= max
		}
		return false
	}
}

func nonZero(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() != 0
	}
	return false
}
