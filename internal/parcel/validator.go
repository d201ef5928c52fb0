package parcel

import (
	"errors"
	"fmt"
	"parcels/internal/domain"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	weightPlaces = 3
	valuePlaces  = 2
)

var (
	maxWeight = decimal.RequireFromString("9999999.999")           // numeric(10,3)
	maxValue  = decimal.RequireFromString("999999999999999999.99") // numeric(20,2)
)

type CreateInput struct {
	SessionID string
	Name      string          `validate:"required,max=100"`
	Weight    decimal.Decimal `validate:"gte=0"`
	ValueUSD  decimal.Decimal `validate:"gte=0"`
	TypeID    int64           `validate:"required,gt=0"`
}

type CreateCompanyInput struct {
	Name string `validate:"required,max=100"`
}

// InputValidator checks service inputs before they reach storage.
type InputValidator struct {
	validate *validator.Validate
}

func (v *InputValidator) ValidateCreate(in CreateInput) error {
	if err := v.validate.Struct(in); err != nil {
		return validationError(err)
	}
	if !fitsColumn(in.Weight, weightPlaces, maxWeight) {
		return fmt.Errorf("%w: weight must have at most %d decimal places and be below %s", domain.ErrInvalidInput, weightPlaces, maxWeight)
	}
	if !fitsColumn(in.ValueUSD, valuePlaces, maxValue) {
		return fmt.Errorf("%w: cost_in_usd must have at most %d decimal places and be below %s", domain.ErrInvalidInput, valuePlaces, maxValue)
	}
	return nil
}

func (v *InputValidator) ValidateCompany(in CreateCompanyInput) error {
	if err := v.validate.Struct(in); err != nil {
		return validationError(err)
	}
	return nil
}

func fitsColumn(d decimal.Decimal, places int32, upper decimal.Decimal) bool {
	return d.Equal(d.Truncate(places)) && d.LessThanOrEqual(upper)
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed on '%s'", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
}

func NewInputValidator() *InputValidator {
	v := validator.New()
	// numeric tags (gte, lte) compare decimals through their float value
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &InputValidator{validate: v}
}
