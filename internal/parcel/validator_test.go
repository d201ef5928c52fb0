package parcel

import (
	"strings"
	"testing"

	"parcels/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestInputValidator_ValidateCreate(t *testing.T) {
	v := NewInputValidator()

	require.NoError(t, v.ValidateCreate(validInput("s")))

	in := validInput("s")
	in.Name = strings.Repeat("я", 100)
	require.NoError(t, v.ValidateCreate(in), "limit counts characters, not bytes")

	in.Name = strings.Repeat("я", 101)
	err := v.ValidateCreate(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.ErrorContains(t, err, "Name")

	in = validInput("s")
	in.Weight = decimal.RequireFromString("9999999.999")
	require.NoError(t, v.ValidateCreate(in))

	in.Weight = decimal.RequireFromString("1.2500")
	require.NoError(t, v.ValidateCreate(in), "trailing zeros do not count as precision")
}

func TestInputValidator_ValidateCompany(t *testing.T) {
	v := NewInputValidator()

	require.NoError(t, v.ValidateCompany(CreateCompanyInput{Name: "DHL"}))
	require.ErrorIs(t, v.ValidateCompany(CreateCompanyInput{}), domain.ErrInvalidInput)
	require.ErrorIs(t, v.ValidateCompany(CreateCompanyInput{Name: strings.Repeat("x", 101)}), domain.ErrInvalidInput)
}
