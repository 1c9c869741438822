package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/pkg/validator"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=64"`
	Password string `json:"password" validate:"required,password"`
	FullName string `json:"fullName" validate:"required,max=64"`
	Phone    string `json:"phone" validate:"required,max=32,digits"`
}

func TestValidator_Struct(t *testing.T) {
	t.Parallel()

	v := validator.New()

	t.Run("valid struct", func(t *testing.T) {
		t.Parallel()
		err := v.Struct(registerRequest{
			Email:    "steve@minecraft.com",
			Password: "Steve123?",
			FullName: "Steve",
			Phone:    "628174991828",
		})
		require.NoError(t, err)
	})

	t.Run("uses json names in messages", func(t *testing.T) {
		t.Parallel()
		err := v.Struct(registerRequest{
			Email:    "not-an-email",
			Password: "Steve123?",
			FullName: "Steve",
			Phone:    "628174991828",
		})
		require.Error(t, err)

		errs, ok := validator.ExtractValidationErrors(err)
		require.True(t, ok)
		require.Len(t, errs, 1)
		require.Equal(t, "email", errs[0].Field)
		require.Equal(t, "email", errs[0].Rule)
		require.Equal(t, "email must be a valid email address", errs[0].Message)
	})

	t.Run("collects every failed field", func(t *testing.T) {
		t.Parallel()
		err := v.Struct(registerRequest{})

		errs, ok := validator.ExtractValidationErrors(err)
		require.True(t, ok)
		require.Len(t, errs, 4)
		require.True(t, errs.Has("email"))
		require.True(t, errs.Has("password"))
		require.True(t, errs.Has("fullName"))
		require.True(t, errs.Has("phone"))
		require.Contains(t, errs.Error(), "email is a required field")
	})

	t.Run("rejects non-digit phone", func(t *testing.T) {
		t.Parallel()
		err := v.Struct(registerRequest{
			Email:    "steve@minecraft.com",
			Password: "Steve123?",
			FullName: "Steve",
			Phone:    "+62 817",
		})

		errs, ok := validator.ExtractValidationErrors(err)
		require.True(t, ok)
		require.Equal(t, "phone must only be numbers", errs[0].Message)
	})

	t.Run("non-struct target", func(t *testing.T) {
		t.Parallel()
		err := v.Struct(42)
		require.ErrorIs(t, err, validator.ErrInvalidTarget)
		require.False(t, validator.IsValidationError(err))
	})
}

func TestValidator_PasswordRule(t *testing.T) {
	t.Parallel()

	type login struct {
		Password string `json:"password" validate:"password"`
	}

	v := validator.New()

	cases := []struct {
		password string
		message  string
	}{
		{"Ab1?", "password must be between 8 and 64 characters"},
		{"Abcdefgh?", "password requires at least a number"},
		{"ABCDEFG1?", "password requires at least a lowercase character"},
		{"abcdefg1?", "password requires at least an uppercase character"},
		{"Abcdefg12", "password requires at least a special character"},
		{"Admin123?", ""},
	}

	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			t.Parallel()
			err := v.Struct(login{Password: tc.password})
			if tc.message == "" {
				require.NoError(t, err)
				return
			}
			errs, ok := validator.ExtractValidationErrors(err)
			require.True(t, ok)
			require.Equal(t, tc.message, errs[0].Message)
		})
	}
}

func TestValidator_Var(t *testing.T) {
	t.Parallel()

	v := validator.New()

	err := v.Var("latitude", 91.0, "gte=-90,lte=90")
	errs, ok := validator.ExtractValidationErrors(err)
	require.True(t, ok)
	require.Equal(t, "latitude", errs[0].Field)
	require.Contains(t, errs[0].Message, "latitude must be 90 or less")

	require.NoError(t, v.Var("latitude", 45.5, "gte=-90,lte=90"))
}

func TestExtractValidationErrors_Wrapped(t *testing.T) {
	t.Parallel()

	inner := validator.ValidationErrors{{Field: "content", Rule: "max", Message: "content must be a maximum of 64 characters in length"}}
	err := fmt.Errorf("bind: %w", inner)

	errs, ok := validator.ExtractValidationErrors(err)
	require.True(t, ok)
	require.Equal(t, inner, errs)

	_, ok = validator.ExtractValidationErrors(errors.New("other"))
	require.False(t, ok)
}
