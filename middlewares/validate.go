package middlewares

import (
	"github.com/relawan/portal/internal"
)

type validBodyKey[T any] struct{}

type validParamsKey[T any] struct{}

// Validate decodes the JSON body into a T and validates it. Invalid input
// fails with 400 and the validation messages. The value is read back
// with Valid[T].
func Validate[T any]() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			v := new(T)
			ve, err := c.BindJSON(v)
			if err != nil {
				return err
			}
			if len(ve) > 0 {
				return ve
			}
			c.Set(validBodyKey[T]{}, v)
			return next(c)
		}
	}
}

// ValidateParams binds route parameters into the `param`-tagged fields of
// a T and validates it. The value is read back with ValidParams[T].
func ValidateParams[T any]() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			v := new(T)
			ve, err := c.BindParams(v)
			if err != nil {
				return err
			}
			if len(ve) > 0 {
				return ve
			}
			c.Set(validParamsKey[T]{}, v)
			return next(c)
		}
	}
}

// Valid returns the body stored by Validate[T], or nil.
func Valid[T any](c internal.Context) *T {
	v, _ := c.Get(validBodyKey[T]{}).(*T)
	return v
}

// ValidParams returns the params stored by ValidateParams[T], or nil.
func ValidParams[T any](c internal.Context) *T {
	v, _ := c.Get(validParamsKey[T]{}).(*T)
	return v
}
