package internal

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/relawan/portal/pkg/validator"
)

// ErrBindTarget is returned when BindParams receives something other than
// a pointer to a struct.
var ErrBindTarget = errors.New("bind: target must be a pointer to a struct")

// bindParams copies route parameters into the fields of v tagged with
// `param:"name"`. Unparsable values are reported as validation failures.
func bindParams(params *chi.Context, v any) (ValidationErrors, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, ErrBindTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	var ve ValidationErrors
	for i := range rt.NumField() {
		sf := rt.Field(i)
		name := sf.Tag.Get("param")
		if name == "" || !sf.IsExported() {
			continue
		}

		raw := ""
		if params != nil {
			raw = params.URLParam(name)
		}
		if raw == "" {
			continue
		}

		if msg, ok := setParam(rv.Field(i), raw); !ok {
			ve = append(ve, validator.ValidationError{
				Field:   name,
				Rule:    "type",
				Message: fmt.Sprintf("%s %s", name, msg),
			})
		}
	}
	return ve, nil
}

func setParam(f reflect.Value, raw string) (string, bool) {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return "must be a number", false
		}
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, f.Type().Bits())
		if err != nil {
			return "must be a positive number", false
		}
		f.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "must be a boolean", false
		}
		f.SetBool(b)
	default:
		return "has an unsupported type", false
	}
	return "", true
}
