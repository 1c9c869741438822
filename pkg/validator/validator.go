package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps a go-playground validator with an English translator.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with the json tag name func, the English default
// messages and the custom rules registered.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Sprintf("validator: register translations: %v", err))
	}

	v := &Validator{validate: validate, trans: trans}
	for _, r := range rules {
		v.mustRegister(r)
	}
	return v
}

// Struct validates s. Field failures are returned as ValidationErrors.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return errors.Join(ErrInvalidTarget, err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return v.translate(fieldErrs)
}

// Var validates a single value against tag. field names the value in messages.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := v.translate(fieldErrs)
	for i := range out {
		out[i].Field = field
		out[i].Message = field + strings.TrimPrefix(out[i].Message, fieldErrs[i].Field())
	}
	return out
}

func (v *Validator) translate(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fe.Translate(v.trans),
		})
	}
	return out
}

func (v *Validator) mustRegister(r rule) {
	if err := v.validate.RegisterValidation(r.tag, r.fn); err != nil {
		panic(fmt.Sprintf("validator: register rule %q: %v", r.tag, err))
	}

	err := v.validate.RegisterTranslation(r.tag, v.trans,
		func(ut ut.Translator) error {
			return ut.Add(r.tag, "{0} "+r.message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			if r.describe != nil {
				return fe.Field() + " " + r.describe(fe.Value())
			}
			t, _ := ut.T(r.tag, fe.Field())
			return t
		},
	)
	if err != nil {
		panic(fmt.Sprintf("validator: register translation %q: %v", r.tag, err))
	}
}
