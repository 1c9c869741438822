package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 64
)

type rule struct {
	tag     string
	fn      validator.Func
	message string
	// describe builds the message from the rejected value when one
	// message does not fit every way the rule can fail.
	describe func(value any) string
}

var rules = []rule{
	{
		tag:      "password",
		fn:       func(fl validator.FieldLevel) bool { return passwordProblem(fl.Field().String()) == "" },
		message:  "is not a valid password",
		describe: func(value any) string { return passwordProblem(fmt.Sprint(value)) },
	},
	{
		tag:     "digits",
		fn:      func(fl validator.FieldLevel) bool { return isDigits(fl.Field().String()) },
		message: "must only be numbers",
	},
}

// passwordProblem returns the first unmet password requirement, or "".
func passwordProblem(s string) string {
	n := len([]rune(s))
	if n < passwordMinLength || n > passwordMaxLength {
		return fmt.Sprintf("must be between %d and %d characters", passwordMinLength, passwordMaxLength)
	}

	var number, lower, upper, special bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			number = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		default:
			special = true
		}
	}

	switch {
	case !number:
		return "requires at least a number"
	case !lower:
		return "requires at least a lowercase character"
	case !upper:
		return "requires at least an uppercase character"
	case !special:
		return "requires at least a special character"
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r > unicode.MaxASCII || !unicode.IsDigit(r) }) < 0
}
