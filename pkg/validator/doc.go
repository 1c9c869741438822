// Package validator validates request structs with go-playground/validator
// and reports failures as field-level English messages.
//
// Field names in messages come from the json tag, so the messages match
// the request body the client sent:
//
//	type loginRequest struct {
//	    Email    string `json:"email" validate:"required,email,max=64"`
//	    Password string `json:"password" validate:"required,password"`
//	}
//
//	v := validator.New()
//	if err := v.Struct(req); err != nil {
//	    errs, ok := validator.ExtractValidationErrors(err)
//	    // errs[0].Message == "email must be a valid email address"
//	}
//
// Besides the built-in tags, two rules are registered:
//
//   - password: 8 to 64 characters with at least one number, one lowercase
//     letter, one uppercase letter and one special character.
//   - digits: a non-empty string made of ASCII digits only.
package validator
