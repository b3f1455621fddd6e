package registration

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password, counted in runes.
const MinPasswordLength = 6

// Message keys. They double as the English text.
const (
	msgFullNameRequired       = "Full Name is required"
	msgFullNameTokens         = "Please enter at least two words"
	msgEmailRequired          = "Email is required"
	msgEmailMalformed         = "Please input a valid email"
	msgPasswordRequired       = "Password is required"
	msgPasswordTooShort       = "Please enter at least %d characters"
	msgRetypePasswordRequired = "Retype Password is required"
	msgPasswordMismatch       = "Passwords must match"
	msgRegisterSuccess        = "Register successfully"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// ValidateFullName requires a value made of at least two whitespace
// separated words.
func ValidateFullName(name string) *FieldError {
	if name == "" {
		return newFieldError(FieldFullName, ErrRequired, msgFullNameRequired)
	}
	if len(strings.Fields(name)) < 2 {
		return newFieldError(FieldFullName, ErrNameTokens, msgFullNameTokens)
	}
	return nil
}

// ValidateEmail requires a syntactically valid email address.
func ValidateEmail(email string) *FieldError {
	if email == "" {
		return newFieldError(FieldEmail, ErrRequired, msgEmailRequired)
	}
	if err := validate.Var(email, "email"); err != nil {
		return newFieldError(FieldEmail, ErrMalformedEmail, msgEmailMalformed)
	}
	return nil
}

// ValidatePassword requires at least MinPasswordLength characters.
func ValidatePassword(password string) *FieldError {
	if password == "" {
		return newFieldError(FieldPassword, ErrRequired, msgPasswordRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return newFieldError(FieldPassword, ErrPasswordTooShort, msgPasswordTooShort, MinPasswordLength)
	}
	return nil
}

// ValidateRetypePassword requires the retyped value to equal password
// byte for byte.
func ValidateRetypePassword(password, retype string) *FieldError {
	if retype == "" {
		return newFieldError(FieldRetypePassword, ErrRequired, msgRetypePasswordRequired)
	}
	if retype != password {
		return newFieldError(FieldRetypePassword, ErrPasswordMismatch, msgPasswordMismatch)
	}
	return nil
}

// ValidateField runs the rule of a single field against the whole input,
// which the retype rule needs for its comparison.
func ValidateField(f Field, in Input) (*FieldError, error) {
	switch f {
	case FieldFullName:
		return ValidateFullName(in.FullName), nil
	case FieldEmail:
		return ValidateEmail(in.Email), nil
	case FieldPassword:
		return ValidatePassword(in.Password), nil
	case FieldRetypePassword:
		return ValidateRetypePassword(in.Password, in.RetypePassword), nil
	}
	return nil, ErrUnknownField
}

// Validate runs every rule and collects the failures.
func Validate(in Input) Errors {
	errs := make(Errors)
	for _, f := range Fields {
		// Fields only holds known fields, so the error is always nil.
		if fe, _ := ValidateField(f, in); fe != nil {
			errs[f] = fe
		}
	}
	return errs
}
