// Package registration implements the account registration form: its input
// model, the field validation rules, the submit lifecycle and the form
// sessions that hold a form's state between requests.
package registration

import "errors"

// Field names a single input of the registration form. The string value is
// the key used in HTML forms, JSON payloads and route parameters.
type Field string

const (
	FieldFullName       Field = "fullName"
	FieldEmail          Field = "email"
	FieldPassword       Field = "password"
	FieldRetypePassword Field = "retypePassword"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldFullName, FieldEmail, FieldPassword, FieldRetypePassword}

// ErrUnknownField is returned when a field name is not part of the form.
var ErrUnknownField = errors.New("unknown registration field")

// ParseField converts a raw field name into a Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

// Label returns the human readable label shown next to the field.
func (f Field) Label() string {
	switch f {
	case FieldFullName:
		return "Full Name"
	case FieldEmail:
		return "Email"
	case FieldPassword:
		return "Password"
	case FieldRetypePassword:
		return "Retype Password"
	}
	return string(f)
}

// Maskable reports whether the field supports the show/hide toggle.
func (f Field) Maskable() bool {
	return f == FieldPassword || f == FieldRetypePassword
}

// Input is the four-field record submitted by the user.
type Input struct {
	FullName       string `json:"fullName" form:"fullName"`
	Email          string `json:"email" form:"email"`
	Password       string `json:"password" form:"password"`
	RetypePassword string `json:"retypePassword" form:"retypePassword"`
}

// Get returns the current value of a field.
func (in Input) Get(f Field) string {
	switch f {
	case FieldFullName:
		return in.FullName
	case FieldEmail:
		return in.Email
	case FieldPassword:
		return in.Password
	case FieldRetypePassword:
		return in.RetypePassword
	}
	return ""
}

// With returns a copy of the input with one field replaced.
func (in Input) With(f Field, value string) (Input, error) {
	switch f {
	case FieldFullName:
		in.FullName = value
	case FieldEmail:
		in.Email = value
	case FieldPassword:
		in.Password = value
	case FieldRetypePassword:
		in.RetypePassword = value
	default:
		return in, ErrUnknownField
	}
	return in, nil
}
