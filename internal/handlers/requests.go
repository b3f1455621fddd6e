package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/signup/internal/registration"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// formParams addresses one form session.
type formParams struct {
	ID string `param:"id" validate:"required,uuid"`
}

// fieldParams addresses one field of a form session.
type fieldParams struct {
	ID    string `param:"id" validate:"required,uuid"`
	Field string `param:"field" validate:"required,oneof=fullName email password retypePassword"`
}

func (p fieldParams) field() registration.Field {
	// The oneof tag has already been checked.
	f, _ := registration.ParseField(p.Field)
	return f
}

// RegisterRequest is the JSON body of the registration API.
type RegisterRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RetypePassword string `json:"retypePassword"`
}

func (r RegisterRequest) input() registration.Input {
	return registration.Input{
		FullName:       r.FullName,
		Email:          r.Email,
		Password:       r.Password,
		RetypePassword: r.RetypePassword,
	}
}
