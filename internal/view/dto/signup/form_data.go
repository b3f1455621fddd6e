package signup

import "github.com/nfrund/signup/internal/registration"

// FormData is the view model for the registration form and its fragments.
type FormData struct {
	Form      registration.Snapshot
	Localizer *registration.Localizer
}

// NewFormData builds the view model for a snapshot. A nil localizer renders
// English.
func NewFormData(snap registration.Snapshot, l *registration.Localizer) FormData {
	if l == nil {
		l = registration.NewLocalizer("")
	}
	return FormData{Form: snap, Localizer: l}
}

// Message returns the localized error for the field, or "".
func (d FormData) Message(f registration.Field) string {
	return d.Localizer.FieldMessage(d.Form.Errors[f])
}

// InputType is the HTML input type the field renders with.
func (d FormData) InputType(f registration.Field) string {
	switch {
	case f == registration.FieldEmail:
		return "email"
	case f.Maskable() && !d.Form.Visible(f):
		return "password"
	}
	return "text"
}

// Action returns the form-scoped URL for a path suffix.
func (d FormData) Action(suffix string) string {
	if suffix == "" {
		return "/register/" + d.Form.ID
	}
	return "/register/" + d.Form.ID + "/" + suffix
}
