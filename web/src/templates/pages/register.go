package pages

import (
	"github.com/nfrund/signup/internal/registration"
	"github.com/nfrund/signup/internal/view/dto/signup"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// RegisterContent is the registration page body.
func RegisterContent(data signup.FormData) g.Node {
	return h.Div(
		h.Class("card"),
		h.H1(g.Text(data.Localizer.Text("Create account"))),
		RegisterForm(data),
	)
}

// RegisterForm renders the whole form. Submits replace it in place so a
// failed submit shows every error at once.
func RegisterForm(data signup.FormData) g.Node {
	submitting := data.Form.Submitting
	return h.Form(
		h.ID("register-form"),
		h.Class("register-form"),
		h.Action(data.Action("")),
		h.Method("post"),
		g.Attr("novalidate"),
		hx.Post(data.Action("")),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		hx.Indicator("#submit-progress"),
		g.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Map(registration.Fields, func(f registration.Field) g.Node {
			return Field(data, f)
		}),
		h.Div(
			h.Class("actions"),
			h.Button(
				h.Type("submit"),
				h.Class("button"),
				g.If(submitting, h.Disabled()),
				g.Text(data.Localizer.Text("Register")),
			),
			Progress(submitting),
		),
	)
}

// Field renders one labelled input with its helper text. Password fields
// also get their visibility toggle.
func Field(data signup.FormData, f registration.Field) g.Node {
	name := string(f)
	return h.Div(
		h.ID("field-"+name),
		h.Class("field"),
		// Keystrokes keep the server-held value current. The div has no value
		// to compare, so the trigger takes every bubbling input event.
		hx.Put(data.Action("fields/"+name)),
		hx.Trigger("input delay:150ms"),
		hx.Include("find input"),
		hx.Swap("none"),
		h.Label(h.For("input-"+name), g.Text(data.Localizer.Label(f))),
		h.Div(
			h.Class("input-row"),
			h.Input(
				h.ID("input-"+name),
				h.Name(name),
				h.Type(data.InputType(f)),
				h.Value(data.Form.Values.Get(f)),
				h.AutoComplete(autocomplete(f)),
				g.If(data.Form.Submitting, h.Disabled()),
				g.If(data.Form.Errors.Has(f), h.Aria("invalid", "true")),
				h.Aria("describedby", "help-"+name),
				hx.Post(data.Action("fields/"+name+"/blur")),
				hx.Trigger("blur"),
				hx.Target("#help-"+name),
				hx.Swap("outerHTML"),
			),
			g.If(f.Maskable(), VisibilityToggle(data, f)),
		),
		HelperText(data, f),
	)
}

// HelperText renders the field's error line. It is empty when the field is
// valid.
func HelperText(data signup.FormData, f registration.Field) g.Node {
	msg := data.Message(f)
	return h.P(
		h.ID("help-"+string(f)),
		h.Class("helper-text"),
		g.If(msg != "", h.Role("alert")),
		g.Text(msg),
	)
}

// VisibilityToggle switches a password field between masked and plain text.
func VisibilityToggle(data signup.FormData, f registration.Field) g.Node {
	visible := data.Form.Visible(f)
	caption := "Show"
	if visible {
		caption = "Hide"
	}
	name := string(f)
	return h.Button(
		h.Type("button"),
		h.Class("toggle"),
		h.Aria("controls", "input-"+name),
		g.Attr("aria-pressed", boolString(visible)),
		hx.Post(data.Action("visibility/"+name)),
		hx.Include("#input-"+name),
		hx.Target("#field-"+name),
		hx.Swap("outerHTML"),
		g.Text(data.Localizer.Text(caption)),
	)
}

// Progress is the submit indicator. htmx shows it while the request is in
// flight; it is also rendered visible when the form is still submitting.
func Progress(submitting bool) g.Node {
	return h.Span(
		h.ID("submit-progress"),
		g.If(submitting, h.Class("htmx-indicator progress htmx-request")),
		g.If(!submitting, h.Class("htmx-indicator progress")),
		h.Role("progressbar"),
		h.Aria("label", "Submitting"),
	)
}

func autocomplete(f registration.Field) string {
	switch f {
	case registration.FieldFullName:
		return "name"
	case registration.FieldEmail:
		return "email"
	}
	return "new-password"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
