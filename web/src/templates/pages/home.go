package pages

import (
	"github.com/nfrund/signup/internal/registration"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HomeContent is the landing page. It links to the registration form.
func HomeContent(l *registration.Localizer) g.Node {
	return h.Div(
		h.Class("card"),
		h.H1(g.Text(l.Text("Create account"))),
		h.P(g.Text("Registration takes a full name, an email address and a password of at least "),
			g.Textf("%d", registration.MinPasswordLength), g.Text(" characters.")),
		h.A(h.Class("button"), h.Href("/register"), g.Text(l.Text("Register"))),
	)
}
