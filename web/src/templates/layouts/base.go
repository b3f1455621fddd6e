package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/signup/internal/view"
	"github.com/nfrund/signup/web/src/templates/partials"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.3"

// Base wraps page content in the HTML document shared by every page.
func Base(title, lang string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if lang == "" {
			lang = "en"
		}
		return c.HTML5(c.HTML5Props{
			Title:    CalculateTitle(title),
			Language: lang,
			Head: []g.Node{
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
				h.Script(h.Src(htmxSrc), h.Defer()),
			},
			Body: []g.Node{
				h.Header(h.Class("site-header"), h.A(h.Href("/"), g.Text("Sign Up"))),
				h.Main(
					h.Class("container"),
					partials.Flash(flashes),
					view.AdaptTemplToGomponent(ctx, content),
				),
			},
		}).Render(w)
	})
}
