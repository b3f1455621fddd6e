package partials

import (
	"github.com/nfrund/signup/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Flash renders the session's one-shot messages. The container is always
// present so htmx responses can target it out of band.
func Flash(data view.FlashData) g.Node {
	return flash(data, nil)
}

// FlashOOB is Flash marked for an htmx out-of-band swap, for fragment
// responses that also need to update the messages.
func FlashOOB(data view.FlashData) g.Node {
	return flash(data, hx.SwapOOB("true"))
}

func flash(data view.FlashData, oob g.Node) g.Node {
	return h.Div(
		h.ID("flash"),
		h.Class("flash-stack"),
		oob,
		flashGroup("success", "status", data.Success),
		flashGroup("info", "status", data.Info),
		flashGroup("warning", "alert", data.Warning),
		flashGroup("error", "alert", data.Error),
	)
}

func flashGroup(level, role string, messages []string) g.Node {
	return g.Map(messages, func(msg string) g.Node {
		return h.Div(
			h.Class("flash flash-"+level),
			h.Role(role),
			g.Text(msg),
		)
	})
}
