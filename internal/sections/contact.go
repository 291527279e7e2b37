package sections

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vsm-0/portfolio/internal/content"
)

// ContactResultID is the element the form's HTMX response replaces.
const ContactResultID = "contact-result"

func ContactSection(p *content.Profile) g.Node {
	return section("contact", "Get In Touch",
		Div(
			Class("grid grid-2"),
			ContactForm(),
			Div(
				Class("glass-card"),
				H3(g.Text("Let's connect")),
				g.Map(p.Links, func(l content.Link) g.Node {
					return A(
						Href(l.Href),
						Class("contact-link"),
						g.If(l.External(), g.Group{Target("_blank"), Rel("noopener noreferrer")}),
						icon(l.Icon),
						Div(
							P(Class("muted"), g.Text(l.Label)),
							P(g.Text(l.Value)),
						),
					)
				}),
				Img(
					Src("/contact/qr.png"),
					Alt("QR code with contact details for "+p.Name),
					Class("contact-qr"),
					g.Attr("width", "160"),
					g.Attr("height", "160"),
					g.Attr("loading", "lazy"),
				),
			),
		),
	)
}

// ContactForm posts to /contact and swaps the result fragment in place.
func ContactForm() g.Node {
	return Form(
		ID("contact-form"),
		Class("glass-card contact-form"),
		Method("post"),
		Action("/contact"),
		g.Attr("hx-post", "/contact"),
		g.Attr("hx-target", "#"+ContactResultID),
		g.Attr("hx-swap", "innerHTML"),
		field("fullName", "Name", Input(ID("fullName"), Name("fullName"), Type("text"), Placeholder("Your name"), Required(), g.Attr("maxlength", "120"))),
		field("email", "Email", Input(ID("email"), Name("email"), Type("email"), Placeholder("you@example.com"), Required(), g.Attr("maxlength", "254"))),
		field("message", "Message", Textarea(ID("message"), Name("message"), Placeholder("Your message..."), Required(), g.Attr("rows", "5"), g.Attr("maxlength", "5000"))),
		Button(Type("submit"), Class("btn btn-primary"), icon("send"), g.Text("Send Message")),
		Div(ID(ContactResultID), g.Attr("aria-live", "polite")),
	)
}

func field(id, label string, control g.Node) g.Node {
	return Div(
		Class("field"),
		Label(For(id), g.Text(label)),
		control,
	)
}
