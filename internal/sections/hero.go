package sections

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vsm-0/portfolio/internal/content"
)

// DOM ids the browser-side choreographer binds to.
const (
	HeroID      = "hero"
	HeroVideoID = "hero-video"
	HeroRoleID  = "hero-role"
)

// HeroSection renders the video background, name, role label and calls to
// action. The role label starts with the first role fully typed so the
// section reads correctly without scripts.
func HeroSection(p *content.Profile) g.Node {
	var firstRole string
	if len(p.Hero.Roles) > 0 {
		firstRole = p.Hero.Roles[0]
	}

	return Section(
		ID(HeroID),
		Class("hero"),
		g.El("video",
			ID(HeroVideoID),
			Src(p.Hero.Video),
			g.Attr("muted"),
			g.Attr("playsinline"),
			g.Attr("preload", "metadata"),
			g.Attr("aria-hidden", "true"),
			Class("hero-video"),
		),
		Div(Class("hero-overlay"), g.Attr("aria-hidden", "true")),
		Div(
			Class("hero-content container"),
			P(Class("hero-greeting"), g.Text(p.Greeting)),
			H1(Class("hero-name"), g.Text(p.Name)),
			Div(
				Class("hero-role"),
				Span(ID(HeroRoleID), g.Text(firstRole)),
				Span(Class("caret"), g.Text("|")),
			),
			Div(
				Class("hero-actions"),
				A(Href("#contact"), Class("btn btn-primary"), icon("message-circle"), g.Text("Contact Me")),
				g.If(p.ResumeURL != "",
					A(Href(p.ResumeURL), Target("_blank"), Rel("noopener noreferrer"), Class("btn btn-outline"),
						icon("file-text"), g.Text("View Resume")),
				),
			),
			socialLinks(p.Links),
		),
		Div(Class("scroll-indicator"), g.Attr("aria-hidden", "true"), Div(Class("scroll-dot"))),
	)
}

func socialLinks(links []content.Link) g.Node {
	return Div(
		Class("social-links"),
		g.Map(links, func(l content.Link) g.Node {
			return A(
				Href(l.Href),
				g.If(l.External(), g.Group{Target("_blank"), Rel("noopener noreferrer")}),
				g.Attr("aria-label", l.Label),
				Class("social-link"),
				icon(strings.ToLower(l.Icon)),
			)
		}),
	)
}
