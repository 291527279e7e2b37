// Package sections renders the portfolio page from a content.Profile.
//
// Every renderer is a pure function of its records. Sections carry an
// anchor id and a data-reveal marker; the browser reveals a section the
// first time it enters the viewport and never hides it again.
package sections

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vsm-0/portfolio/internal/content"
)

// Anchor names one page section.
type Anchor struct {
	ID    string
	Label string
}

// Anchors lists the sections in page order.
var Anchors = []Anchor{
	{ID: "hero", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "education", Label: "Education"},
	{ID: "skills", Label: "Skills"},
	{ID: "experience", Label: "Experience"},
	{ID: "projects", Label: "Projects"},
	{ID: "certifications", Label: "Certifications"},
	{ID: "positions", Label: "Positions"},
	{ID: "languages", Label: "Languages"},
	{ID: "contact", Label: "Contact"},
}

// PageOptions carries per-request values the page needs.
type PageOptions struct {
	// Nonce is the CSP nonce for inline script and style tags.
	Nonce string
}

// Third-party scripts loaded by the page. The server's CSP allows their
// origins.
const (
	HTMXScript    = "https://unpkg.com/htmx.org@1.9.12"
	IconifyScript = "https://code.iconify.design/3/3.1.1/iconify.min.js"
)

// Page renders the full document.
func Page(p *content.Profile, opts PageOptions) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(p.Name+" | Portfolio")),
				Meta(Name("description"), Content(p.Greeting+" "+p.Name)),
				Link(Rel("stylesheet"), Href("/static/site.css")),
				Script(Src(HTMXScript), Defer(), g.Attr("nonce", opts.Nonce)),
				Script(Src(IconifyScript), Defer(), g.Attr("nonce", opts.Nonce)),
				Script(Src("/static/wasm_exec.js"), g.Attr("nonce", opts.Nonce)),
				Script(Src("/static/hero.js"), Defer(), g.Attr("nonce", opts.Nonce)),
			),
			Body(
				Class("bg-background text-foreground"),
				loader(p),
				Div(
					Class("relative min-h-screen overflow-x-hidden"),
					Div(ID("scroll-progress"), Class("scroll-progress"), g.Attr("aria-hidden", "true")),
					Div(Class("aurora-bg"), g.Attr("aria-hidden", "true")),
					g.El("canvas", ID("particles"), Class("particles"), g.Attr("aria-hidden", "true")),
					navigation(p),
					Main(
						Class("relative z-10"),
						HeroSection(p),
						AboutSection(p),
						EducationSection(p.Education),
						SkillsSection(p.Skills),
						ExperienceSection(p.Experience),
						ProjectsSection(p.Projects),
						CertificationsSection(p.Certifications),
						PositionsSection(p.Positions),
						LanguagesSection(p.Hobbies, p.Languages),
						ContactSection(p),
					),
					Footer(
						Class("site-footer"),
						P(g.Textf("© %s", p.Name)),
					),
				),
			),
		),
	)
}

func loader(p *content.Profile) g.Node {
	return Div(
		ID("loader"),
		Class("loader"),
		g.Attr("role", "status"),
		g.Attr("aria-label", "Loading"),
		g.El("svg",
			Class("spirograph"),
			g.Attr("viewBox", "0 0 200 200"),
			g.El("circle", g.Attr("cx", "100"), g.Attr("cy", "100"), g.Attr("r", "80")),
		),
		P(Class("loader-name"), g.Text(p.ShortName)),
	)
}

func navigation(p *content.Profile) g.Node {
	return Nav(
		ID("nav"),
		Class("site-nav"),
		A(Href("#hero"), Class("nav-brand"), g.Text(p.ShortName)),
		Ul(
			Class("nav-links"),
			g.Map(Anchors[1:], func(a Anchor) g.Node {
				return Li(A(Href("#"+a.ID), g.Text(a.Label)))
			}),
		),
	)
}

// section wraps a section body with its anchor, reveal marker and heading.
func section(id, title string, children ...g.Node) g.Node {
	return Section(
		ID(id),
		Class("section"),
		g.Attr("data-reveal", ""),
		Div(
			Class("container"),
			H2(Class("section-title"), g.Text(title)),
			g.Group(children),
		),
	)
}

func icon(name string) g.Node {
	if name == "" {
		return nil
	}
	return Span(Class("iconify"), g.Attr("data-icon", "lucide:"+name), g.Attr("aria-hidden", "true"))
}

func bullets(items []string) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Ul(
		Class("bullets"),
		g.Map(items, func(s string) g.Node { return Li(g.Text(s)) }),
	)
}
