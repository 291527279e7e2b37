package sections

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vsm-0/portfolio/internal/content"
)

func AboutSection(p *content.Profile) g.Node {
	return section("about", "About Me",
		Div(
			Class("glass-card about"),
			g.Map(p.About, func(para content.Paragraph) g.Node {
				return P(g.Map(para.Segments(), func(s content.Segment) g.Node {
					if s.Highlight {
						return Span(Class("highlight"), g.Text(s.Text))
					}
					return g.Text(s.Text)
				}))
			}),
		),
	)
}

// EducationSection alternates timeline entries left and right.
func EducationSection(entries []content.Education) g.Node {
	items := make([]g.Node, len(entries))
	for i, e := range entries {
		side := "left"
		if i%2 == 1 {
			side = "right"
		}
		items[i] = Div(
			Class("timeline-item timeline-"+side),
			g.Attr("style", "--reveal-delay: "+strconv.Itoa(i*200)+"ms"),
			Div(
				Class("glass-card"),
				Div(Class("card-heading"), icon(e.Icon), H3(g.Text(e.Title))),
				P(Class("institution"), g.Text(e.Institution)),
				P(Class("muted"), g.Text(e.Location)),
				g.If(e.Board != "", P(Class("muted"), g.Text(e.Board))),
				Div(
					Class("meta"),
					Span(Class("muted"), g.Text(e.Period)),
					Span(Class("score"), g.Text(e.Score)),
				),
			),
			Div(Class("timeline-node"), g.Attr("aria-hidden", "true")),
		)
	}
	return section("education", "Education", Div(Class("timeline"), g.Group(items)))
}

// SkillsSection renders each level as a progress bar whose target width is
// carried in a custom property so it animates on reveal.
func SkillsSection(categories []content.SkillCategory) g.Node {
	return section("skills", "Skills",
		Div(
			Class("grid grid-2"),
			g.Map(categories, func(c content.SkillCategory) g.Node {
				return Div(
					Class("glass-card"),
					Div(Class("card-heading"), icon(c.Icon), H3(g.Text(c.Title))),
					g.Map(c.Skills, func(s content.Skill) g.Node {
						level := strconv.Itoa(s.Level)
						return Div(
							Class("skill"),
							Div(Class("skill-label"), Span(g.Text(s.Name)), Span(Class("muted"), g.Text(level+"%"))),
							Div(
								Class("skill-track"),
								g.Attr("role", "progressbar"),
								g.Attr("aria-valuenow", level),
								g.Attr("aria-valuemin", "0"),
								g.Attr("aria-valuemax", "100"),
								g.Attr("aria-label", s.Name),
								Div(Class("skill-fill"), g.Attr("style", "--level: "+level+"%")),
							),
						)
					}),
				)
			}),
		),
	)
}

func ExperienceSection(entries []content.Experience) g.Node {
	return section("experience", "Experience",
		Div(
			Class("stack"),
			g.Map(entries, func(e content.Experience) g.Node {
				return Div(
					Class("glass-card"),
					Div(Class("card-heading"), icon(e.Icon), H3(g.Text(e.Title))),
					P(Class("institution"), g.Text(e.Company)),
					P(Class("muted"), g.Text(e.Period)),
					bullets(e.Achievements),
				)
			}),
		),
	)
}

func ProjectsSection(projects []content.Project) g.Node {
	return section("projects", "Projects",
		Div(
			Class("grid grid-2"),
			g.Map(projects, func(p content.Project) g.Node {
				return Div(
					Class("glass-card project"),
					Div(Class("card-heading"), icon(p.Icon), H3(g.Text(p.Title))),
					P(Class("muted"), g.Text(p.Role)),
					P(g.Text(p.Description)),
					bullets(p.Achievements),
					Div(
						Class("tags"),
						g.Map(p.Tech, func(t string) g.Node { return Span(Class("tag"), g.Text(t)) }),
					),
				)
			}),
		),
	)
}

func CertificationsSection(certs []content.Certification) g.Node {
	return section("certifications", "Certifications",
		Div(
			Class("grid grid-3"),
			g.Map(certs, func(c content.Certification) g.Node {
				return Div(
					Class("glass-card compact"),
					icon(c.Icon),
					H3(g.Text(c.Title)),
					P(Class("muted"), g.Text(c.Issuer)),
				)
			}),
		),
	)
}

func PositionsSection(positions []content.Position) g.Node {
	return section("positions", "Positions of Responsibility",
		Div(
			Class("grid grid-3"),
			g.Map(positions, func(p content.Position) g.Node {
				return Div(
					Class("glass-card"),
					Div(Class("card-heading"), icon(p.Icon), H3(g.Text(p.Title))),
					P(Class("institution"), g.Text(p.Organization)),
					P(Class("muted"), g.Text(p.Description)),
				)
			}),
		),
	)
}

// LanguagesSection pairs hobbies with spoken languages.
func LanguagesSection(hobbies []content.Hobby, languages []string) g.Node {
	return section("languages", "Hobbies & Languages",
		Div(
			Class("grid grid-2"),
			Div(
				Class("glass-card"),
				H3(g.Text("Hobbies")),
				Div(
					Class("tags"),
					g.Map(hobbies, func(h content.Hobby) g.Node {
						return Span(Class("tag"), icon(h.Icon), g.Text(h.Name))
					}),
				),
			),
			Div(
				Class("glass-card"),
				H3(g.Text("Languages")),
				Div(
					Class("tags"),
					g.Map(languages, func(l string) g.Node { return Span(Class("tag"), g.Text(l)) }),
				),
			),
		),
	)
}
