package content

import "strings"

// Paragraph is prose where **double-starred** runs are highlighted.
type Paragraph string

type Segment struct {
	Text      string
	Highlight bool
}

// Segments splits the paragraph on ** markers. An unmatched trailing marker
// highlights the rest of the text.
func (p Paragraph) Segments() []Segment {
	parts := strings.Split(string(p), "**")
	out := make([]Segment, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, Segment{Text: part, Highlight: i%2 == 1})
	}
	return out
}

// Plain is the paragraph without markers.
func (p Paragraph) Plain() string {
	return strings.ReplaceAll(string(p), "**", "")
}
