// Package content holds the portfolio's profile document: the fixed records
// every page section is rendered from.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

type Profile struct {
	Name           string          `yaml:"name"`
	ShortName      string          `yaml:"short_name"`
	Greeting       string          `yaml:"greeting"`
	Email          string          `yaml:"email"`
	ResumeURL      string          `yaml:"resume_url"`
	Hero           Hero            `yaml:"hero"`
	About          []Paragraph     `yaml:"about"`
	Education      []Education     `yaml:"education"`
	Skills         []SkillCategory `yaml:"skills"`
	Experience     []Experience    `yaml:"experience"`
	Projects       []Project       `yaml:"projects"`
	Certifications []Certification `yaml:"certifications"`
	Positions      []Position      `yaml:"positions"`
	Hobbies        []Hobby         `yaml:"hobbies"`
	Languages      []string        `yaml:"languages"`
	Links          []Link          `yaml:"links"`
}

type Hero struct {
	Video string   `yaml:"video"`
	Roles []string `yaml:"roles"`
}

type Education struct {
	Title       string `yaml:"title"`
	Institution string `yaml:"institution"`
	Location    string `yaml:"location"`
	Period      string `yaml:"period"`
	Score       string `yaml:"score"`
	Board       string `yaml:"board,omitempty"`
	Icon        string `yaml:"icon"`
}

type SkillCategory struct {
	Title  string  `yaml:"title"`
	Icon   string  `yaml:"icon"`
	Skills []Skill `yaml:"skills"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type Experience struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Icon         string   `yaml:"icon"`
	Achievements []string `yaml:"achievements"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Role         string   `yaml:"role"`
	Icon         string   `yaml:"icon"`
	Tech         []string `yaml:"tech"`
	Achievements []string `yaml:"achievements"`
}

type Certification struct {
	Title  string `yaml:"title"`
	Issuer string `yaml:"issuer"`
	Icon   string `yaml:"icon"`
}

type Position struct {
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
	Description  string `yaml:"description"`
	Icon         string `yaml:"icon"`
}

type Hobby struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type Link struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Href  string `yaml:"href"`
	Icon  string `yaml:"icon"`
}

// External reports whether the link leaves the site (anything but mailto).
func (l Link) External() bool {
	return !strings.HasPrefix(l.Href, "mailto:")
}

// Load parses the embedded profile.
func Load() (*Profile, error) {
	return Parse(defaultProfile)
}

func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

var ErrInvalidProfile = errors.New("invalid profile")

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if len(p.Hero.Roles) == 0 {
		return fmt.Errorf("%w: hero needs at least one role", ErrInvalidProfile)
	}
	for _, c := range p.Skills {
		for _, s := range c.Skills {
			if s.Level < 0 || s.Level > 100 {
				return fmt.Errorf("%w: skill %q level %d outside 0..100", ErrInvalidProfile, s.Name, s.Level)
			}
		}
	}
	return nil
}
