package suggestion

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"ResearchScout/internal/domain"
)

const maxSlugLen = 60

type frontmatter struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	Date          string   `yaml:"date"`
	Draft         bool     `yaml:"draft"`
	ResearchBasis string   `yaml:"research_basis,omitempty"`
}

// RenderStub produces a markdown draft with YAML frontmatter and one section per outline entry.
func RenderStub(s domain.Suggestion, now time.Time) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatter{
		Title:         s.Title,
		Description:   s.Description,
		Tags:          s.KeyConcepts,
		Date:          now.UTC().Format("2006-01-02"),
		Draft:         true,
		ResearchBasis: s.ResearchBasis,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", s.Description)
	}
	outline := s.Outline
	if len(outline) == 0 {
		outline = []string{"Introduction", "Key Ideas", "Takeaways"}
	}
	for _, section := range outline {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n_Draft pending._\n\n", section)
	}
	return b.Bytes(), nil
}

// StubName picks the stub file name; blog posts get a date prefix.
func StubName(s domain.Suggestion, now time.Time) string {
	name := Slug(s.Title)
	if name == "" {
		name = "untitled"
	}
	if strings.EqualFold(strings.TrimSpace(s.TargetSection), "blog") {
		name = now.UTC().Format("2006-01-02") + "-" + name
	}
	return name + ".md"
}

// Slug lowercases a title and joins its alphanumeric runs with dashes. The
// result is at most maxSlugLen bytes and never splits a multibyte letter.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLen {
		cut := maxSlugLen
		for cut > 0 && !utf8.RuneStart(slug[cut]) {
			cut--
		}
		slug = strings.TrimRight(slug[:cut], "-")
	}
	return slug
}
