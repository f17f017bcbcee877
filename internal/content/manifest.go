package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type Section struct {
	ID          string
	Name        string
	Description string
	Editable    bool
	Questions   []*Question
}

// Manifest is an ordered list of sections of questions.
type Manifest struct {
	Sections []*Section
}

func newManifest(sections []*Section) (*Manifest, error) {
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section %q has no id", s.Name)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return &Manifest{Sections: sections}, nil
}

func (m *Manifest) Section(id string) *Section {
	for _, s := range m.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// IsLastSection reports whether id is the final section of the manifest.
func (m *Manifest) IsLastSection(id string) bool {
	return len(m.Sections) > 0 && m.Sections[len(m.Sections)-1].ID == id
}

// NextEditableSectionID returns the first editable section after current, or
// the first editable section when current is empty. It returns "" when there
// is none.
func (m *Manifest) NextEditableSectionID(current string) string {
	start := 0
	if current != "" {
		start = -1
		for i, s := range m.Sections {
			if s.ID == current {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return ""
		}
	}
	for _, s := range m.Sections[start:] {
		if s.Editable {
			return s.ID
		}
	}
	return ""
}

func (m *Manifest) Question(id string) *Question {
	for _, s := range m.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q
			}
		}
	}
	return nil
}

// Questions returns every question in manifest order.
func (m *Manifest) Questions() []*Question {
	var out []*Question
	for _, s := range m.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// Filter returns a copy holding only the questions whose dependencies match
// data. Sections left empty are dropped.
func (m *Manifest) Filter(data map[string]any) *Manifest {
	filtered := &Manifest{}
	for _, s := range m.Sections {
		var questions []*Question
		for _, q := range s.Questions {
			if q.matches(data) {
				questions = append(questions, q)
			}
		}
		if len(questions) == 0 {
			continue
		}
		copied := *s
		copied.Questions = questions
		filtered.Sections = append(filtered.Sections, &copied)
	}
	return filtered
}

// SectionData converts the posted form for one section into answers. Only
// the section's own questions are read so answers to other sections are
// never touched.
func (m *Manifest) SectionData(section *Section, form url.Values) map[string]any {
	data := make(map[string]any)
	for _, q := range section.Questions {
		switch q.Type {
		case TypeUpload:
			continue
		case TypeBoolean:
			data[q.ID] = parseBoolean(form.Get(q.ID), form.Has(q.ID))
		case TypeCheckboxes, TypeList:
			data[q.ID] = cleanList(form[q.ID])
		case TypePricing:
			for _, key := range q.FieldKeys() {
				data[key] = strings.TrimSpace(form.Get(key))
			}
		default:
			data[q.ID] = strings.TrimSpace(form.Get(q.ID))
		}
	}
	return data
}

func parseBoolean(raw string, present bool) any {
	if !present {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	return nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a section id from its name.
func Slugify(name string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
