package content

import "strings"

// Attribute is one answered (or unanswered) question on a summary page.
type Attribute struct {
	Label    string
	Type     string
	Value    any
	Optional bool
}

// AnswerRequired reports a mandatory question without an answer.
func (a Attribute) AnswerRequired() bool {
	return !a.Optional && IsEmptyValue(a.Value)
}

type SummarySection struct {
	ID       string
	Name     string
	Editable bool
	Rows     []Attribute
}

// Summary pairs every question with its value in data.
func (m *Manifest) Summary(data map[string]any) []SummarySection {
	sections := make([]SummarySection, 0, len(m.Sections))
	for _, s := range m.Sections {
		rows := make([]Attribute, 0, len(s.Questions))
		for _, q := range s.Questions {
			rows = append(rows, Attribute{
				Label:    q.Label(),
				Type:     q.Type,
				Value:    questionValue(q, data),
				Optional: q.Optional,
			})
		}
		sections = append(sections, SummarySection{ID: s.ID, Name: s.Name, Editable: s.Editable, Rows: rows})
	}
	return sections
}

func questionValue(q *Question, data map[string]any) any {
	if q.Type == TypePricing && len(q.Fields) > 0 {
		if v, ok := data[q.ID]; ok {
			return v
		}
		price := FormatFieldBasedPrice(data, q)
		if price == "" {
			return nil
		}
		return price
	}
	return data[q.ID]
}

// IsEmptyValue treats nil, blank strings and empty lists as unanswered.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
