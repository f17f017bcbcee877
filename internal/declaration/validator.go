package declaration

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"supplierfront/internal/content"
)

// Validation failure keys. Question content may override the message shown
// for each key.
const (
	KeyAnswerRequired      = "answer_required"
	KeyUnderWordLimit      = "under_word_limit"
	KeyUnderCharacterLimit = "under_character_limit"
	KeyInvalidFormat       = "invalid_format"
	KeyInvalidOption       = "invalid_option"
	KeyMaxLessThanMin      = "max_less_than_min"
)

// FieldError is a failed validation for one question.
type FieldError struct {
	Key      string
	Message  string
	Question string
}

// Errors maps question id to its validation failure.
type Errors map[string]FieldError

// Validator checks answers against the questions of a manifest.
type Validator struct {
	manifest *content.Manifest
	answers  map[string]any
}

func NewValidator(manifest *content.Manifest, answers map[string]any) *Validator {
	return &Validator{manifest: manifest, answers: answers}
}

// ErrorMessages validates every question in the manifest.
func (v *Validator) ErrorMessages() Errors {
	errs := Errors{}
	for _, section := range v.manifest.Sections {
		v.validateSection(section, errs)
	}
	return errs
}

// ErrorMessagesForPage validates only the questions of one section.
func (v *Validator) ErrorMessagesForPage(section *content.Section) Errors {
	errs := Errors{}
	v.validateSection(section, errs)
	return errs
}

func (v *Validator) validateSection(section *content.Section, errs Errors) {
	for _, q := range section.Questions {
		if key, detail := v.validateQuestion(q); key != "" {
			errs[q.ID] = FieldError{Key: key, Message: message(q, key, detail), Question: q.Label()}
		}
	}
}

func (v *Validator) validateQuestion(q *content.Question) (string, int) {
	if q.Type == content.TypeUpload {
		return "", 0
	}
	if q.Type == content.TypePricing && len(q.Fields) > 0 {
		return v.validatePricing(q)
	}

	value := v.answers[q.ID]
	if content.IsEmptyValue(value) {
		if q.Optional {
			return "", 0
		}
		return KeyAnswerRequired, 0
	}

	switch q.Type {
	case content.TypeText, content.TypeTextboxLarge:
		text, _ := value.(string)
		if q.MaxWords > 0 && len(strings.Fields(text)) > q.MaxWords {
			return KeyUnderWordLimit, q.MaxWords
		}
		if q.MaxLength > 0 && utf8.RuneCountInString(text) > q.MaxLength {
			return KeyUnderCharacterLimit, q.MaxLength
		}
	case content.TypeNumber:
		if _, ok := parseNumber(value); !ok {
			return KeyInvalidFormat, 0
		}
	case content.TypePercentage:
		n, ok := parseNumber(value)
		if !ok || n < 0 || n > 100 {
			return KeyInvalidFormat, 0
		}
	case content.TypeRadios:
		if len(q.Options) > 0 && !hasOption(q, fmt.Sprint(value)) {
			return KeyInvalidOption, 0
		}
	case content.TypeCheckboxes:
		if len(q.Options) > 0 {
			for _, item := range listValues(value) {
				if !hasOption(q, item) {
					return KeyInvalidOption, 0
				}
			}
		}
	case content.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return KeyInvalidFormat, 0
		}
	}

	if q.Pattern != "" {
		text, _ := value.(string)
		if !govalidator.Matches(text, q.Pattern) {
			return KeyInvalidFormat, 0
		}
	}
	return "", 0
}

func (v *Validator) validatePricing(q *content.Question) (string, int) {
	minKey, maxKey := q.Fields[content.FieldMinimumPrice], q.Fields[content.FieldMaximumPrice]
	minValue, maxValue := v.answers[minKey], v.answers[maxKey]
	if content.IsEmptyValue(minValue) {
		if q.Optional {
			return "", 0
		}
		return KeyAnswerRequired, 0
	}
	minPrice, ok := parseNumber(minValue)
	if !ok {
		return KeyInvalidFormat, 0
	}
	if !content.IsEmptyValue(maxValue) {
		maxPrice, ok := parseNumber(maxValue)
		if !ok {
			return KeyInvalidFormat, 0
		}
		if maxPrice < minPrice {
			return KeyMaxLessThanMin, 0
		}
	}
	return "", 0
}

var defaultMessages = map[string]string{
	KeyAnswerRequired:      "You need to answer this question.",
	KeyUnderWordLimit:      "Your answer must be no more than %d words.",
	KeyUnderCharacterLimit: "Your answer must be no more than %d characters.",
	KeyInvalidFormat:       "Your answer is not in the right format.",
	KeyInvalidOption:       "You need to choose one of the options.",
	KeyMaxLessThanMin:      "Minimum price must be less than maximum price.",
}

func message(q *content.Question, key string, detail int) string {
	if msg, ok := q.Message(key); ok {
		return msg
	}
	msg := defaultMessages[key]
	if detail > 0 {
		return fmt.Sprintf(msg, detail)
	}
	return msg
}

func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(n, "%")), 64)
		return f, err == nil
	}
	return 0, false
}

func hasOption(q *content.Question, value string) bool {
	return slices.ContainsFunc(q.Options, func(o content.Option) bool {
		if o.Value != "" {
			return o.Value == value
		}
		return o.Label == value
	})
}

func listValues(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
