package content

import "strings"

// Question types understood by the forms and validators.
const (
	TypeText         = "text"
	TypeTextboxLarge = "textbox_large"
	TypeBoolean      = "boolean"
	TypeRadios       = "radios"
	TypeCheckboxes   = "checkboxes"
	TypeList         = "list"
	TypeNumber       = "number"
	TypePercentage   = "percentage"
	TypePricing      = "pricing"
	TypeUpload       = "upload"
)

// Pricing field roles mapped to answer keys by a pricing question's Fields.
const (
	FieldMinimumPrice  = "minimum_price"
	FieldMaximumPrice  = "maximum_price"
	FieldPriceUnit     = "price_unit"
	FieldPriceInterval = "price_interval"
)

type Option struct {
	Label       string `yaml:"label"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// Dependency hides a question unless the answer under On is one of Being.
type Dependency struct {
	On    string   `yaml:"on"`
	Being []string `yaml:"being"`
}

// ValidationMessage overrides the text shown for a validation failure.
type ValidationMessage struct {
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
}

type Question struct {
	ID          string              `yaml:"id"`
	Question    string              `yaml:"question"`
	Name        string              `yaml:"name"`
	Hint        string              `yaml:"hint"`
	Type        string              `yaml:"type"`
	Optional    bool                `yaml:"optional"`
	Options     []Option            `yaml:"options"`
	Depends     []Dependency        `yaml:"depends"`
	Fields      map[string]string   `yaml:"fields"`
	MaxWords    int                 `yaml:"max_length_in_words"`
	MaxLength   int                 `yaml:"max_length"`
	Pattern     string              `yaml:"pattern"`
	Validations []ValidationMessage `yaml:"validations"`
}

// Label is the short name used in summaries.
func (q *Question) Label() string {
	if q.Name != "" {
		return q.Name
	}
	return q.Question
}

// Message returns the configured message for a validation key.
func (q *Question) Message(key string) (string, bool) {
	for _, v := range q.Validations {
		if v.Name == key {
			return v.Message, true
		}
	}
	return "", false
}

// FieldKeys lists the answer keys a question writes, in a stable order.
func (q *Question) FieldKeys() []string {
	if q.Type != TypePricing || len(q.Fields) == 0 {
		return []string{q.ID}
	}
	var keys []string
	for _, role := range []string{FieldMinimumPrice, FieldMaximumPrice, FieldPriceUnit, FieldPriceInterval} {
		if key, ok := q.Fields[role]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// IsMultiValue reports whether the form posts several values for the question.
func (q *Question) IsMultiValue() bool {
	return q.Type == TypeCheckboxes || q.Type == TypeList
}

func (q *Question) matches(data map[string]any) bool {
	for _, dep := range q.Depends {
		value, _ := data[dep.On].(string)
		found := false
		for _, want := range dep.Being {
			if strings.EqualFold(want, value) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
