package web

import (
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"
	_ "time/tzdata"
)

var london = mustLoadLocation("Europe/London")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Funcs is the template function map shared by pages and emails.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"dateformat":     DateFormat,
		"datetimeformat": DateTimeFormat,
		"join":           strings.Join,
		"capitalize":     capitalize,
		"lower":          strings.ToLower,
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
		"selected": Selected,
		"nl2br": func(s string) template.HTML {
			return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
		},
	}
}

// DateFormat renders t as "Monday 2 January 2006" in UK time.
func DateFormat(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(london).Format("Monday 2 January 2006")
}

// DateTimeFormat renders t as "Monday 2 January 2006 at 15:04" in UK time.
func DateTimeFormat(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(london).Format("Monday 2 January 2006 at 15:04")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Selected reports whether an answer holds option. Booleans match "true" and
// "false"; lists match any of their members.
func Selected(answer any, option string) bool {
	switch v := answer.(type) {
	case nil:
		return false
	case string:
		return v == option
	case bool:
		return fmt.Sprint(v) == option
	case []string:
		return slices.Contains(v, option)
	case []any:
		for _, item := range v {
			if Selected(item, option) {
				return true
			}
		}
		return false
	}
	return fmt.Sprint(answer) == option
}
