package validation

import (
	"strings"
	"time"
)

// SanitizeKind selects how a field is cleaned.
type SanitizeKind int

const (
	// Text trims and escapes a scalar field.
	Text SanitizeKind = iota
	// List trims and escapes every element of a list field.
	List
	// Date trims a scalar field and converts it to a date (nil when empty or malformed).
	Date
)

// FieldSanitizer declares how one field is cleaned.
type FieldSanitizer struct {
	Field string
	Kind  SanitizeKind
}

// Clean holds sanitized, typed field values.
type Clean struct {
	text  map[string]string
	lists map[string][]string
	dates map[string]*time.Time
}

// Text is the sanitized value of a Text field.
func (c Clean) Text(field string) string { return c.text[field] }

// List is the sanitized value of a List field. Never nil for a declared field.
func (c Clean) List(field string) []string {
	if l, ok := c.lists[field]; ok {
		return l
	}
	return []string{}
}

// Date is the converted value of a Date field.
func (c Clean) Date(field string) *time.Time { return c.dates[field] }

// Sanitize cleans fields according to sanitizers. It runs whether or not
// validation passed, so re-rendered forms only ever echo cleaned values.
func Sanitize(fields Fields, sanitizers []FieldSanitizer) Clean {
	c := Clean{
		text:  make(map[string]string),
		lists: make(map[string][]string),
		dates: make(map[string]*time.Time),
	}

	for _, s := range sanitizers {
		switch s.Kind {
		case Text:
			c.text[s.Field] = Escape(strings.TrimSpace(fields.Value(s.Field)))
		case List:
			raw := fields.List(s.Field)
			out := make([]string, 0, len(raw))
			for _, v := range raw {
				out = append(out, Escape(strings.TrimSpace(v)))
			}
			c.lists[s.Field] = out
		case Date:
			c.dates[s.Field] = ToDate(strings.TrimSpace(fields.Value(s.Field)))
		}
	}

	return c
}

// markupReplacer escapes the characters that are significant in HTML markup
// and attribute values.
var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces markup-significant characters with HTML entities.
func Escape(s string) string {
	return markupReplacer.Replace(s)
}

// ToDate parses s as an ISO-8601 date, returning nil when s is empty or malformed.
func ToDate(s string) *time.Time {
	t, ok := ParseISODate(s)
	if !ok {
		return nil
	}
	return &t
}
