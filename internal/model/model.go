// Package model declares the catalog records (Author, Genre, Book,
// BookInstance) and the pure functions that derive display values from them.
//
// Derived values (full name, lifespan, canonical URL) are never stored.
// They are computed from the record's own fields passed in explicitly.
package model

import (
	"fmt"
	"time"
)

// CatalogPath is the prefix every canonical URL hangs off.
const CatalogPath = "/catalog"

// Kind names an entity kind. It doubles as the URL segment of the detail
// page ("/catalog/<kind>/<id>") and its list page ("/catalog/<kind>s").
type Kind string

const (
	KindAuthor       Kind = "author"
	KindGenre        Kind = "genre"
	KindBook         Kind = "book"
	KindBookInstance Kind = "bookinstance"
)

// EntityURL returns the canonical URL of the entity of kind with id.
func EntityURL(kind Kind, id string) string {
	return fmt.Sprintf("%s/%s/%s", CatalogPath, kind, id)
}

// ListURL returns the list page of kind.
func ListURL(kind Kind) string {
	return fmt.Sprintf("%s/%ss", CatalogPath, kind)
}

// Display date layouts.
const (
	// DisplayDateLayout renders dates on detail and list pages ("Jan 2, 2006").
	DisplayDateLayout = "Jan 2, 2006"

	// InputDateLayout is the value format of <input type="date">.
	InputDateLayout = "2006-01-02"
)

// FormatDate renders t for humans, or "" for a nil or zero time.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

// InputDate renders t as a date input value, or "" for a nil or zero time.
func InputDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(InputDateLayout)
}
