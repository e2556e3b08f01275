package model

import (
	"strconv"
	"time"
)

// Author is a person who wrote one or more books.
type Author struct {
	ID          string     `json:"id" bson:"_id" db:"id"`
	FirstName   string     `json:"first_name" bson:"first_name" db:"first_name"`
	FamilyName  string     `json:"family_name" bson:"family_name" db:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty" db:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty" bson:"date_of_death,omitempty" db:"date_of_death"`
}

// FullName is "family, first", or "" when either part is missing.
func FullName(firstName, familyName string) string {
	if firstName == "" || familyName == "" {
		return ""
	}
	return familyName + ", " + firstName
}

// Lifespan is the difference in calendar years between death and birth.
// ok is false when either date is unknown.
func Lifespan(birth, death *time.Time) (years int, ok bool) {
	if birth == nil || death == nil || birth.IsZero() || death.IsZero() {
		return 0, false
	}
	return death.Year() - birth.Year(), true
}

// AuthorURL is the canonical URL of the author with id.
func AuthorURL(id string) string {
	return EntityURL(KindAuthor, id)
}

// Name is FullName of the author's own fields.
func (a Author) Name() string {
	return FullName(a.FirstName, a.FamilyName)
}

// Lifespan renders the lifespan in years, or "" when it cannot be computed.
func (a Author) Lifespan() string {
	years, ok := Lifespan(a.DateOfBirth, a.DateOfDeath)
	if !ok {
		return ""
	}
	return strconv.Itoa(years)
}

// URL is AuthorURL of the author's id.
func (a Author) URL() string {
	return AuthorURL(a.ID)
}
