package model

import (
	"fmt"
	"time"
)

// Status is the availability of a physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// DefaultStatus applies when the form leaves status empty.
const DefaultStatus = StatusMaintenance

// Statuses lists every status in form order.
var Statuses = []Status{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}

// ParseStatus maps s onto a Status. Empty input yields DefaultStatus.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return DefaultStatus, nil
	}
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// BookInstance is one physical copy of a Book.
type BookInstance struct {
	ID      string    `json:"id" bson:"_id" db:"id"`
	BookID  string    `json:"book" bson:"book" db:"book_id"`
	Imprint string    `json:"imprint" bson:"imprint" db:"imprint"`
	Status  Status    `json:"status" bson:"status" db:"status"`
	DueBack time.Time `json:"due_back" bson:"due_back" db:"due_back"`
}

// BookInstanceURL is the canonical URL of the copy with id.
func BookInstanceURL(id string) string {
	return EntityURL(KindBookInstance, id)
}

// URL is BookInstanceURL of the copy's id.
func (bi BookInstance) URL() string {
	return BookInstanceURL(bi.ID)
}

// DueBackFormatted renders DueBack for display.
func (bi BookInstance) DueBackFormatted() string {
	return FormatDate(&bi.DueBack)
}

// BookInstanceDetail is a copy joined with its book.
type BookInstanceDetail struct {
	BookInstance
	Book Book
}
