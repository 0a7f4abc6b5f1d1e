package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gift condition labels as presented by the catalog front end.
const (
	ConditionNew     = "New"
	ConditionLikeNew = "Like New"
	ConditionOlder   = "Older"
)

// Conditions lists the accepted condition labels in display order.
func Conditions() []string {
	return []string{ConditionNew, ConditionLikeNew, ConditionOlder}
}

// ValidCondition reports whether label is one of the accepted conditions.
func ValidCondition(label string) bool {
	switch label {
	case ConditionNew, ConditionLikeNew, ConditionOlder:
		return true
	}

	return false
}

// Gift is a single catalog listing. ImageURL is empty when no image was
// uploaded for the listing.
type Gift struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Condition   string
	Description string
	AgeYears    int
	ImageURL    string
	DateAdded   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
