package models

import (
	"time"
)

// Calendar post statuses. Nothing in this system publishes content;
// PUBLISHED is only ever set by hand through the calendar endpoint.
const (
	CalendarStatusScheduled = "SCHEDULED"
	CalendarStatusPublished = "PUBLISHED"
	CalendarStatusCancelled = "CANCELLED"
)

// CalendarPost is a derived entity created when a generated variant is
// approved: the content, the platform it targets, and the slot computed
// from the format's posting rule.
type CalendarPost struct {
	ID            string    `json:"id"`
	VariantID     *string   `json:"documentFormatId"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Platform      string    `json:"platform"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidCalendarStatus reports whether s is one of the known statuses.
func ValidCalendarStatus(s string) bool {
	switch s {
	case CalendarStatusScheduled, CalendarStatusPublished, CalendarStatusCancelled:
		return true
	}
	return false
}
