package service

import (
	"fmt"
	"time"

	"inkwell/internal/domain/models"
)

// DeriveSchedule computes the calendar slot for an approved variant
// from the format's posting rule.
//
// With a day-of-week rule the slot lands on the next occurrence of that
// day, always in the future: when today is that day the slot moves a
// full week out. Without a day rule the slot is tomorrow. A time-of-day
// rule ("HH:MM") overwrites the clock with seconds zeroed; otherwise
// the slot keeps now's clock.
func DeriveSchedule(rule *models.PostingRule, now time.Time) time.Time {
	slot := now.AddDate(0, 0, 1)

	if rule != nil && rule.DayOfWeek != nil {
		days := (*rule.DayOfWeek - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		slot = now.AddDate(0, 0, days)
	}

	if rule != nil && rule.TimeOfDay != nil {
		var hour, minute int
		if _, err := fmt.Sscanf(*rule.TimeOfDay, "%d:%d", &hour, &minute); err == nil {
			slot = time.Date(slot.Year(), slot.Month(), slot.Day(), hour, minute, 0, 0, slot.Location())
		}
	}

	return slot
}
