package view

import (
	"time"

	"github.com/taskboard/taskboard/internal/domain/entities"
)

const dateLayout = "Jan 2, 2006"

// Text dereferences an optional string for display; nil renders empty.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatDate renders a date for display; a nil date renders as the empty
// string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// TruncateText shortens s to at most length characters plus an ellipsis
// marker. Strings at or under the limit come back unchanged; a
// non-positive length falls back to 100.
func TruncateText(s string, length int) string {
	if length <= 0 {
		length = 100
	}
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}

// PriorityClass maps a priority to its display style. Unknown values get
// the neutral style rather than an error; templates must never fail on
// bad data.
func PriorityClass(p entities.Priority) string {
	switch p {
	case entities.PriorityHigh:
		return "danger"
	case entities.PriorityMedium:
		return "warning"
	case entities.PriorityLow:
		return "info"
	default:
		return "secondary"
	}
}

// IsPastDue reports whether the date is strictly before today, compared
// at day granularity. Nil means no deadline and is never past due.
func IsPastDue(t *time.Time) bool {
	return isPastDueAt(t, time.Now())
}

// IsDueToday reports whether the date falls on today. Nil is never due.
func IsDueToday(t *time.Time) bool {
	return isDueTodayAt(t, time.Now())
}

func isPastDueAt(t *time.Time, now time.Time) bool {
	if t == nil {
		return false
	}
	return truncateToDay(*t).Before(truncateToDay(now))
}

func isDueTodayAt(t *time.Time, now time.Time) bool {
	if t == nil {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
