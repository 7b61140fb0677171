package views

import (
	"fmt"
	"time"

	"github.com/eringen/blogpage/content"
)

const longDate = "January 2, 2006"

// FormatDate renders a publishedAt value as "January 2, 2006". Values that
// do not parse are returned unchanged.
func FormatDate(date string) string {
	t, err := content.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(longDate)
}

// FormatDateRelative is FormatDate followed by the calendar distance to now,
// e.g. "March 1, 2024 (2mo ago)".
func FormatDateRelative(date string, now time.Time) string {
	t, err := content.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", t.Format(longDate), relative(t, now))
}

// relative compares calendar fields only, coarsest first.
func relative(t, now time.Time) string {
	years := now.Year() - t.Year()
	months := int(now.Month()) - int(t.Month())
	days := now.Day() - t.Day()
	switch {
	case years > 0:
		return fmt.Sprintf("%dy ago", years)
	case months > 0:
		return fmt.Sprintf("%dmo ago", months)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	}
	return "Today"
}
