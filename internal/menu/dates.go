package menu

import "time"

// DateLayout is the calendar-date form used throughout: menu_date
// columns, feed documents, and query parameters.
const DateLayout = "2006-01-02"

// Today returns the local calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
