package util

import (
	"strings"
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(layout, strings.TrimSpace(s))
}

// FormatArticleDate renders the date path segment the news endpoint
// expects (YYYY-MM-DD).
func FormatArticleDate(t time.Time) string {
	return t.Format(layout)
}

// CurrentSeason maps a date onto the NFL season it belongs to - January
// and February games count toward the prior year's season.
func CurrentSeason(t time.Time) int {
	if t.Month() < time.March {
		return t.Year() - 1
	}
	return t.Year()
}
