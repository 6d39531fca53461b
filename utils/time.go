package utils

import (
	"log"
	"time"
)

const DateLayout = "2006-01-02"

// LoadLocation returns the salon time zone, falling back to UTC when the zone
// database does not know the name.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown time zone %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// Today is the calendar date of t in loc, as "YYYY-MM-DD".
func Today(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
