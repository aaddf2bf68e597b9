package availability

import (
	"errors"
	"strings"
)

// ErrNoMatchingDays is returned when records exist but none of them falls on
// a requested day.
var ErrNoMatchingDays = errors.New("no record falls on a requested day")

// Weekday names and abbreviations, English and German, mapped to one key.
var weekdayKeys = map[string]string{
	"monday": "monday", "mon": "monday", "montag": "monday", "mo": "monday",
	"tuesday": "tuesday", "tue": "tuesday", "tues": "tuesday", "dienstag": "tuesday", "di": "tuesday",
	"wednesday": "wednesday", "wed": "wednesday", "mittwoch": "wednesday", "mi": "wednesday",
	"thursday": "thursday", "thu": "thursday", "thur": "thursday", "thurs": "thursday", "donnerstag": "thursday", "do": "thursday",
	"friday": "friday", "fri": "friday", "freitag": "friday", "fr": "friday",
	"saturday": "saturday", "sat": "saturday", "samstag": "saturday", "sonnabend": "saturday", "sa": "saturday",
	"sunday": "sunday", "sun": "sunday", "sonntag": "sunday", "so": "sunday",
}

// DayKey returns the label records and requested days are matched on.
// Weekday names match case-insensitively across English and German, so
// "Montag" and "Monday" share a key. Other labels match exactly.
func DayKey(label string) string {
	label = strings.TrimSpace(label)
	if k, ok := weekdayKeys[strings.ToLower(strings.TrimSuffix(label, "."))]; ok {
		return k
	}
	return label
}
