package timewindow

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TapGracePeriod is how long before an event's start a tap already counts
// as being "for" that event.
const TapGracePeriod = 30 * time.Minute

// TimeOfDay is a wall-clock time with no date attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an event start/end string. Both 12-hour
// ("6:00 PM", AM/PM case-insensitive) and 24-hour ("14:00") forms are
// accepted. 12:00 AM maps to hour 0 and 12:00 PM stays hour 12.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TimeOfDay{}, fmt.Errorf("empty time string")
	}

	upper := strings.ToUpper(trimmed)
	meridiem := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}
	if meridiem != "" {
		upper = strings.TrimSpace(strings.TrimSuffix(upper, meridiem))
	}

	parts := strings.Split(upper, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("malformed time string %q", s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("malformed hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("malformed minute in %q: %w", s, err)
	}

	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour >= 1 && hour <= 11 {
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// At anchors the wall-clock time to a calendar date in the given zone.
func (t TimeOfDay) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Window is the absolute start/end instant pair of one event, resolved
// once and shared by the matcher, the sweeps and the aggregator.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve combines an event's calendar date with its start/end strings
// into absolute instants in loc. Malformed or inverted bounds return an
// error so callers abort instead of matching against a bogus window.
func Resolve(date time.Time, startStr, endStr string, loc *time.Location) (Window, error) {
	start, err := ParseTimeOfDay(startStr)
	if err != nil {
		return Window{}, fmt.Errorf("resolve start time: %w", err)
	}
	end, err := ParseTimeOfDay(endStr)
	if err != nil {
		return Window{}, fmt.Errorf("resolve end time: %w", err)
	}

	w := Window{
		Start: start.At(date, loc),
		End:   end.At(date, loc),
	}
	if !w.Start.Before(w.End) {
		return Window{}, fmt.Errorf("start %q is not before end %q", startStr, endStr)
	}
	return w, nil
}

// TapOpensAt is the earliest instant a tap matches this window.
func (w Window) TapOpensAt() time.Time {
	return w.Start.Add(-TapGracePeriod)
}

// Contains reports whether t falls inside the tap window
// [Start - grace, End], both bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.TapOpensAt()) && !t.After(w.End)
}

// Ended reports whether the event is over at instant t.
func (w Window) Ended(t time.Time) bool {
	return w.End.Before(t)
}

// Duration is the scheduled length of the event.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Hours is the scheduled length in hours, rounded to two decimals.
func (w Window) Hours() float64 {
	return RoundHours(w.Duration())
}

// RoundHours converts a duration to hours rounded to two decimals,
// clamping negatives to zero.
func RoundHours(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return math.Round(d.Hours()*100) / 100
}

// EffectiveStart discounts time logged before the event officially began.
func EffectiveStart(checkIn, eventStart time.Time) time.Time {
	if checkIn.After(eventStart) {
		return checkIn
	}
	return eventStart
}
