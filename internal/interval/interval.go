package interval

import (
	"encoding/json"
	"fmt"
	"strings"

	"trainslot/internal/apperr"
)

// Weekday is an exact-match day name. No wraparound arithmetic: a Sunday
// interval never touches a Monday one.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = map[Weekday]bool{
	Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
	Friday: true, Saturday: true, Sunday: true,
}

var weekdayNames = map[string]Weekday{
	"monday": Monday, "tuesday": Tuesday, "wednesday": Wednesday,
	"thursday": Thursday, "friday": Friday, "saturday": Saturday,
	"sunday": Sunday,
}

func ParseWeekday(s string) (Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidInterval, "unknown weekday %q", s)
	}
	return d, nil
}

// TimeOfDay is a local wall-clock time measured in seconds since midnight.
// No date, no timezone.
type TimeOfDay int

const SecondsPerDay = 24 * 60 * 60

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	var err error
	switch strings.Count(s, ":") {
	case 1:
		_, err = fmt.Sscanf(s, "%d:%d", &h, &m)
	case 2:
		_, err = fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	default:
		err = fmt.Errorf("expected HH:MM or HH:MM:SS")
	}
	if err != nil {
		return 0, apperr.Newf(apperr.KindInvalidInterval, "invalid time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, apperr.Newf(apperr.KindInvalidInterval, "time %q out of range", s)
	}
	return NewTimeOfDay(h, m, sec), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeInterval is a time range on a single weekday. Valid intervals always
// satisfy Start < End; use New to construct one.
type TimeInterval struct {
	Day   Weekday   `json:"day_of_week"`
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

func New(day Weekday, start, end TimeOfDay) (TimeInterval, error) {
	if !weekdays[day] {
		return TimeInterval{}, apperr.Newf(apperr.KindInvalidInterval, "unknown weekday %q", string(day))
	}
	if start < 0 || end > SecondsPerDay {
		return TimeInterval{}, apperr.New(apperr.KindInvalidInterval, "time of day out of range")
	}
	if start >= end {
		return TimeInterval{}, apperr.Newf(apperr.KindInvalidInterval,
			"start time %s must be before end time %s", start, end)
	}
	return TimeInterval{Day: day, Start: start, End: end}, nil
}

// Overlaps reports whether a and b share at least one instant. Touching
// endpoints (a.End == b.Start) do not overlap, so back-to-back sessions are
// allowed.
func Overlaps(a, b TimeInterval) bool {
	if a.Day != b.Day {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether inner lies entirely within outer, endpoints
// inclusive.
func Contains(outer, inner TimeInterval) bool {
	if outer.Day != inner.Day {
		return false
	}
	return outer.Start <= inner.Start && inner.End <= outer.End
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("%s %s-%s", i.Day, i.Start, i.End)
}
