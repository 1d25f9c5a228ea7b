package utils

import "time"

// DateLayout รูปแบบวันที่ที่เก็บใน MongoDB
const DateLayout = "2006-01-02"

// Clock supplies "today" as a UTC calendar date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time { return TruncateDay(time.Now()) }

// SystemClock คืน Clock ที่อิงเวลาจริงของเครื่อง (UTC)
func SystemClock() Clock { return systemClock{} }

// FixedClock always reports the same day. Used by tests and jobs that
// replay a specific date.
type FixedClock time.Time

func (c FixedClock) Today() time.Time { return TruncateDay(time.Time(c)) }

// TruncateDay returns midnight UTC of t's UTC calendar date.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// WeekStart returns the Monday on or before day.
func WeekStart(day time.Time) time.Time {
	day = TruncateDay(day)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of day's month.
func MonthStart(day time.Time) time.Time {
	day = TruncateDay(day)
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}
