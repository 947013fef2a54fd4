package entity

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayOfWeek is an ISO weekday: Monday = 1 ... Sunday = 7.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayOfWeekOf returns the ISO weekday of t.
func DayOfWeekOf(t time.Time) DayOfWeek {
	return DayOfWeek((int(t.Weekday())+6)%7 + 1)
}

func (d DayOfWeek) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d DayOfWeek) String() string {
	if !d.IsValid() {
		return "DayOfWeek(" + strconv.Itoa(int(d)) + ")"
	}
	return dayNames[d]
}

// ParseDayOfWeek accepts full or three-letter English names in any case, or
// the ISO number as a string.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		d := DayOfWeek(n)
		if d.IsValid() {
			return d, nil
		}
		return 0, fmt.Errorf("invalid day of week %q", s)
	}
	for i := Monday; i <= Sunday; i++ {
		if s == dayNames[i] || (len(s) == 3 && strings.HasPrefix(dayNames[i], s)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid day of week %q", s)
}

func (d DayOfWeek) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid day of week %d", int(d))
	}
	return []byte(dayNames[d]), nil
}

func (d *DayOfWeek) UnmarshalText(text []byte) error {
	parsed, err := ParseDayOfWeek(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the weekday as its ISO number.
func (d DayOfWeek) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DayOfWeek) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*d = DayOfWeek(v)
	case int32:
		*d = DayOfWeek(v)
	case int16:
		*d = DayOfWeek(v)
	case []byte:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}
		*d = DayOfWeek(n)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*d = DayOfWeek(n)
	default:
		return fmt.Errorf("cannot scan %T into DayOfWeek", value)
	}
	return nil
}
