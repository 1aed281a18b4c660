package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBlank           = errors.New("the task is blank")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDate     = errors.New("the input date is invalid")
	ErrInvalidTime     = errors.New("the input time is invalid")
	ErrInvalidIndex    = errors.New("invalid task number")
	ErrInvalidField    = errors.New("invalid field")
)

// ParsePriority accepts one of C, H, N, L in either case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// ParseDate accepts year-month-day with unpadded numeric components and
// rejects dates that do not exist on the calendar.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	var nums [3]int
	for i, part := range parts {
		n, ok := atoiDigits(part)
		if !ok {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseClock accepts hour:minute with hour in [0,23] and minute in [0,59].
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, okH := atoiDigits(parts[0])
	m, okM := atoiDigits(parts[1])
	c := Clock{Hour: h, Minute: m}
	if !okH || !okM || !c.Valid() {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return c, nil
}

// ParseIndex converts a 1-based task number into a 0-based index into a
// store holding count tasks.
func ParseIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	return n - 1, nil
}

// Field names the part of a task an edit replaces.
type Field string

const (
	FieldPriority Field = "priority"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldTask     Field = "task"
)

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldPriority, FieldDate, FieldTime, FieldTask:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}

// atoiDigits parses a non-empty run of ASCII digits. Signs, spaces and
// values that overflow int are rejected.
func atoiDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
