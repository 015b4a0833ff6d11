package domain

import (
	"fmt"
	"time"
)

// DateLayout is the 8-digit YYYYMMDD form used by EMSHR Lite date columns.
const DateLayout = "20060102"

const (
	unknownStartText = "00010101"
	openEndText      = "99991231"
)

var (
	unknownStartTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	openEndTime      = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// DateKind distinguishes real calendar dates from the source format's sentinels.
type DateKind uint8

const (
	// DateUnset is the zero value; a Period holding it is never valid.
	DateUnset DateKind = iota
	// DateKnown is an ordinary calendar date.
	DateKnown
	// DateUnknown stands for the 00010101 "no recorded beginning" sentinel.
	DateUnknown
	// DateOpenEnded stands for the 99991231 "still operating" sentinel.
	DateOpenEnded
)

func (k DateKind) String() string {
	switch k {
	case DateKnown:
		return "known"
	case DateUnknown:
		return "unknown"
	case DateOpenEnded:
		return "open-ended"
	default:
		return "unset"
	}
}

// Date is a calendar day as read from an EMSHR Lite file.
type Date struct {
	kind DateKind
	t    time.Time
}

// KnownDate returns an ordinary date. Passing the sentinel days yields the
// matching sentinel kind so the two representations never diverge.
func KnownDate(year int, month time.Month, day int) Date {
	return dateFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// UnknownDate returns the "no recorded beginning" sentinel.
func UnknownDate() Date { return Date{kind: DateUnknown, t: unknownStartTime} }

// OpenEndedDate returns the "still operating" sentinel.
func OpenEndedDate() Date { return Date{kind: DateOpenEnded, t: openEndTime} }

// ParseDate reads an 8-digit YYYYMMDD value, mapping the sentinel values to
// DateUnknown and DateOpenEnded. Year 0 is rejected.
func ParseDate(s string) (Date, error) {
	switch s {
	case unknownStartText:
		return UnknownDate(), nil
	case openEndText:
		return OpenEndedDate(), nil
	}
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("parse date %q: want %d digits", s, len(DateLayout))
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if t.Before(unknownStartTime) {
		return Date{}, fmt.Errorf("parse date %q: year out of range", s)
	}
	return dateFromTime(t), nil
}

func dateFromTime(t time.Time) Date {
	switch {
	case t.Equal(unknownStartTime):
		return UnknownDate()
	case t.Equal(openEndTime):
		return OpenEndedDate()
	}
	return Date{kind: DateKnown, t: t}
}

// Kind reports which kind of date d is.
func (d Date) Kind() DateKind { return d.kind }

// IsSet reports whether d holds any date, sentinel or not.
func (d Date) IsSet() bool { return d.kind != DateUnset }

// IsKnown reports whether d is an ordinary calendar date.
func (d Date) IsKnown() bool { return d.kind == DateKnown }

// IsUnknown reports whether d is the unknown-start sentinel.
func (d Date) IsUnknown() bool { return d.kind == DateUnknown }

// IsOpenEnded reports whether d is the open-end sentinel.
func (d Date) IsOpenEnded() bool { return d.kind == DateOpenEnded }

// Time returns the instant used for ordering. Unknown sorts before every
// known date and OpenEnded after every known date.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d sorts strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d sorts strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same day of the same kind.
func (d Date) Equal(other Date) bool {
	return d.kind == other.kind && d.t.Equal(other.t)
}

// Format re-serializes d in the source's YYYYMMDD form, sentinels included.
func (d Date) Format() string {
	switch d.kind {
	case DateUnknown:
		return unknownStartText
	case DateOpenEnded:
		return openEndText
	case DateKnown:
		return d.t.Format(DateLayout)
	default:
		return ""
	}
}

// String renders d as YYYY-MM-DD.
func (d Date) String() string {
	if d.kind == DateUnset {
		return "unset"
	}
	return d.t.Format(time.DateOnly)
}
