// Package clockface formats wall-clock time for the pixel board. It
// holds only display state; ticking and rendering live elsewhere.
package clockface

import (
	"fmt"
	"time"
)

// HourFormat selects between 24-hour and 12-hour display.
type HourFormat int

const (
	H24 HourFormat = iota
	H12
)

// String returns the settings token for the format.
func (h HourFormat) String() string {
	if h == H12 {
		return "12h"
	}
	return "24h"
}

// ParseHourFormat maps a settings token to a HourFormat. Unknown
// tokens fall back to 24-hour display.
func ParseHourFormat(s string) (HourFormat, bool) {
	switch s {
	case "12h":
		return H12, true
	case "24h", "":
		return H24, true
	default:
		return H24, false
	}
}

// TimeFormat selects which fields the big time line shows.
type TimeFormat int

const (
	HourMinSec TimeFormat = iota
	HourMin
	MinSec

	numTimeFormats
)

// String returns the settings token for the format.
func (tf TimeFormat) String() string {
	switch tf {
	case HourMin:
		return "hh:mm"
	case MinSec:
		return "mm:ss"
	default:
		return "hh:mm:ss"
	}
}

// ParseTimeFormat maps a settings token to a TimeFormat. Unknown
// tokens fall back to the full hh:mm:ss line.
func ParseTimeFormat(s string) (TimeFormat, bool) {
	switch s {
	case "hh:mm":
		return HourMin, true
	case "mm:ss":
		return MinSec, true
	case "hh:mm:ss", "":
		return HourMinSec, true
	default:
		return HourMinSec, false
	}
}

// Fixed English month tokens, independent of locale so the pixel date
// always fits the glyph set.
var monthTokens = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// Face is the clock's display state. All mutation happens on the event
// loop goroutine.
type Face struct {
	Hours    HourFormat
	Layout   TimeFormat
	ShowAMPM bool
}

// New returns a face with the defaults: 24-hour, full time line,
// meridiem marker enabled (it only shows in 12-hour mode).
func New() *Face {
	return &Face{Hours: H24, Layout: HourMinSec, ShowAMPM: true}
}

// Time renders t for the big pixel line, zero padded. In 12-hour mode
// the hour is folded to 1..12, so midnight reads 12:00 (AM) and noon
// 12:00 (PM).
func (f *Face) Time(t time.Time) string {
	hour := t.Hour()
	if f.Hours == H12 {
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}
	switch f.Layout {
	case HourMin:
		return fmt.Sprintf("%02d:%02d", hour, t.Minute())
	case MinSec:
		return fmt.Sprintf("%02d:%02d", t.Minute(), t.Second())
	default:
		return fmt.Sprintf("%02d:%02d:%02d", hour, t.Minute(), t.Second())
	}
}

// FullTime renders t with seconds regardless of the layout, for the
// caption line under the board.
func (f *Face) FullTime(t time.Time) string {
	hour := t.Hour()
	if f.Hours == H12 {
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}
	s := fmt.Sprintf("%02d:%02d:%02d", hour, t.Minute(), t.Second())
	if m := f.AMPM(t); m != "" {
		s += " " + m
	}
	return s
}

// AMPM returns "AM" or "PM" for t in 12-hour mode, and "" in 24-hour
// mode or when the marker is hidden.
func (f *Face) AMPM(t time.Time) string {
	if f.Hours != H12 || !f.ShowAMPM {
		return ""
	}
	if t.Hour() >= 12 {
		return "PM"
	}
	return "AM"
}

// Date renders t as the short pixel date, e.g. "24AUG".
func (f *Face) Date(t time.Time) string {
	return fmt.Sprintf("%02d%s", t.Day(), monthTokens[t.Month()-1])
}

// Year renders the four digit year.
func (f *Face) Year(t time.Time) string {
	return fmt.Sprintf("%d", t.Year())
}

// Caption renders the plain-text date line under the board.
func (f *Face) Caption(t time.Time) string {
	return t.Format("Mon 02 Jan 2006")
}

// ToggleHours flips between 24-hour and 12-hour display.
func (f *Face) ToggleHours() {
	if f.Hours == H24 {
		f.Hours = H12
	} else {
		f.Hours = H24
	}
}

// CycleLayout advances to the next time line layout, wrapping after
// the last one.
func (f *Face) CycleLayout() {
	f.Layout = (f.Layout + 1) % numTimeFormats
}

// ToggleAMPM flips the meridiem marker's visibility.
func (f *Face) ToggleAMPM() {
	f.ShowAMPM = !f.ShowAMPM
}
