// Package normalize converts the raw field encodings used by the academic
// sources into the canonical forms the reconciliation core compares and
// writes: military time into 12-hour text, concatenated weekday codes into
// day-name lists, and free-text room strings into matchable location keys.
//
// All functions are pure. Blank input is not an error: it normalizes to the
// empty string so that sections without meeting times or rooms flow through
// untouched.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/errors"
)

// weekdays is the fixed scan order for meeting-day codes. Output day names
// are always emitted in this order regardless of input order.
var weekdays = []struct {
	code string
	name string
}{
	{"SU", "Sunday"},
	{"MO", "Monday"},
	{"TU", "Tuesday"},
	{"WE", "Wednesday"},
	{"TH", "Thursday"},
	{"FR", "Friday"},
	{"SA", "Saturday"},
}

// Time converts a 24-hour "HH:MM" string into 12-hour "hh:mmam"/"hh:mmpm"
// text. Blank input (empty or whitespace only) returns "" with no error.
// Hours must be in [0,24] and minutes in [0,59]; hour 24 is permitted only
// with minute 0 and means midnight. The conversion is one-way: the output
// form is never re-parsed.
func Time(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return "", errors.NewInvalidTimeError(raw, "expected HH:MM")
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return "", errors.NewInvalidTimeError(raw, "hour is not numeric")
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return "", errors.NewInvalidTimeError(raw, "minute is not numeric")
	}

	switch {
	case hour < 0 || hour > 24:
		return "", errors.NewInvalidTimeError(raw, "hour out of range")
	case minute < 0 || minute > 59:
		return "", errors.NewInvalidTimeError(raw, "minute out of range")
	case hour == 24 && minute != 0:
		return "", errors.NewInvalidTimeError(raw, "hour 24 is only valid as 24:00")
	}

	meridiem := "pm"
	if hour < 12 || hour == 24 {
		meridiem = "am"
	}

	// Hours above 12 wrap to the 12-hour clock (24:00 becomes 12:00am).
	// Hour 0 is kept as "00", not rewritten to 12.
	display := hour
	if hour > 12 {
		display = hour - 12
	}

	return fmt.Sprintf("%02d:%02d%s", display, minute, meridiem), nil
}

// Weekdays converts a string of concatenated two-letter weekday codes
// (case-insensitive, any order) into full day names joined by ", " in fixed
// Sunday-first order. Blank input returns "". Each code is consumed at most
// once; leftover characters after the scan, or an input that matches no
// code at all, fail with an InvalidWeekdayError.
func Weekdays(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	working := strings.ToUpper(s)
	var names []string
	for _, day := range weekdays {
		if idx := strings.Index(working, day.code); idx >= 0 {
			names = append(names, day.name)
			working = working[:idx] + working[idx+len(day.code):]
		}
	}

	if len(names) == 0 {
		return "", errors.NewInvalidWeekdayError(raw, "no weekday codes recognized")
	}
	if working != "" {
		return "", errors.NewInvalidWeekdayError(raw, fmt.Sprintf("unrecognized characters %q", working))
	}

	return strings.Join(names, ", "), nil
}

// DisplayName derives the human-readable course name for a section. The
// explicit display name wins when present; otherwise "{department}
// {catalogID}" when both are set, falling back to the course title. A
// section number, when present, is appended as ", {format} {number}" with
// the format token omitted if absent.
func DisplayName(s capture.Section) string {
	name := s.DisplayName
	if name == "" {
		if s.Department != "" && s.CatalogID != "" {
			name = s.Department + " " + s.CatalogID
		} else {
			name = s.Title
		}
	}

	if s.SectionNumber != "" {
		if s.InstructionFormat != "" {
			name += ", " + s.InstructionFormat + " " + s.SectionNumber
		} else {
			name += ", " + s.SectionNumber
		}
	}

	return name
}

// Location reduces a free-text room string to its canonical comparison key:
// building-name aliases substituted, diacritics and all whitespace stripped,
// lower-cased. The key is used for equality comparison only and is never
// displayed.
func Location(freeText string) string {
	s := freeText
	for _, alias := range buildingAliases {
		s = strings.ReplaceAll(s, alias.Long, alias.Short)
	}
	s = stripDiacritics(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// stripDiacritics removes combining marks after NFD decomposition, so
// accented and unaccented spellings of the same building compare equal.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
