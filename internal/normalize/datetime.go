package normalize

import (
	"regexp"
	"strconv"
	"time"
)

// meridiemExpr tolerates the spellings OCR produces for 12-hour markers:
// "PM", "pm", "p.m.", "p. m.".
const meridiemExpr = `([AaPp])\.?\s?[Mm]\.?`

// dateTimePattern pairs a regexp with the capture-group indices for each
// timestamp component. A zero index means the pattern does not capture that
// component. Keeping patterns as data and the cascade as a loop makes adding
// a new receipt format a pure data change.
type dateTimePattern struct {
	re                             *regexp.Regexp
	day, month, year               int
	hour, minute, second, meridiem int
}

func (p dateTimePattern) match(text string) *time.Time {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	pick := func(i int) string {
		if i == 0 || i >= len(m) {
			return ""
		}
		return m[i]
	}
	return FromParts(pick(p.day), pick(p.month), pick(p.year),
		pick(p.hour), pick(p.minute), pick(p.second), pick(p.meridiem))
}

// The cascade runs most information-rich first; a later, looser pattern is
// never reached once an earlier one matches.
var dateTimePatterns = []dateTimePattern{
	// separately labelled date and time-with-seconds fields with AM/PM
	{
		re: regexp.MustCompile(`(?is)FECHA\W{0,5}(\d{1,2})/(\d{1,2})/(\d{2,4}).{0,40}?HORA\W{0,5}(\d{1,2}):(\d{2}):(\d{2})\s*` + meridiemExpr),
		day: 1, month: 2, year: 3, hour: 4, minute: 5, second: 6, meridiem: 7,
	},
	// combined date-time with seconds, AM/PM optional
	{
		re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})[\s,]+(\d{1,2}):(\d{2}):(\d{2})(?:\s*` + meridiemExpr + `)?`),
		day: 1, month: 2, year: 3, hour: 4, minute: 5, second: 6, meridiem: 7,
	},
	// combined date-time with AM/PM, no seconds
	{
		re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})[\s,]+(\d{1,2}):(\d{2})\s*` + meridiemExpr),
		day: 1, month: 2, year: 3, hour: 4, minute: 5, meridiem: 6,
	},
	// combined date-time, 24-hour
	{
		re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})[\s,]+(\d{1,2}):(\d{2})`),
		day: 1, month: 2, year: 3, hour: 4, minute: 5,
	},
	// alternate date separator
	{
		re: regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{2,4})[\s,]+(\d{1,2}):(\d{2})`),
		day: 1, month: 2, year: 3, hour: 4, minute: 5,
	},
	// date only
	{
		re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`),
		day: 1, month: 2, year: 3,
	},
}

// Looser forms seen on low-quality thermal-printer text, appended after the
// base cascade for the generic fallback recipe.
var looseDateTimePatterns = append(append([]dateTimePattern{}, dateTimePatterns...),
	dateTimePattern{
		re: regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2,4})(?:[\s,]+(\d{1,2}):(\d{2}))?`),
		day: 1, month: 2, year: 3, hour: 4, minute: 5,
	},
	dateTimePattern{
		re: regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{2,4})`),
		day: 1, month: 2, year: 3,
	},
)

// ParseDateTime runs the ordered day-first pattern cascade over the full OCR
// text and returns the first timestamp it can build, or nil. Callers must
// not substitute "now" for a nil result.
func ParseDateTime(text string) *time.Time {
	return firstMatch(dateTimePatterns, text)
}

// ParseDateTimeLoose is ParseDateTime with the widened cascade used by the
// generic fallback recipe.
func ParseDateTimeLoose(text string) *time.Time {
	return firstMatch(looseDateTimePatterns, text)
}

func firstMatch(patterns []dateTimePattern, text string) *time.Time {
	for _, p := range patterns {
		if t := p.match(text); t != nil {
			return t
		}
	}
	return nil
}

// FromParts builds a local timestamp from captured substrings. Missing time
// components default to zero; two-digit years are 2000-based; an impossible
// calendar combination yields nil.
func FromParts(dayS, monthS, yearS, hourS, minuteS, secondS, meridiem string) *time.Time {
	day, err1 := strconv.Atoi(dayS)
	month, err2 := strconv.Atoi(monthS)
	year, err3 := strconv.Atoi(yearS)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	var hour, minute, second int
	if hourS != "" {
		hour, _ = strconv.Atoi(hourS)
	}
	if minuteS != "" {
		minute, _ = strconv.Atoi(minuteS)
	}
	if secondS != "" {
		second, _ = strconv.Atoi(secondS)
	}
	if meridiem != "" {
		hour = to24Hour(hour, meridiem)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return nil
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	// time.Date normalizes overflow (31/02 becomes March); a shifted
	// round-trip means the combination never existed on a calendar.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return nil
	}
	return &t
}

// to24Hour applies the standard 12-hour clock edge cases: 12 with a PM
// marker stays 12, 12 with an AM marker becomes 0.
func to24Hour(hour int, meridiem string) int {
	pm := meridiem == "p" || meridiem == "P"
	switch {
	case pm && hour != 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	default:
		return hour
	}
}
