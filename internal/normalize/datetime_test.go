package normalize

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	cases := []struct {
		name string
		text string
		want time.Time
	}{
		{
			"labelled date and time with meridiem",
			"FECHA: 05/03/2024  CAJA 02\nHORA: 07:15:30 p.m.",
			time.Date(2024, 3, 5, 19, 15, 30, 0, time.Local),
		},
		{
			"combined with seconds and pm",
			"pagado el 5/3/24 11:59:59 PM gracias",
			time.Date(2024, 3, 5, 23, 59, 59, 0, time.Local),
		},
		{
			"combined with seconds 24-hour",
			"05/03/2024 16:45:10",
			time.Date(2024, 3, 5, 16, 45, 10, 0, time.Local),
		},
		{
			"noon stays noon",
			"05/03/2024, 12:00 PM",
			time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local),
		},
		{
			"midnight wraps to zero",
			"05/03/2024 12:05 am",
			time.Date(2024, 3, 5, 0, 5, 0, 0, time.Local),
		},
		{
			"combined 24-hour day first",
			"01/02/2026 13:12",
			time.Date(2026, 2, 1, 13, 12, 0, 0, time.Local),
		},
		{
			"dash separated with time",
			"05-03-2024 08:30",
			time.Date(2024, 3, 5, 8, 30, 0, 0, time.Local),
		},
		{
			"date only",
			"emitido 05/03/2024",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		},
		{
			"two-digit year",
			"1/2/26 13:12",
			time.Date(2026, 2, 1, 13, 12, 0, 0, time.Local),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDateTime(tc.text)
			if got == nil {
				t.Fatalf("ParseDateTime(%q) = nil, want %v", tc.text, tc.want)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseDateTime(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseDateTimeNoMatch(t *testing.T) {
	for _, text := range []string{"", "sin fecha aqui", "99/99/9999", "31/02/2026 13:12"} {
		if got := ParseDateTime(text); got != nil {
			t.Errorf("ParseDateTime(%q) = %v, want nil", text, got)
		}
	}
}

func TestParseDateTimeLoose(t *testing.T) {
	cases := []struct {
		name string
		text string
		want time.Time
	}{
		{
			"dotted date with time",
			"05.03.2024 14:00",
			time.Date(2024, 3, 5, 14, 0, 0, 0, time.Local),
		},
		{
			"dotted date only",
			"05.03.2024",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		},
		{
			"dash date only",
			"05-03-2024",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDateTimeLoose(tc.text)
			if got == nil {
				t.Fatalf("ParseDateTimeLoose(%q) = nil, want %v", tc.text, tc.want)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseDateTimeLoose(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}

	// The strict cascade must not claim dotted dates.
	if got := ParseDateTime("05.03.2024 14:00"); got != nil {
		t.Errorf("ParseDateTime claimed a dotted date: %v", got)
	}
}

func TestFromPartsRejectsImpossible(t *testing.T) {
	cases := []struct {
		name                 string
		day, month, year     string
		hour, minute, second string
		meridiem             string
	}{
		{name: "day out of range", day: "32", month: "1", year: "2024"},
		{name: "month out of range", day: "1", month: "13", year: "2024"},
		{name: "day absent from month", day: "31", month: "2", year: "2026"},
		{name: "non-leap february 29th", day: "29", month: "2", year: "2025"},
		{name: "hour out of range", day: "1", month: "1", year: "2024", hour: "24", minute: "00"},
		{name: "non-numeric day", day: "xx", month: "1", year: "2024"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromParts(tc.day, tc.month, tc.year, tc.hour, tc.minute, tc.second, tc.meridiem)
			if got != nil {
				t.Errorf("FromParts = %v, want nil", got)
			}
		})
	}
}
