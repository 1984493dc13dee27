package util

import (
	"testing"
	"time"
)

func TestFormatTimestampFixedWidth(t *testing.T) {
	ts := time.Date(2024, 6, 1, 9, 5, 3, 0, time.FixedZone("CEST", 2*3600))
	if got := FormatTimestamp(ts); got != "2024-06-01T07:05:03.000000" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestParseTimestampAcceptedForms(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2024-01-01T00:00:00",
		"2024-01-01T00:00:00.000000",
		"2024-01-01T00:00:00Z",
		"2024-01-01T01:00:00+01:00",
	} {
		got, err := ParseTimestamp(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q = %s, want %s", raw, got, want)
		}
	}

	got, err := ParseTimestamp("2024-01-01T00:00:00.123")
	if err != nil || got.Nanosecond() != 123000000 {
		t.Fatalf("expected fractional parse, got %s, %v", got, err)
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected error for garbage timestamp")
	}
}

func TestFormattedTimestampsSortChronologically(t *testing.T) {
	earlier := FormatTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 999000, time.UTC))
	later := FormatTimestamp(time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC))
	if !(earlier < later) {
		t.Fatalf("expected %q < %q", earlier, later)
	}
}
