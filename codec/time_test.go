package codec

import (
	"testing"
	"time"
)

func TestParseTime_RFC3339RoundTrip(t *testing.T) {
	in := "2025-01-01T00:00:00Z"
	got, err := ParseTime(in)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if out := FormatTime(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestParseTime_DateOnlyIsUTC(t *testing.T) {
	got, err := ParseTime("2018-05-18")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(time.Date(2018, 5, 18, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
}

func TestParseTime_LocalDateTime(t *testing.T) {
	got, err := ParseTime("2018-05-18 10:30:00")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	want := time.Date(2018, 5, 18, 10, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("unexpected time: %v want %v", got, want)
	}
}

func TestParseTime_Rejects(t *testing.T) {
	for _, s := range []string{"", "baflek", "2018-13-45", "   "} {
		if _, err := ParseTime(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestFromEpochMillis(t *testing.T) {
	got, ok := FromEpochMillis(0)
	if !ok || !got.Equal(time.Unix(0, 0)) {
		t.Fatalf("unexpected epoch: %v %v", got, ok)
	}
	got, ok = FromEpochMillis(-1.9)
	if !ok || got.UnixMilli() != -1 {
		t.Fatalf("expected truncation toward zero, got %v", got.UnixMilli())
	}
	if _, ok := FromEpochMillis(9e15); ok {
		t.Fatalf("expected out of range")
	}
}
