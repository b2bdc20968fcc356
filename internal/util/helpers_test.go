package util

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 5) != 0 || Clamp(9, 0, 5) != 5 || Clamp(3, 0, 5) != 3 {
		t.Fatalf("Clamp returned unexpected values")
	}
}

func TestMinutes(t *testing.T) {
	if got := Minutes(1); got != "1 minute" {
		t.Fatalf("Minutes(1) = %q", got)
	}
	if got := Minutes(5); got != "5 minutes" {
		t.Fatalf("Minutes(5) = %q", got)
	}
	if got := Minutes(0); got != "0 minutes" {
		t.Fatalf("Minutes(0) = %q", got)
	}
}

func TestCycleWraps(t *testing.T) {
	if got := Cycle(0, -1, 4); got != 3 {
		t.Fatalf("Cycle(0,-1,4) = %d", got)
	}
	if got := Cycle(3, 1, 4); got != 0 {
		t.Fatalf("Cycle(3,1,4) = %d", got)
	}
	if got := Cycle(2, 1, 0); got != 0 {
		t.Fatalf("Cycle with empty list = %d", got)
	}
}

func TestIndexOf(t *testing.T) {
	values := []int{1, 5, 10}
	if got := IndexOf(values, 10, 0); got != 2 {
		t.Fatalf("IndexOf(10) = %d", got)
	}
	if got := IndexOf(values, 7, 1); got != 1 {
		t.Fatalf("IndexOf fallback = %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		-5 * time.Second:             "0s",
		45 * time.Second:             "45s",
		31 * time.Minute:             "31m",
		2 * time.Hour:                "2h",
		2*time.Hour + 15*time.Minute: "2h 15m",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
