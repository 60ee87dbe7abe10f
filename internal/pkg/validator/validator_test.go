package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"9:05 AM", "12:00 PM", "11:59 pm", "09:05AM", " 1:30 PM "}
	invalid := []string{"9:05", "905 AM", "9:5 AM", "morning", "", "9:05 XM"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsDayMonthYear(t *testing.T) {
	valid := []string{"10-01-2024", "1/2/2024", "31-12-2024"}
	invalid := []string{"2024-01-10", "10-01-24", "10.01.2024", ""}
	for _, s := range valid {
		if !IsDayMonthYear(s) {
			t.Errorf("IsDayMonthYear(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsDayMonthYear(s) {
			t.Errorf("IsDayMonthYear(%q) = true, want false", s)
		}
	}
}
