package utils

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{187.5, "$187.50"},
		{0.333, "$0.33"},
		{1000, "$1000.00"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestFormatChangePercent(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{1.25, "+1.25%"},
		{-0.5, "-0.50%"},
		{0, "+0.00%"},
	}

	for _, tt := range tests {
		if got := FormatChangePercent(tt.change); got != tt.want {
			t.Errorf("FormatChangePercent(%v) = %q, want %q", tt.change, got, tt.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	from, to := DateRange(now, 5)

	if to != now.Unix() {
		t.Errorf("expected to = now, got %d", to)
	}
	if from != now.AddDate(0, 0, -5).Unix() {
		t.Errorf("expected from 5 days back, got %d", from)
	}
	if from >= to {
		t.Error("from must precede to")
	}
}
