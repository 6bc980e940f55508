package model

import (
	"testing"
	"time"
)

func TestPriceSeriesValidate(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}
	tests := []struct {
		name    string
		bars    []Bar
		wantErr bool
	}{
		{"empty", nil, false},
		{"valid", []Bar{{Date: day(0), Close: 10}, {Date: day(1), Close: 11}}, false},
		{"duplicate date", []Bar{{Date: day(0), Close: 10}, {Date: day(0), Close: 11}}, true},
		{"out of order", []Bar{{Date: day(1), Close: 10}, {Date: day(0), Close: 11}}, true},
		{"zero price", []Bar{{Date: day(0), Close: 0}}, true},
		{"negative price", []Bar{{Date: day(0), Close: -5}}, true},
	}
	for _, tt := range tests {
		s := PriceSeries{Bars: tt.bars}
		err := s.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestPriceSeriesCloses(t *testing.T) {
	s := PriceSeries{Bars: []Bar{{Close: 1.5}, {Close: 2.5}}}
	closes := s.Closes()
	if len(closes) != 2 || closes[0] != 1.5 || closes[1] != 2.5 {
		t.Errorf("unexpected closes: %v", closes)
	}
}
