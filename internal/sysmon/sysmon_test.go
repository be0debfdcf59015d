package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestStats_String(t *testing.T) {
	tests := []struct {
		s    Stats
		want string
	}{
		{Stats{CPUPercent: 12.5, MemPercent: 43}, "CPU 12.5%, memory 43.0%"},
		{Stats{CPUPercent: 0, MemPercent: 50, MemTotal: 16 << 30}, "CPU 0.0%, memory 50.0% of 16.0 GiB"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
