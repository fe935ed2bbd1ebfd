package cameras

import (
	"fmt"
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name      string
		startedAt int64
		want      string
	}{
		{"just started", now.Unix(), "0:00"},
		{"under a minute", now.Unix() - 59, "0:59"},
		{"exactly a minute", now.Unix() - 60, "1:00"},
		{"two minutes five seconds", now.Unix() - 125, "2:05"},
		{"seconds zero padded", now.Unix() - 61, "1:01"},
		{"over an hour keeps minute units", now.Unix() - 3725, "62:05"},
		{"start in the future clamps to zero", now.Unix() + 30, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatElapsed(tt.startedAt, now); got != tt.want {
				t.Errorf("FormatElapsed(%d) = %q, want %q", tt.startedAt, got, tt.want)
			}
		})
	}
}

// For a fixed start, the formatted value never decreases as the clock moves
// forward.
func TestFormatElapsedMonotonic(t *testing.T) {
	startedAt := int64(1700000000)
	prev := -1
	for offset := int64(0); offset <= 300; offset += 7 {
		now := time.Unix(startedAt+offset, 0)
		got := FormatElapsed(startedAt, now)
		var m, s int
		if _, err := fmt.Sscanf(got, "%d:%d", &m, &s); err != nil {
			t.Fatalf("unparseable elapsed %q: %v", got, err)
		}
		total := m*60 + s
		if total < prev {
			t.Fatalf("elapsed went backwards at offset %d: %d < %d", offset, total, prev)
		}
		prev = total
	}
}
