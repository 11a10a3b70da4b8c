package quiz

import (
	"testing"
	"time"
)

func TestScorePoints(t *testing.T) {
	tests := []struct {
		name         string
		correct      bool
		responseTime time.Duration
		want         int
	}{
		{
			name:         "incorrect scores nothing",
			correct:      false,
			responseTime: 0,
			want:         0,
		},
		{
			name:         "instant answer gets full base",
			correct:      true,
			responseTime: 0,
			want:         100,
		},
		{
			name:         "decays per 100ms",
			correct:      true,
			responseTime: 2500 * time.Millisecond,
			want:         75,
		},
		{
			name:         "floors at 50",
			correct:      true,
			responseTime: 5 * time.Second,
			want:         50,
		},
		{
			name:         "never below floor",
			correct:      true,
			responseTime: time.Hour,
			want:         50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorePoints(tt.correct, tt.responseTime); got != tt.want {
				t.Errorf("scorePoints(%v, %v) = %d, want %d", tt.correct, tt.responseTime, got, tt.want)
			}
		})
	}
}

func TestScorePointsMonotonicBounded(t *testing.T) {
	prev := scoreBase + 1
	for rt := time.Duration(0); rt <= 20*time.Second; rt += 50 * time.Millisecond {
		got := scorePoints(true, rt)
		if got > prev {
			t.Fatalf("score increased with response time: %d -> %d at %v", prev, got, rt)
		}
		if got < scoreFloor || got > scoreBase {
			t.Fatalf("score %d out of bounds [%d, %d] at %v", got, scoreFloor, scoreBase, rt)
		}
		prev = got
	}
}
