package score

import (
	"testing"
	"time"
)

func TestFromSeed_Deterministic(t *testing.T) {
	a := FromSeed("dropspot-2026")
	b := FromSeed("dropspot-2026")
	if a != b {
		t.Fatalf("same seed produced different coefficients: %+v vs %+v", a, b)
	}
	if c := FromSeed("another-seed"); c == a {
		t.Logf("distinct seeds collided on %+v (possible, just unlikely)", c)
	}
}

func TestFromSeed_Bounds(t *testing.T) {
	seeds := []string{"", "a", "dropspot", "0123456789", "seed-x", "seed-y", "seed-z"}
	for _, s := range seeds {
		c := FromSeed(s)
		if c.A < 7 || c.A > 11 {
			t.Errorf("seed %q: A=%d out of [7,11]", s, c.A)
		}
		if c.B < 13 || c.B > 19 {
			t.Errorf("seed %q: B=%d out of [13,19]", s, c.B)
		}
		if c.C < 3 || c.C > 5 {
			t.Errorf("seed %q: C=%d out of [3,5]", s, c.C)
		}
	}
}

func TestScore_Formula(t *testing.T) {
	c := Coefficients{A: 7, B: 13, C: 3}
	tests := []struct {
		name       string
		order      int64
		ageDays    int
		priorCount int64
		want       int
	}{
		{"first joiner, day-old account", 1, 1, 0, 2},
		{"order wraps at A", 8, 1, 0, 2},
		{"age wraps at B", 1, 14, 0, 2},
		{"penalty wraps at C", 1, 1, 3, 2},
		{"penalty can push below zero", 7, 13, 2, -2},
		{"large inputs", 1000, 400, 100, int(1000%7) + 400%13 - int(100%3)},
	}
	for _, tt := range tests {
		if got := c.Score(tt.order, tt.ageDays, tt.priorCount); got != tt.want {
			t.Errorf("%s: Score(%d,%d,%d)=%d, want %d", tt.name, tt.order, tt.ageDays, tt.priorCount, got, tt.want)
		}
	}
}

func TestScore_PureAndRepeatable(t *testing.T) {
	c := FromSeed("seed")
	first := c.Score(5, 42, 2)
	for i := 0; i < 100; i++ {
		if got := c.Score(5, 42, 2); got != first {
			t.Fatalf("score changed between calls: %d then %d", first, got)
		}
	}
}

func TestAccountAgeDays(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{"created this instant", now, 1},
		{"created an hour ago rounds up", now.Add(-time.Hour), 1},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"a day and a second rounds up", now.Add(-24*time.Hour - time.Second), 2},
		{"ten days", now.Add(-10 * 24 * time.Hour), 10},
		{"created in the future floors at 1", now.Add(time.Hour), 1},
	}
	for _, tt := range tests {
		if got := AccountAgeDays(tt.createdAt, now); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}
