package battle

import "testing"

func TestStatsArithmetic(t *testing.T) {
	tests := []struct {
		name string
		a, b Stats
		want Stats
		op   func(a, b Stats) Stats
	}{
		{"add", Stats{Attack: 2, Health: 3}, Stats{Attack: 1, Health: 4}, Stats{Attack: 3, Health: 7}, Stats.Add},
		{"sub", Stats{Attack: 5, Health: 5}, Stats{Attack: 2, Health: 1}, Stats{Attack: 3, Health: 4}, Stats.Sub},
		{"mul", Stats{Attack: 2, Health: 3}, Stats{Attack: 3, Health: 2}, Stats{Attack: 6, Health: 6}, Stats.Mul},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatsClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Stats
		want Stats
	}{
		{"below min", Stats{Attack: -5, Health: -1}, Stats{Attack: MinStat, Health: MinStat}},
		{"above max", Stats{Attack: 999, Health: 51}, Stats{Attack: MaxStat, Health: MaxStat}},
		{"in range", Stats{Attack: 10, Health: 20}, Stats{Attack: 10, Health: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatsPercent(t *testing.T) {
	s := Stats{Attack: 10, Health: 20}
	if got := s.Percent(50); got != (Stats{Attack: 5, Health: 10}) {
		t.Errorf("50%% of %+v = %+v, want {5 10}", s, got)
	}
	// Integer floor, not round-to-nearest.
	odd := Stats{Attack: 3, Health: 3}
	if got := odd.Percent(50); got != (Stats{Attack: 1, Health: 1}) {
		t.Errorf("50%% of %+v = %+v, want {1 1} (floor)", odd, got)
	}
}

func TestStatsInvert(t *testing.T) {
	s := Stats{Attack: 4, Health: -2}
	want := Stats{Attack: -4, Health: 2}
	if got := s.Invert(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStatsIsZero(t *testing.T) {
	if !(Stats{}).IsZero() {
		t.Error("zero value should be IsZero")
	}
	if (Stats{Attack: 1}).IsZero() {
		t.Error("nonzero attack should not be IsZero")
	}
}
