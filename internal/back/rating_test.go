package back // nolint:testpackage

import (
	"math"
	"testing"
)

func TestExpectedScoreSymmetry(t *testing.T) {
	pairs := [][2]float64{
		{1000, 1000},
		{1000, 1200},
		{984, 1016},
		{1500, 700},
		{1016, 992.5},
	}

	for k, v := range pairs {
		sum := expectedScore(v[0], v[1]) + expectedScore(v[1], v[0])
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("case #%d: expected sum 1, got %v", k, sum)
		}
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		own, opponent int
		proportional  bool
		expected      float64
	}{
		{6, 0, false, 1},
		{0, 6, false, 0},
		{3, 3, false, 0.5},
		{6, 0, true, 1},
		{0, 6, true, 0},
		{3, 3, true, 0.5},
		{0, 0, true, 0.5},
		{0, 0, false, 0.5},
		{4, 2, true, 2.0 / 3.0},
		{2, 4, true, 1.0 / 3.0},
	}

	for k, v := range cases {
		actual := outcome(v.own, v.opponent, v.proportional)
		if math.Abs(actual-v.expected) > 1e-9 {
			t.Errorf("case #%d: expected %v, got %v", k, v.expected, actual)
		}
	}
}

func TestNewRating(t *testing.T) {
	cases := []struct {
		current           int
		opponentAggregate float64
		own, opponent     int
		proportional      bool
		expected          int
	}{
		// Equal ratings, 6-0: expected score is 0.5, winners gain 16.
		{1000, 1000, 6, 0, false, 1016},
		{1000, 1000, 0, 6, false, 984},
		{1000, 1000, 6, 0, true, 1016},
		{1000, 1000, 0, 6, true, 984},
		// The raw result is 1020.48…, truncation keeps 1020.
		{1000, 1100, 6, 0, false, 1020},
		// The raw result is 979.51…, truncation keeps 979 (toward zero, not
		// away from the loss).
		{1000, 900, 0, 6, false, 979},
	}

	for k, v := range cases {
		actual := newRating(v.current, v.opponentAggregate, v.own, v.opponent, v.proportional)
		if actual != v.expected {
			t.Errorf("case #%d: expected %d, got %d", k, v.expected, actual)
		}
	}
}
