package back

import "math"

const (
	// eloK is the fixed K-factor of the ladder.
	eloK = 32

	// baseRating is what both rating tracks start at and what a replay resets
	// to.
	baseRating = 1000
)

// expectedScore is the standard logistic Elo expectation of a beating b.
func expectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// outcome scores a match from one side's point of view. In binary mode a win
// is 1 and a loss is 0; in proportional mode it is the share of rounds taken.
// An exact tie is 0.5 in both modes, which also keeps a 0-0 score defined in
// proportional mode.
func outcome(own, opponent int, proportional bool) float64 {
	if own == opponent {
		return 0.5
	}

	if !proportional {
		if own > opponent {
			return 1
		}
		return 0
	}

	return float64(own) / float64(own+opponent)
}

// newRating computes a post-match rating from the player's own pre-match
// rating and the opposing team's aggregate. The result is truncated toward
// zero, not rounded: the truncation drift accumulates over many matches and
// has to stay reproducible across replays.
func newRating(current int, opponentAggregate float64, own, opponent int, proportional bool) int {
	res := outcome(own, opponent, proportional)
	exp := expectedScore(float64(current), opponentAggregate)

	return int(float64(current) + eloK*(res-exp))
}
