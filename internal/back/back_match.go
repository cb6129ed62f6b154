package back

import (
	"fmt"
	"log"
	"time"

	"padelo/internal/util"

	"github.com/jmoiron/sqlx"
)

// RecordMatch applies a 2v2 result to the four participants and snapshots one
// checkpoint per player, all as a single transaction. A zero timestamp means
// "now".
func (b *Back) RecordMatch(
	team1, team2 Team,
	team1Score, team2Score int,
	timestamp time.Time,
) (match Match, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		match, err = recordMatch(tx, team1, team2, team1Score, team2Score, timestamp)
		return err
	}); err != nil {
		return Match{}, err
	}

	return match, nil
}

func recordMatch(
	tx *sqlx.Tx,
	team1, team2 Team,
	team1Score, team2Score int,
	timestamp time.Time,
) (Match, error) {
	if err := validateTeams(team1, team2); err != nil {
		return Match{}, err
	}

	if team1Score < 0 || team2Score < 0 {
		return Match{}, util.ValidationError("scores cannot be negative")
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	match := NewMatch(team1, team2, team1Score, team2Score, timestamp)

	// Surface missing players before writing anything.
	for _, id := range match.PlayerIDs() {
		if _, err := getPlayerByID(tx, id); err != nil {
			return Match{}, err
		}
	}

	if err := match.insert(tx); err != nil {
		return Match{}, err
	}

	if err := applyMatchRatings(tx, match); err != nil {
		return Match{}, err
	}

	return match, nil
}

func validateTeams(team1, team2 Team) error {
	ids := [4]util.UUIDAsBlob{team1[0], team1[1], team2[0], team2[1]}

	seen := make(map[util.UUIDAsBlob]struct{}, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			return util.ValidationError("each team needs exactly two players")
		}

		if _, ok := seen[id]; ok {
			return util.ValidationError("a player cannot appear twice in a match")
		}
		seen[id] = struct{}{}
	}

	return nil
}

// applyMatchRatings runs the rating update for the four participants of a
// match and upserts their checkpoints. Both team aggregates are computed from
// pre-match ratings, before any player is written, so the two tracks update
// symmetrically and the processing order of players cannot change the result.
// Running it again for the same match overwrites the checkpoints, which is
// what replay relies on.
func applyMatchRatings(tx *sqlx.Tx, match Match) error {
	var team1, team2 [2]Player
	for i, id := range match.Team1() {
		p, err := getPlayerByID(tx, id)
		if err != nil {
			return err
		}
		team1[i] = p
	}
	for i, id := range match.Team2() {
		p, err := getPlayerByID(tx, id)
		if err != nil {
			return err
		}
		team2[i] = p
	}

	team1Rating := float64(team1[0].Rating+team1[1].Rating) / 2
	team2Rating := float64(team2[0].Rating+team2[1].Rating) / 2
	team1RoundRating := float64(team1[0].RoundRating+team1[1].RoundRating) / 2
	team2RoundRating := float64(team2[0].RoundRating+team2[1].RoundRating) / 2

	apply := func(p Player, oppRating, oppRoundRating float64, own, opp int) error {
		rating := newRating(p.Rating, oppRating, own, opp, false)
		roundRating := newRating(p.RoundRating, oppRoundRating, own, opp, true)

		checkpoint := Checkpoint{
			PlayerID: p.ID,
			MatchID:  match.ID,

			RatingAfter:      rating,
			RoundRatingAfter: roundRating,
			RatingDelta:      rating - p.Rating,
			RoundRatingDelta: roundRating - p.RoundRating,

			Timestamp: match.Timestamp,
		}

		p.Rating = rating
		p.RoundRating = roundRating
		if err := p.update(tx); err != nil {
			return err
		}

		return checkpoint.upsert(tx)
	}

	for i := range team1 {
		if err := apply(team1[i], team2Rating, team2RoundRating, match.Team1Score, match.Team2Score); err != nil {
			return err
		}
	}
	for i := range team2 {
		if err := apply(team2[i], team1Rating, team1RoundRating, match.Team2Score, match.Team1Score); err != nil {
			return err
		}
	}

	return nil
}

// DeleteMatch removes a match and replays the ledger so every remaining
// rating and checkpoint is exactly what a from-scratch replay would produce.
// Matches strictly before the deleted one cannot be affected by the removal,
// so their stored checkpoints are restored as-is; everything at or after the
// pivot timestamp is recomputed forward in replay order. The whole
// delete+reset+replay commits as one unit.
func (b *Back) DeleteMatch(id util.UUIDAsBlob) error {
	start := time.Now()

	return b.transaction(func(tx *sqlx.Tx) error {
		match, err := getMatchByID(tx, id)
		if err != nil {
			return err
		}
		pivot := match.Timestamp.Time()

		if err := deleteCheckpointsByMatch(tx, match.ID); err != nil {
			return fmt.Errorf("unable to prune checkpoints: %w", err)
		}

		if err := match.delete(tx); err != nil {
			return err
		}

		if err := resetAllRatings(tx); err != nil {
			return fmt.Errorf("unable to reset ratings: %w", err)
		}

		matches, err := getMatchesForReplay(tx)
		if err != nil {
			return err
		}

		for k := range matches {
			if matches[k].Timestamp.Time().Before(pivot) {
				if err := restoreFromCheckpoints(tx, matches[k]); err != nil {
					return err
				}
				continue
			}

			if err := applyMatchRatings(tx, matches[k]); err != nil {
				return err
			}
		}

		log.Printf("info: replayed %d matches in %s", len(matches), time.Since(start))

		return nil
	})
}

// restoreFromCheckpoints fast-forwards the participants of a pre-pivot match
// to their stored post-match snapshots instead of recomputing them.
func restoreFromCheckpoints(tx *sqlx.Tx, match Match) error {
	checkpoints, err := getCheckpointsByMatch(tx, match.ID)
	if err != nil {
		return err
	}

	for k := range checkpoints {
		player, err := getPlayerByID(tx, checkpoints[k].PlayerID)
		if err != nil {
			return err
		}

		player.Rating = checkpoints[k].RatingAfter
		player.RoundRating = checkpoints[k].RoundRatingAfter
		if err := player.update(tx); err != nil {
			return err
		}
	}

	return nil
}
