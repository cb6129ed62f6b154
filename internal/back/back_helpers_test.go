package back_test

import (
	"testing"
	"time"

	"padelo/internal/back"

	_ "github.com/mattn/go-sqlite3"
)

func createTestBack(t *testing.T) *back.Back {
	t.Helper()

	b, err := back.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Migrate(); err != nil {
		t.Fatal(err)
	}

	return b
}

func registerTestPlayers(t *testing.T, b *back.Back, names ...string) map[string]back.Player {
	t.Helper()

	ret := make(map[string]back.Player, len(names))
	for _, name := range names {
		player, err := b.RegisterPlayer(name)
		if err != nil {
			t.Fatalf("unable to register %s: %s", name, err)
		}

		ret[name] = player
	}

	return ret
}

func recordTestMatch(
	t *testing.T,
	b *back.Back,
	players map[string]back.Player,
	t1p1, t1p2, t2p1, t2p2 string,
	team1Score, team2Score int,
	timestamp int64,
) back.Match {
	t.Helper()

	match, err := b.RecordMatch(
		back.Team{players[t1p1].ID, players[t1p2].ID},
		back.Team{players[t2p1].ID, players[t2p2].ID},
		team1Score, team2Score,
		time.Unix(timestamp, 0),
	)
	if err != nil {
		t.Fatalf("unable to record match: %s", err)
	}

	return match
}

// ratingsByName projects the leaderboard to comparable rating values,
// independent of entity IDs.
func ratingsByName(t *testing.T, b *back.Back) map[string][2]int {
	t.Helper()

	leaderboard, err := b.GetLeaderboard()
	if err != nil {
		t.Fatal(err)
	}

	ret := make(map[string][2]int, len(leaderboard))
	for _, v := range leaderboard {
		ret[v.Player.Name] = [2]int{v.Player.Rating, v.Player.RoundRating}
	}

	return ret
}

// checkpointValues projects a player's checkpoint history to its rating
// values, in replay order, independent of entity IDs.
func checkpointValues(t *testing.T, b *back.Back, name string) [][4]int {
	t.Helper()

	history, err := b.GetPlayerHistory(name)
	if err != nil {
		t.Fatal(err)
	}

	ret := make([][4]int, 0, len(history.Checkpoints))
	for _, v := range history.Checkpoints {
		ret = append(ret, [4]int{
			v.RatingAfter, v.RoundRatingAfter,
			v.RatingDelta, v.RoundRatingDelta,
		})
	}

	return ret
}
