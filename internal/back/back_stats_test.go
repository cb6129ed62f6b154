package back_test

import (
	"math"
	"reflect"
	"testing"

	"padelo/internal/back"
	"padelo/internal/util"
)

func TestGetLeaderboardOrderAndStats(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan", "Eve")

	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 6, 0, 1000)

	leaderboard, err := b.GetLeaderboard()
	if err != nil {
		t.Fatal(err)
	}

	// Rating descending, names break the ties; Eve never played and sits at
	// the baseline between winners and losers.
	expected := []string{"Anna", "Ben", "Eve", "Cleo", "Dan"}
	actual := make([]string, 0, len(leaderboard))
	for _, v := range leaderboard {
		actual = append(actual, v.Player.Name)
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected order %v, got %v", expected, actual)
	}

	for _, v := range leaderboard {
		switch v.Player.Name {
		case "Anna":
			if v.Stats.GamesWon != 1 || v.Stats.GamesTotal != 1 || v.Stats.WinPct != 100 {
				t.Errorf("Anna: unexpected stats %+v", v.Stats)
			}
			if v.Stats.RoundsWon != 6 || v.Stats.RoundsTotal != 6 || v.Stats.RoundWinPct != 100 {
				t.Errorf("Anna: unexpected round stats %+v", v.Stats)
			}
		case "Eve":
			if v.Stats != (back.PlayerStats{}) {
				t.Errorf("Eve: expected zero stats, got %+v", v.Stats)
			}
		}
	}
}

func TestGetPlayerRank(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan", "Eve")

	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 6, 0, 1000)

	// Combined ratings: Anna and Ben 2032, Eve 2000, Cleo and Dan 1968.
	for name, expected := range map[string]int{
		"Anna": 1, "Ben": 2, "Eve": 3, "Cleo": 4, "Dan": 5,
	} {
		actual, err := b.GetPlayerRank(name)
		if err != nil {
			t.Fatal(err)
		}
		if actual != expected {
			t.Errorf("%s: expected rank %d, got %d", name, expected, actual)
		}
	}

	if _, err := b.GetPlayerRank("nobody"); !util.IsNotFound(err) {
		t.Errorf("expected a not found error, got %v", err)
	}
}

func TestGetPlayerStatsCountsTiesAsNeither(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan")

	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 6, 0, 1000)
	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 3, 3, 2000)
	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 0, 6, 3000)

	stats, err := b.GetPlayerStats("Anna")
	if err != nil {
		t.Fatal(err)
	}

	if stats.GamesTotal != 3 || stats.GamesWon != 1 || stats.GamesLost != 1 {
		t.Errorf("unexpected game counts: %+v", stats)
	}
	if stats.RoundsWon != 9 || stats.RoundsLost != 9 || stats.RoundsTotal != 18 {
		t.Errorf("unexpected round counts: %+v", stats)
	}
	if math.Abs(stats.WinPct-100.0/3.0) > 1e-9 {
		t.Errorf("expected win pct %v, got %v", 100.0/3.0, stats.WinPct)
	}
	if math.Abs(stats.RoundWinPct-50) > 1e-9 {
		t.Errorf("expected round win pct 50, got %v", stats.RoundWinPct)
	}
}

func TestGetPlayerHistoryLastFiveWindow(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan")

	// Anna alternates: W L W L W L W over seven matches.
	for i := 1; i <= 7; i++ {
		team1Score, team2Score := 6, 0
		if i%2 == 0 {
			team1Score, team2Score = 0, 6
		}
		recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", team1Score, team2Score, int64(i*1000))
	}

	history, err := b.GetPlayerHistory("Anna")
	if err != nil {
		t.Fatal(err)
	}

	if len(history.Checkpoints) != 7 {
		t.Errorf("expected 7 checkpoints, got %d", len(history.Checkpoints))
	}

	expected := []bool{true, false, true, false, true}
	if !reflect.DeepEqual(history.LastFive, expected) {
		t.Errorf("expected last five %v, got %v", expected, history.LastFive)
	}
}

func TestGetPlayerPartnerAnalysis(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan")

	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 6, 0, 1000)
	recordTestMatch(t, b, players, "Anna", "Cleo", "Ben", "Dan", 0, 6, 2000)
	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 3, 3, 3000)

	analysis, err := b.GetPlayerPartnerAnalysis("Anna")
	if err != nil {
		t.Fatal(err)
	}

	// With Ben, Anna won 9 of 12 rounds; with Cleo, 0 of 6.
	if analysis.BestPartner == nil {
		t.Fatal("expected a best partner")
	}
	if analysis.BestPartner.Player.Name != "Ben" {
		t.Errorf("expected best partner Ben, got %s", analysis.BestPartner.Player.Name)
	}
	if analysis.BestPartner.RoundsPlayed != 12 || analysis.BestPartner.RoundsWon != 9 {
		t.Errorf("unexpected best partner record: %+v", analysis.BestPartner)
	}

	// Against Ben, Anna won 0 of 6 rounds, her worst ratio of the three
	// opponents.
	if analysis.WorstOpponent == nil {
		t.Fatal("expected a worst opponent")
	}
	if analysis.WorstOpponent.Player.Name != "Ben" {
		t.Errorf("expected worst opponent Ben, got %s", analysis.WorstOpponent.Player.Name)
	}
	if analysis.WorstOpponent.RoundsPlayed != 6 || analysis.WorstOpponent.RoundsWon != 0 {
		t.Errorf("unexpected worst opponent record: %+v", analysis.WorstOpponent)
	}
}

func TestGetPlayerPartnerAnalysisTiesGoToFirstEncountered(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan", "Eve")

	// Ben and Cleo both end up with a perfect partner ratio, Dan and Eve
	// with a perfect opponent ratio.
	recordTestMatch(t, b, players, "Anna", "Ben", "Dan", "Eve", 6, 0, 1000)
	recordTestMatch(t, b, players, "Anna", "Cleo", "Dan", "Eve", 6, 0, 2000)

	analysis, err := b.GetPlayerPartnerAnalysis("Anna")
	if err != nil {
		t.Fatal(err)
	}

	if analysis.BestPartner == nil || analysis.BestPartner.Player.Name != "Ben" {
		t.Errorf("expected the tie to go to Ben, got %+v", analysis.BestPartner)
	}
	if analysis.WorstOpponent == nil || analysis.WorstOpponent.Player.Name != "Dan" {
		t.Errorf("expected the tie to go to Dan, got %+v", analysis.WorstOpponent)
	}
}

func TestGetPlayerPartnerAnalysisWithoutMatches(t *testing.T) {
	b := createTestBack(t)
	registerTestPlayers(t, b, "Anna")

	analysis, err := b.GetPlayerPartnerAnalysis("Anna")
	if err != nil {
		t.Fatal(err)
	}

	if analysis.BestPartner != nil || analysis.WorstOpponent != nil {
		t.Errorf("expected empty analysis, got %+v", analysis)
	}
}

func TestGetMatches(t *testing.T) {
	b := createTestBack(t)
	players := registerTestPlayers(t, b, "Anna", "Ben", "Cleo", "Dan")

	recordTestMatch(t, b, players, "Anna", "Ben", "Cleo", "Dan", 6, 0, 1000)
	recordTestMatch(t, b, players, "Dan", "Cleo", "Ben", "Anna", 3, 6, 2000)

	matches, err := b.GetMatches()
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	if actual := matches[0].Match.Timestamp.Time().Unix(); actual != 2000 {
		t.Errorf("expected most recent match first, got timestamp %d", actual)
	}

	// The older match moved everyone by 16 on both tracks.
	first := matches[1]
	expected := [4]struct {
		name  string
		delta int
	}{
		{"Anna", 16}, {"Ben", 16}, {"Cleo", -16}, {"Dan", -16},
	}
	for i, v := range expected {
		actual := first.Players[i]
		if actual.Name != v.name || actual.RatingDelta != v.delta || actual.RoundRatingDelta != v.delta {
			t.Errorf("player #%d: expected %s with delta %d, got %+v", i, v.name, v.delta, actual)
		}
	}
}
