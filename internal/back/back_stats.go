package back

import (
	"fmt"
	"log"
	"sort"
	"time"

	"padelo/internal/util"

	"github.com/jmoiron/sqlx"
)

// PlayerStats aggregates a player's game and round record. Ties count as
// neither won nor lost; percentages are 0 when nothing was played.
type PlayerStats struct {
	GamesWon, GamesLost, GamesTotal    int
	RoundsWon, RoundsLost, RoundsTotal int
	WinPct, RoundWinPct                float64
}

// LeaderboardEntry is one row of the ladder standings.
type LeaderboardEntry struct {
	Player Player
	Stats  PlayerStats
}

// PlayerHistory is the time-ordered checkpoint series of one player, for
// charting, plus the win/loss window of the five most recent matches.
type PlayerHistory struct {
	Checkpoints []Checkpoint

	// LastFive has the most recent result last; it never exceeds 5 entries.
	LastFive []bool
}

// PlayerRoundRecord accumulates rounds played and won alongside (or against)
// one other player.
type PlayerRoundRecord struct {
	Player       Player
	RoundsPlayed int
	RoundsWon    int
}

func (r PlayerRoundRecord) Ratio() float64 {
	if r.RoundsPlayed == 0 {
		return 0
	}

	return float64(r.RoundsWon) / float64(r.RoundsPlayed)
}

// PartnerAnalysis names the teammate with the best round win ratio and the
// opponent the player wins the fewest rounds against. Either is nil when no
// other player has accumulated rounds in that category.
type PartnerAnalysis struct {
	BestPartner   *PlayerRoundRecord
	WorstOpponent *PlayerRoundRecord
}

// MatchPlayer is one participant of a match as shown in the games table.
type MatchPlayer struct {
	Name             string
	RatingDelta      int
	RoundRatingDelta int
}

// MatchDetails is a match with its per-participant rating deltas, team 1
// first.
type MatchDetails struct {
	Match   Match
	Players [4]MatchPlayer
}

// GetLeaderboard returns every player sorted by rating, best first, with
// their game and round record.
func (b *Back) GetLeaderboard() ([]LeaderboardEntry, error) {
	start := time.Now()
	defer func() { log.Printf("info: computed leaderboard in %s", time.Since(start)) }()

	var ret []LeaderboardEntry
	if err := b.transaction(func(tx *sqlx.Tx) error {
		players, err := getAllPlayers(tx)
		if err != nil {
			return err
		}
		sort.Sort(byRatingDesc(players))

		ret = make([]LeaderboardEntry, 0, len(players))
		for k := range players {
			stats, err := getPlayerStats(tx, players[k])
			if err != nil {
				return err
			}

			ret = append(ret, LeaderboardEntry{
				Player: players[k],
				Stats:  stats,
			})
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return ret, nil
}

// GetPlayerRank returns the 1-based position of a player when sorting by the
// sum of both rating tracks, best first.
func (b *Back) GetPlayerRank(name string) (rank int, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByName(tx, name)
		if err != nil {
			return err
		}

		players, err := getAllPlayers(tx)
		if err != nil {
			return err
		}
		sort.Sort(byCombinedRatingDesc(players))

		for k := range players {
			if players[k].ID == player.ID {
				rank = k + 1
				return nil
			}
		}

		// getPlayerByName succeeded, the player has to be in the list.
		return fmt.Errorf("player %s vanished mid-transaction", name)
	}); err != nil {
		return 0, err
	}

	return rank, nil
}

func (b *Back) GetPlayerStats(name string) (stats PlayerStats, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByName(tx, name)
		if err != nil {
			return err
		}

		stats, err = getPlayerStats(tx, player)
		return err
	}); err != nil {
		return PlayerStats{}, err
	}

	return stats, nil
}

func getPlayerStats(tx *sqlx.Tx, player Player) (PlayerStats, error) {
	matches, err := getMatchesByPlayer(tx, player.ID)
	if err != nil {
		return PlayerStats{}, err
	}

	var stats PlayerStats
	for k := range matches {
		own, opp := playerScores(&matches[k], player.ID)

		stats.GamesTotal++
		stats.RoundsWon += own
		stats.RoundsLost += opp
		stats.RoundsTotal += own + opp

		switch {
		case own > opp:
			stats.GamesWon++
		case own < opp:
			stats.GamesLost++
		}
	}

	if stats.GamesTotal > 0 {
		stats.WinPct = float64(stats.GamesWon) / float64(stats.GamesTotal) * 100
	}
	if stats.RoundsTotal > 0 {
		stats.RoundWinPct = float64(stats.RoundsWon) / float64(stats.RoundsTotal) * 100
	}

	return stats, nil
}

// playerScores returns the match score from the given player's side.
func playerScores(match *Match, playerID util.UUIDAsBlob) (own, opp int) {
	for _, id := range match.Team1() {
		if id == playerID {
			return match.Team1Score, match.Team2Score
		}
	}

	return match.Team2Score, match.Team1Score
}

// GetPlayerHistory returns the checkpoint series of a player in replay order
// along with their last five results.
func (b *Back) GetPlayerHistory(name string) (history PlayerHistory, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByName(tx, name)
		if err != nil {
			return err
		}

		history.Checkpoints, err = getCheckpointsByPlayer(tx, player.ID)
		if err != nil {
			return err
		}

		matches, err := getMatchesByPlayer(tx, player.ID)
		if err != nil {
			return err
		}
		history.LastFive = lastFiveResults(matches, player.ID)

		return nil
	}); err != nil {
		return PlayerHistory{}, err
	}

	return history, nil
}

// lastFiveResults walks the player's matches in replay order keeping a
// 5-element window, true for a won match.
func lastFiveResults(matches []Match, playerID util.UUIDAsBlob) []bool {
	var ret []bool
	for k := range matches {
		own, opp := playerScores(&matches[k], playerID)
		ret = append(ret, own > opp)
		if len(ret) > 5 {
			ret = ret[1:]
		}
	}

	return ret
}

// GetPlayerPartnerAnalysis scans every match the player appears in and picks
// the teammate with the strictly highest round win ratio and the opponent
// with the strictly lowest one. Ties go to the player encountered first in
// match order; players with zero accumulated rounds in a category are
// excluded from it.
func (b *Back) GetPlayerPartnerAnalysis(name string) (analysis PartnerAnalysis, _ error) {
	start := time.Now()
	defer func() { log.Printf("info: computed partner analysis in %s", time.Since(start)) }()

	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByName(tx, name)
		if err != nil {
			return err
		}

		matches, err := getMatchesByPlayer(tx, player.ID)
		if err != nil {
			return err
		}

		partners := newRoundRecords()
		opponents := newRoundRecords()

		for k := range matches {
			own, opp := playerScores(&matches[k], player.ID)
			rounds := own + opp

			teammates, others := splitTeams(&matches[k], player.ID)
			for _, id := range teammates {
				partners.add(id, rounds, own)
			}
			for _, id := range others {
				opponents.add(id, rounds, own)
			}
		}

		if best := partners.pick(func(a, b float64) bool { return a > b }); best != nil {
			best.Player, err = getPlayerByID(tx, best.PlayerID)
			if err != nil {
				return err
			}
			analysis.BestPartner = &best.PlayerRoundRecord
		}

		if worst := opponents.pick(func(a, b float64) bool { return a < b }); worst != nil {
			worst.Player, err = getPlayerByID(tx, worst.PlayerID)
			if err != nil {
				return err
			}
			analysis.WorstOpponent = &worst.PlayerRoundRecord
		}

		return nil
	}); err != nil {
		return PartnerAnalysis{}, err
	}

	return analysis, nil
}

// splitTeams returns the player's teammate and the two opposing players.
func splitTeams(match *Match, playerID util.UUIDAsBlob) (teammates, opponents []util.UUIDAsBlob) {
	team1, team2 := match.Team1(), match.Team2()
	own, other := team1, team2
	for _, id := range team2 {
		if id == playerID {
			own, other = team2, team1
			break
		}
	}

	for _, id := range own {
		if id != playerID {
			teammates = append(teammates, id)
		}
	}

	return teammates, other[:]
}

type roundRecord struct {
	PlayerID util.UUIDAsBlob
	PlayerRoundRecord
}

// roundRecords accumulates per-player round tallies while remembering the
// order players were first encountered in, so that ratio ties are broken
// deterministically.
type roundRecords struct {
	byID    map[util.UUIDAsBlob]*roundRecord
	ordered []*roundRecord
}

func newRoundRecords() *roundRecords {
	return &roundRecords{
		byID: map[util.UUIDAsBlob]*roundRecord{},
	}
}

func (r *roundRecords) add(id util.UUIDAsBlob, played, won int) {
	rec, ok := r.byID[id]
	if !ok {
		rec = &roundRecord{PlayerID: id}
		r.byID[id] = rec
		r.ordered = append(r.ordered, rec)
	}

	rec.RoundsPlayed += played
	rec.RoundsWon += won
}

// pick returns the first-encountered record whose ratio strictly beats every
// earlier one, skipping records without any accumulated rounds (their ratio
// is undefined, not zero).
func (r *roundRecords) pick(better func(a, b float64) bool) *roundRecord {
	var ret *roundRecord
	for _, rec := range r.ordered {
		if rec.RoundsPlayed == 0 {
			continue
		}

		if ret == nil || better(rec.Ratio(), ret.Ratio()) {
			ret = rec
		}
	}

	return ret
}

// GetMatches returns every match, most recent first, with the rating deltas
// it caused, for the games table.
func (b *Back) GetMatches() ([]MatchDetails, error) {
	start := time.Now()
	defer func() { log.Printf("info: computed games table in %s", time.Since(start)) }()

	var ret []MatchDetails
	if err := b.transaction(func(tx *sqlx.Tx) error {
		matches, err := getMatchesMostRecentFirst(tx)
		if err != nil {
			return err
		}

		ret = make([]MatchDetails, 0, len(matches))
		for k := range matches {
			details := MatchDetails{Match: matches[k]}

			for i, id := range matches[k].PlayerIDs() {
				player, err := getPlayerByID(tx, id)
				if err != nil {
					return err
				}

				checkpoint, err := getCheckpoint(tx, id, matches[k].ID)
				if err != nil {
					return err
				}

				details.Players[i] = MatchPlayer{
					Name:             player.Name,
					RatingDelta:      checkpoint.RatingDelta,
					RoundRatingDelta: checkpoint.RoundRatingDelta,
				}
			}

			ret = append(ret, details)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return ret, nil
}
