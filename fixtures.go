package main

import (
	"time"

	"padelo/internal/back"
)

func loadFixtures(b *back.Back) error {
	names := []string{"Aleksi", "Aki", "Saku", "Repa"}

	players := make([]back.Player, 0, len(names))
	for _, name := range names {
		player, err := b.RegisterPlayer(name)
		if err != nil {
			return err
		}

		players = append(players, player)
	}

	matches := []struct {
		team1, team2           back.Team
		team1Score, team2Score int
		age                    time.Duration
	}{
		{back.Team{players[0].ID, players[1].ID}, back.Team{players[2].ID, players[3].ID}, 6, 0, 72 * time.Hour},
		{back.Team{players[0].ID, players[2].ID}, back.Team{players[1].ID, players[3].ID}, 5, 6, 48 * time.Hour},
		{back.Team{players[0].ID, players[3].ID}, back.Team{players[1].ID, players[2].ID}, 6, 4, 24 * time.Hour},
	}

	for _, m := range matches {
		if _, err := b.RecordMatch(m.team1, m.team2, m.team1Score, m.team2Score, time.Now().Add(-m.age)); err != nil {
			return err
		}
	}

	return nil
}
