package back

import (
	"database/sql"
	"errors"
	"time"

	"padelo/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Team is one side of a match, always exactly two players.
type Team [2]util.UUIDAsBlob

// A Match is a recorded 2v2 result. Timestamp orders matches for replay;
// CreatedAt then ID break timestamp ties so replay order is a total order.
type Match struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp

	Team1Player1ID util.UUIDAsBlob
	Team1Player2ID util.UUIDAsBlob
	Team2Player1ID util.UUIDAsBlob
	Team2Player2ID util.UUIDAsBlob

	Team1Score int
	Team2Score int

	Timestamp util.TimeAsTimestamp
}

func NewMatch(team1, team2 Team, team1Score, team2Score int, timestamp time.Time) Match {
	return Match{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),

		Team1Player1ID: team1[0],
		Team1Player2ID: team1[1],
		Team2Player1ID: team2[0],
		Team2Player2ID: team2[1],

		Team1Score: team1Score,
		Team2Score: team2Score,

		Timestamp: util.TimeAsTimestamp(timestamp),
	}
}

func (m *Match) Team1() Team {
	return Team{m.Team1Player1ID, m.Team1Player2ID}
}

func (m *Match) Team2() Team {
	return Team{m.Team2Player1ID, m.Team2Player2ID}
}

// PlayerIDs returns the four participants, team 1 first.
func (m *Match) PlayerIDs() [4]util.UUIDAsBlob {
	return [4]util.UUIDAsBlob{
		m.Team1Player1ID, m.Team1Player2ID,
		m.Team2Player1ID, m.Team2Player2ID,
	}
}

func (m *Match) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Match").SetMap(squirrel.Eq{
		"ID":             m.ID,
		"CreatedAt":      m.CreatedAt,
		"Team1Player1ID": m.Team1Player1ID,
		"Team1Player2ID": m.Team1Player2ID,
		"Team2Player1ID": m.Team2Player1ID,
		"Team2Player2ID": m.Team2Player2ID,
		"Team1Score":     m.Team1Score,
		"Team2Score":     m.Team2Score,
		"Timestamp":      m.Timestamp,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (m *Match) delete(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DELETE FROM Match WHERE Match.ID = ?`, m.ID); err != nil {
		return err
	}

	return nil
}

func getMatchByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Match, error) {
	var ret Match
	query := `SELECT * FROM Match WHERE Match.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, util.NotFoundError("there is no match with this ID")
		}

		return Match{}, err
	}

	return ret, nil
}

// getMatchesForReplay returns every match in canonical replay order:
// ascending Timestamp, ties broken by CreatedAt then by ID (bytewise).
func getMatchesForReplay(tx *sqlx.Tx) ([]Match, error) {
	var ret []Match
	query := `SELECT * FROM Match ORDER BY Timestamp ASC, CreatedAt ASC, ID ASC`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func getMatchesMostRecentFirst(tx *sqlx.Tx) ([]Match, error) {
	var ret []Match
	query := `SELECT * FROM Match ORDER BY Timestamp DESC, CreatedAt DESC, ID DESC`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func getMatchesByPlayer(tx *sqlx.Tx, playerID util.UUIDAsBlob) ([]Match, error) {
	var ret []Match
	query := `SELECT * FROM Match
        WHERE ? IN (Team1Player1ID, Team1Player2ID, Team2Player1ID, Team2Player2ID)
        ORDER BY Timestamp ASC, CreatedAt ASC, ID ASC`
	if err := tx.Select(&ret, query, playerID); err != nil {
		return nil, err
	}

	return ret, nil
}
