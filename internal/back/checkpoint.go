package back

import (
	"database/sql"
	"errors"

	"padelo/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Checkpoint is the rating snapshot of one player right after one match was
// applied. There is at most one per (player, match) pair and it exists for
// exactly as long as the match does. Replay restores pre-pivot ratings from
// these snapshots instead of recomputing them.
type Checkpoint struct {
	PlayerID util.UUIDAsBlob
	MatchID  util.UUIDAsBlob

	RatingAfter      int
	RoundRatingAfter int
	RatingDelta      int
	RoundRatingDelta int

	// Timestamp is copied from the match, for ordering.
	Timestamp util.TimeAsTimestamp
}

func (c *Checkpoint) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Checkpoint").SetMap(squirrel.Eq{
		"PlayerID":         c.PlayerID,
		"MatchID":          c.MatchID,
		"RatingAfter":      c.RatingAfter,
		"RoundRatingAfter": c.RoundRatingAfter,
		"RatingDelta":      c.RatingDelta,
		"RoundRatingDelta": c.RoundRatingDelta,
		"Timestamp":        c.Timestamp,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (c *Checkpoint) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Checkpoint").SetMap(squirrel.Eq{
		"RatingAfter":      c.RatingAfter,
		"RoundRatingAfter": c.RoundRatingAfter,
		"RatingDelta":      c.RatingDelta,
		"RoundRatingDelta": c.RoundRatingDelta,
	}).Where(squirrel.Eq{
		"Checkpoint.PlayerID": c.PlayerID,
		"Checkpoint.MatchID":  c.MatchID,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// upsert creates the checkpoint or overwrites its snapshot fields. Replay
// relies on the overwrite path being idempotent.
func (c *Checkpoint) upsert(tx *sqlx.Tx) error {
	if _, err := getCheckpoint(tx, c.PlayerID, c.MatchID); err != nil {
		if util.IsNotFound(err) {
			return c.insert(tx)
		}

		return err
	}

	return c.update(tx)
}

func getCheckpoint(tx *sqlx.Tx, playerID, matchID util.UUIDAsBlob) (Checkpoint, error) {
	var ret Checkpoint
	query := `SELECT * FROM Checkpoint WHERE PlayerID = ? AND MatchID = ? LIMIT 1`
	if err := tx.Get(&ret, query, playerID, matchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Checkpoint{}, util.NotFoundError("there is no checkpoint for this player and match")
		}

		return Checkpoint{}, err
	}

	return ret, nil
}

func getCheckpointsByMatch(tx *sqlx.Tx, matchID util.UUIDAsBlob) ([]Checkpoint, error) {
	var ret []Checkpoint
	query := `SELECT * FROM Checkpoint WHERE MatchID = ?`
	if err := tx.Select(&ret, query, matchID); err != nil {
		return nil, err
	}

	return ret, nil
}

// getCheckpointsByPlayer returns a player's checkpoints in replay order.
func getCheckpointsByPlayer(tx *sqlx.Tx, playerID util.UUIDAsBlob) ([]Checkpoint, error) {
	var ret []Checkpoint
	query := `SELECT Checkpoint.* FROM Checkpoint
        INNER JOIN Match ON (Match.ID = Checkpoint.MatchID)
        WHERE Checkpoint.PlayerID = ?
        ORDER BY Match.Timestamp ASC, Match.CreatedAt ASC, Match.ID ASC`
	if err := tx.Select(&ret, query, playerID); err != nil {
		return nil, err
	}

	return ret, nil
}

func deleteCheckpointsByMatch(tx *sqlx.Tx, matchID util.UUIDAsBlob) error {
	if _, err := tx.Exec(`DELETE FROM Checkpoint WHERE MatchID = ?`, matchID); err != nil {
		return err
	}

	return nil
}
