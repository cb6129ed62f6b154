package back

import (
	"database/sql"
	"errors"
	"time"

	"padelo/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Player is a ladder member with two rating tracks: Rating follows binary
// win/loss outcomes, RoundRating follows the round margin. Both are mutated
// exclusively by the ledger.
type Player struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string

	Rating      int
	RoundRating int
}

func NewPlayer(name string) Player {
	return Player{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,

		Rating:      baseRating,
		RoundRating: baseRating,
	}
}

type byRatingDesc []Player

func (a byRatingDesc) Len() int {
	return len(a)
}

func (a byRatingDesc) Less(i, j int) bool {
	if a[i].Rating == a[j].Rating {
		return a[i].Name < a[j].Name
	}

	return a[i].Rating > a[j].Rating
}

func (a byRatingDesc) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

type byCombinedRatingDesc []Player

func (a byCombinedRatingDesc) Len() int {
	return len(a)
}

func (a byCombinedRatingDesc) Less(i, j int) bool {
	ci, cj := a[i].Rating+a[i].RoundRating, a[j].Rating+a[j].RoundRating
	if ci == cj {
		return a[i].Name < a[j].Name
	}

	return ci > cj
}

func (a byCombinedRatingDesc) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

func (p *Player) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":          p.ID,
		"CreatedAt":   p.CreatedAt,
		"Name":        p.Name,
		"Rating":      p.Rating,
		"RoundRating": p.RoundRating,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// update persists the rating tracks, the only fields the ledger ever changes.
func (p *Player) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Player").SetMap(squirrel.Eq{
		"Rating":      p.Rating,
		"RoundRating": p.RoundRating,
	}).Where("Player.ID = ?", p.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (p *Player) delete(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DELETE FROM Player WHERE Player.ID = ?`, p.ID); err != nil {
		return err
	}

	return nil
}

func getPlayerByName(tx *sqlx.Tx, name string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, util.NotFoundError("there is no player with this name")
		}

		return Player{}, err
	}

	return ret, nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, util.NotFoundError("there is no player with this ID")
		}

		return Player{}, err
	}

	return ret, nil
}

func getAllPlayers(tx *sqlx.Tx) ([]Player, error) {
	var ret []Player
	if err := tx.Select(&ret, `SELECT * FROM Player`); err != nil {
		return nil, err
	}

	return ret, nil
}

// resetAllRatings puts every player back at the replay baseline.
func resetAllRatings(tx *sqlx.Tx) error {
	_, err := tx.Exec(
		`UPDATE Player SET Rating = ?, RoundRating = ?`,
		baseRating, baseRating,
	)

	return err
}
