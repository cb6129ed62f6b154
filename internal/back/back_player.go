package back

import (
	"fmt"
	"unicode"

	"padelo/internal/util"

	"github.com/jmoiron/sqlx"
)

// validateName bounds the length and keeps names representable in backup
// lines, which are comma-separated and line-oriented.
func validateName(name string) error {
	if len(name) == 0 || len(name) > 32 {
		return util.ValidationError("a player name must be between 1 and 32 characters")
	}

	for _, r := range name {
		if r == ',' || unicode.IsControl(r) {
			return util.ValidationError("a player name cannot contain commas or control characters")
		}
	}

	return nil
}

// RegisterPlayer adds a player to the ladder with baseline ratings.
func (b *Back) RegisterPlayer(name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if err := validateName(name); err != nil {
			return err
		}

		if _, err := getPlayerByName(tx, name); err == nil {
			return util.ConflictError(fmt.Sprintf("the name '%s' is taken already", name))
		} else if !util.IsNotFound(err) {
			return err
		}

		player = NewPlayer(name)

		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

// RemovePlayer deletes a player who never played. Players with recorded
// matches cannot be removed, that would orphan checkpoints and skew replays.
func (b *Back) RemovePlayer(name string) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByName(tx, name)
		if err != nil {
			return err
		}

		matches, err := getMatchesByPlayer(tx, player.ID)
		if err != nil {
			return err
		}

		if len(matches) > 0 {
			return util.ValidationError("this player has recorded matches and cannot be removed")
		}

		return player.delete(tx)
	})
}

// GetPlayerByName is the read-side lookup for the presentation layer.
func (b *Back) GetPlayerByName(name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByName(tx, name)
		return err
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}
