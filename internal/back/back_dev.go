package back

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// ClearDatabase wipes every checkpoint, match, and player. Reachable only
// from the dev: CLI namespace, never from the ledger API.
func (b *Back) ClearDatabase() error {
	log.Print("warning: clearing the whole database")

	return b.transaction(func(tx *sqlx.Tx) error {
		for _, table := range []string{"Checkpoint", "Match", "Player"} {
			if _, err := tx.Exec(`DELETE FROM "` + table + `"`); err != nil {
				return err
			}
		}

		return nil
	})
}
