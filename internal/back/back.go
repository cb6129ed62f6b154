package back

import (
	"context"

	"padelo/internal/util"
	"padelo/migrations"

	"github.com/jmoiron/sqlx"
)

// Back is the rating ledger. It owns every write to players, matches, and
// checkpoints; the presentation layer only ever goes through its exported
// methods.
type Back struct {
	db *sqlx.DB
}

func New(sqlDriver string, sqlDSN string) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	// The Elo update is a read-modify-write over four players, two of them
	// interleaving would corrupt ratings. A single connection serializes all
	// callers.
	db.SetMaxOpenConns(1)

	return &Back{
		db: db,
	}, nil
}

// Migrate brings the schema up to date.
func (b *Back) Migrate() error {
	return migrations.Up(b.db.DB)
}

func (b *Back) transaction(cb util.TransactionCallback) error {
	return util.Transaction(context.Background(), b.db, cb)
}
