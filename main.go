package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"padelo/internal/back"
	"padelo/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	switch flag.Arg(0) {
	case "version":
		fmt.Fprintf(os.Stdout, "padelo %s\n", Version)
		return
	case "help":
		fmt.Fprint(os.Stdout, help())
		return
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func run(command string) error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New("sqlite3", conf.DatabasePath())
	if err != nil {
		return err
	}

	switch command {
	case "migrate":
		return b.Migrate()
	case "backup:export":
		return exportBackup(b, flag.Arg(1))
	case "backup:import":
		return importBackup(b, flag.Arg(1))
	case "dev:fixtures":
		return loadFixtures(b)
	case "dev:clear":
		return b.ClearDatabase()
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	return nil
}

func exportBackup(b *back.Back, path string) error {
	if path == "" {
		return b.ExportBackup(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := b.ExportBackup(f); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}

func importBackup(b *back.Back, path string) error {
	if path == "" {
		return fmt.Errorf("missing backup file path")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return b.ImportBackup(f)
}

func help() string {
	return fmt.Sprintf(`
padelo keeps the Elo ratings of a 2v2 padel ladder.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    backup:export [FILE] write all matches as backup lines (stdout by default)
    backup:import FILE   replay a backup file into the ledger
    dev:clear            remove every player, match, and checkpoint
    dev:fixtures         create default data for quick testing during development
    help                 display this help
    migrate              bring the database schema up to date
    version              display the current version
`,
		os.Args[0],
	)
}
