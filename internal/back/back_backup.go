package back

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"padelo/internal/util"

	"github.com/jmoiron/sqlx"
)

// A backup line is 7 comma-separated fields, no quoting, no header:
// p1,p2,p3,p4,team1Score,team2Score,timestamp (first two names are team 1).
const backupFieldCount = 7

// ExportBackup writes one line per match in canonical replay order, so that
// importing the file into an empty ledger reproduces the exact same ratings.
func (b *Back) ExportBackup(w io.Writer) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		matches, err := getMatchesForReplay(tx)
		if err != nil {
			return err
		}

		names := map[util.UUIDAsBlob]string{}
		name := func(id util.UUIDAsBlob) (string, error) {
			if v, ok := names[id]; ok {
				return v, nil
			}

			player, err := getPlayerByID(tx, id)
			if err != nil {
				return "", err
			}
			names[id] = player.Name

			return player.Name, nil
		}

		for k := range matches {
			fields := make([]string, 0, backupFieldCount)
			for _, id := range matches[k].PlayerIDs() {
				v, err := name(id)
				if err != nil {
					return err
				}
				fields = append(fields, v)
			}

			fields = append(
				fields,
				strconv.Itoa(matches[k].Team1Score),
				strconv.Itoa(matches[k].Team2Score),
				strconv.FormatInt(matches[k].Timestamp.Time().Unix(), 10),
			)

			if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
				return err
			}
		}

		log.Printf("info: exported %d matches", len(matches))

		return nil
	})
}

// ImportBackup replays a backup line by line, in file order. Player names not
// yet known are registered with baseline ratings. The first malformed line
// aborts the whole import, nothing is written.
func (b *Back) ImportBackup(r io.Reader) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		scanner := bufio.NewScanner(r)

		count, line := 0, 0
		for scanner.Scan() {
			line++

			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			if err := importBackupLine(tx, text); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			count++
		}

		if err := scanner.Err(); err != nil {
			return err
		}

		log.Printf("info: imported %d matches", count)

		return nil
	})
}

func importBackupLine(tx *sqlx.Tx, line string) error {
	fields := strings.Split(line, ",")
	if len(fields) != backupFieldCount {
		return util.ValidationError(fmt.Sprintf(
			"expected %d comma-separated fields, got %d",
			backupFieldCount, len(fields),
		))
	}

	var ids [4]util.UUIDAsBlob
	for i, name := range fields[:4] {
		player, err := getOrCreatePlayer(tx, name)
		if err != nil {
			return err
		}
		ids[i] = player.ID
	}

	team1Score, err := strconv.Atoi(fields[4])
	if err != nil {
		return util.ValidationError(fmt.Sprintf("'%s' is not a valid score", fields[4]))
	}

	team2Score, err := strconv.Atoi(fields[5])
	if err != nil {
		return util.ValidationError(fmt.Sprintf("'%s' is not a valid score", fields[5]))
	}

	timestamp, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return util.ValidationError(fmt.Sprintf("'%s' is not a valid timestamp", fields[6]))
	}

	_, err = recordMatch(
		tx,
		Team{ids[0], ids[1]},
		Team{ids[2], ids[3]},
		team1Score, team2Score,
		time.Unix(timestamp, 0),
	)

	return err
}

func getOrCreatePlayer(tx *sqlx.Tx, name string) (Player, error) {
	player, err := getPlayerByName(tx, name)
	if err == nil {
		return player, nil
	}
	if !util.IsNotFound(err) {
		return Player{}, err
	}

	if err := validateName(name); err != nil {
		return Player{}, err
	}

	player = NewPlayer(name)
	if err := player.insert(tx); err != nil {
		return Player{}, err
	}

	return player, nil
}
