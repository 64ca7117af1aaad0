package storage

import (
	"database/sql"
	"fmt"

	"github.com/ribtools/ribscrape/internal/model"
)

// MatchExists returns true if a match with the given id is already stored.
func (db *DB) MatchExists(matchID int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatch stores a complete match record in one transaction. Uses INSERT
// OR REPLACE throughout for idempotency, so re-scraping a match is safe.
func (db *DB) SaveMatch(rec *model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	m := &rec.Meta
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(
			match_id, parent_event, event_name, event_time, event_region,
			best_of, stage, bracket, team1, team2,
			team1_series_score, team2_series_score, map_name, game_start_time,
			series_match_number, patch_id, series_winning_team_number,
			team1_match_score, team2_match_score, series_win_condition
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.MatchID, m.ParentEvent, m.EventName, m.EventTime, m.EventRegion,
		m.BestOf, m.Stage, m.Bracket, m.Team1, m.Team2,
		m.Team1SeriesScore, m.Team2SeriesScore, m.MapName, m.GameStartTime,
		m.SeriesMatchNumber, m.PatchID, m.SeriesWinningTeamNumber,
		m.Team1MatchScore, m.Team2MatchScore, m.SeriesWinCondition,
	)
	if err != nil {
		return fmt.Errorf("insert match %d: %w", m.MatchID, err)
	}

	// Replace round data wholesale so a re-scrape cannot leave stale rows.
	if _, err := tx.Exec("DELETE FROM rounds WHERE match_id = ?", m.MatchID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM round_players WHERE match_id = ?", m.MatchID); err != nil {
		return err
	}

	roundStmt, err := tx.Prepare(`
		INSERT INTO rounds(
			match_id, round_number, winning_team_number, attacking_team_number,
			win_condition, ceremony, team1_loadout_tier, team2_loadout_tier
		) VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer roundStmt.Close()

	playerStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO round_players(
			match_id, round_number, team_number, player_ign, agent, weapon_name,
			kills, deaths, assists, score, planted, defused,
			loadout_value, remaining_creds, spent_creds
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	for _, round := range rec.Rounds {
		_, err := roundStmt.Exec(
			m.MatchID, round.RoundNumber, round.WinningTeamNumber,
			round.AttackingTeamNumber, round.WinCondition, round.Ceremony,
			round.Team1LoadoutTier, round.Team2LoadoutTier,
		)
		if err != nil {
			return fmt.Errorf("insert round %d: %w", round.RoundNumber, err)
		}
		for _, side := range [2][]model.ResolvedPlayerRecord{round.Team1Players, round.Team2Players} {
			for _, p := range side {
				_, err := playerStmt.Exec(
					m.MatchID, round.RoundNumber, p.TeamNumber, p.PlayerIgn,
					p.Agent, p.WeaponName,
					p.Kills, p.Deaths, p.Assists, p.Score,
					boolInt(p.Planted), boolInt(p.Defused),
					p.LoadoutValue, p.RemainingCreds, p.SpentCreds,
				)
				if err != nil {
					return fmt.Errorf("insert round %d player %s: %w", round.RoundNumber, p.PlayerIgn, err)
				}
			}
		}
	}

	return tx.Commit()
}

// ListMatches returns stored match metadata, newest game first.
func (db *DB) ListMatches() ([]model.MatchMeta, error) {
	rows, err := db.conn.Query(`
		SELECT ` + metaColumns + `
		FROM matches ORDER BY game_start_time DESC, match_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchMeta
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatch reconstructs a stored match record, including the team partition
// of each round's players. Returns nil when the match is not stored.
func (db *DB) GetMatch(matchID int) (*model.MatchRecord, error) {
	row := db.conn.QueryRow(`
		SELECT `+metaColumns+`
		FROM matches WHERE match_id = ?`, matchID)
	meta, err := scanMeta(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rounds, err := db.getRounds(matchID)
	if err != nil {
		return nil, err
	}
	return &model.MatchRecord{Meta: meta, Rounds: rounds}, nil
}

// DropMatch removes a match and its round data. Returns true if a match was
// actually deleted.
func (db *DB) DropMatch(matchID int) (bool, error) {
	// Cascade handles rounds/round_players when foreign keys are on, but
	// delete explicitly so drop works regardless of pragma state.
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM round_players WHERE match_id = ?", matchID); err != nil {
		return false, err
	}
	if _, err := tx.Exec("DELETE FROM rounds WHERE match_id = ?", matchID); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM matches WHERE match_id = ?", matchID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

func (db *DB) getRounds(matchID int) ([]model.RoundRecord, error) {
	rows, err := db.conn.Query(`
		SELECT round_number, winning_team_number, attacking_team_number,
		       win_condition, ceremony, team1_loadout_tier, team2_loadout_tier
		FROM rounds WHERE match_id = ? ORDER BY round_number`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RoundRecord
	index := make(map[int]int) // round number → slice index
	for rows.Next() {
		var r model.Round
		err := rows.Scan(&r.RoundNumber, &r.WinningTeamNumber, &r.AttackingTeamNumber,
			&r.WinCondition, &r.Ceremony, &r.Team1LoadoutTier, &r.Team2LoadoutTier)
		if err != nil {
			return nil, err
		}
		index[r.RoundNumber] = len(out)
		out = append(out, model.RoundRecord{Round: r})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	players, err := db.getRoundPlayers(matchID)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		i, ok := index[p.RoundNumber]
		if !ok {
			continue
		}
		if p.TeamNumber == 1 {
			out[i].Team1Players = append(out[i].Team1Players, p)
		} else {
			out[i].Team2Players = append(out[i].Team2Players, p)
		}
	}
	return out, nil
}

func (db *DB) getRoundPlayers(matchID int) ([]model.ResolvedPlayerRecord, error) {
	rows, err := db.conn.Query(`
		SELECT round_number, team_number, player_ign, agent, weapon_name,
		       kills, deaths, assists, score, planted, defused,
		       loadout_value, remaining_creds, spent_creds
		FROM round_players WHERE match_id = ?
		ORDER BY round_number, team_number, player_ign`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ResolvedPlayerRecord
	for rows.Next() {
		var p model.ResolvedPlayerRecord
		var planted, defused int
		err := rows.Scan(&p.RoundNumber, &p.TeamNumber, &p.PlayerIgn, &p.Agent, &p.WeaponName,
			&p.Kills, &p.Deaths, &p.Assists, &p.Score, &planted, &defused,
			&p.LoadoutValue, &p.RemainingCreds, &p.SpentCreds)
		if err != nil {
			return nil, err
		}
		p.Planted = planted != 0
		p.Defused = defused != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

const metaColumns = `match_id, parent_event, event_name, event_time, event_region,
	best_of, stage, bracket, team1, team2,
	team1_series_score, team2_series_score, map_name, game_start_time,
	series_match_number, patch_id, series_winning_team_number,
	team1_match_score, team2_match_score, series_win_condition`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeta(row rowScanner) (model.MatchMeta, error) {
	var m model.MatchMeta
	err := row.Scan(
		&m.MatchID, &m.ParentEvent, &m.EventName, &m.EventTime, &m.EventRegion,
		&m.BestOf, &m.Stage, &m.Bracket, &m.Team1, &m.Team2,
		&m.Team1SeriesScore, &m.Team2SeriesScore, &m.MapName, &m.GameStartTime,
		&m.SeriesMatchNumber, &m.PatchID, &m.SeriesWinningTeamNumber,
		&m.Team1MatchScore, &m.Team2MatchScore, &m.SeriesWinCondition,
	)
	return m, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
