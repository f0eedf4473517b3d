// Package store handles SQLite persistence of finished games.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/verte-zerg/kanamatch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for game history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			seed INTEGER NOT NULL,
			partial_rate REAL NOT NULL,
			focus_weak INTEGER NOT NULL,
			score INTEGER NOT NULL,
			matches INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_kana_stats (
			game_id TEXT NOT NULL REFERENCES games(id),
			kana_index INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			response_ms INTEGER NOT NULL,
			PRIMARY KEY (game_id, kana_index)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_game_kana_stats_kana ON game_kana_stats(kana_index);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished game and its per-kana stats and returns the new
// game id. Kana without attempts or mistakes are skipped.
func (s *Store) InsertSession(ctx context.Context, game model.GameRecord, kana []model.KanaStats) (id string, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	id = uuid.NewString()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, started_at, ended_at, seed, partial_rate, focus_weak, score, matches, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		game.StartedAt.UTC().Format(time.RFC3339Nano),
		game.EndedAt.UTC().Format(time.RFC3339Nano),
		game.Seed,
		game.PartialRate,
		game.FocusWeak,
		game.Score,
		game.Matches,
		game.DurationMs,
	); err != nil {
		return "", fmt.Errorf("failed to insert game: %w", err)
	}

	rows := lo.Filter(kana, func(ks model.KanaStats, _ int) bool {
		return ks.Attempts > 0 || ks.Incorrect > 0
	})
	if len(rows) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO game_kana_stats (game_id, kana_index, attempts, incorrect, response_ms)
			 VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", fmt.Errorf("failed to prepare kana insert: %w", err)
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ks := range rows {
			if _, err = stmt.ExecContext(ctx, id, ks.KanaIndex, ks.Attempts, ks.Incorrect, ks.ResponseMs); err != nil {
				return "", fmt.Errorf("failed to insert kana stats: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit game: %w", err)
	}
	return id, nil
}

// GetWeakKana aggregates kana stats over the most recent games.
func (s *Store) GetWeakKana(ctx context.Context, window int) ([]model.KanaAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_games AS (
		SELECT id FROM games
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ks.kana_index, SUM(ks.attempts), SUM(ks.incorrect), SUM(ks.response_ms)
	FROM game_kana_stats ks
	JOIN recent_games r ON r.id = ks.game_id
	GROUP BY ks.kana_index
	ORDER BY ks.kana_index`
	return s.queryAggregates(ctx, query, window)
}

// ListSessions returns game summaries filtered by the stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "g.ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT g.id, g.ended_at, g.score, g.matches,
		COALESCE(SUM(ks.attempts), 0), COALESCE(SUM(ks.incorrect), 0), g.duration_ms
		FROM games g
		LEFT JOIN game_kana_stats ks ON ks.game_id = g.id
		WHERE %s
		GROUP BY g.id
		ORDER BY g.ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer closeRows(rows)

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Score, &agg.Matches, &agg.Attempts, &agg.Incorrect, &agg.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse game end time: %w", err)
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	return sessions, nil
}

// ListKanaAggregatesForSessions sums per-kana stats across the given games.
func (s *Store) ListKanaAggregatesForSessions(ctx context.Context, sessionIDs []string) ([]model.KanaAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT kana_index, SUM(attempts), SUM(incorrect), SUM(response_ms)
		FROM game_kana_stats
		WHERE game_id IN (%s)
		GROUP BY kana_index
		ORDER BY kana_index`, placeholders(len(sessionIDs)))
	return s.queryAggregates(ctx, query, toArgs(sessionIDs)...)
}

// ListKanaStatsForSessions returns per-game stats for the selected kana, keyed by
// game id and then kana index.
func (s *Store) ListKanaStatsForSessions(ctx context.Context, sessionIDs []string, kana []int) (map[string]map[int]model.KanaAggregate, error) {
	result := map[string]map[int]model.KanaAggregate{}
	if len(sessionIDs) == 0 || len(kana) == 0 {
		return result, nil
	}
	query := fmt.Sprintf(`SELECT game_id, kana_index, attempts, incorrect, response_ms
		FROM game_kana_stats
		WHERE game_id IN (%s) AND kana_index IN (%s)`,
		placeholders(len(sessionIDs)), placeholders(len(kana)))
	args := append(toArgs(sessionIDs), toArgs(kana)...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kana stats: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var gameID string
		var agg model.KanaAggregate
		if err := rows.Scan(&gameID, &agg.KanaIndex, &agg.Attempts, &agg.Incorrect, &agg.ResponseMs); err != nil {
			return nil, fmt.Errorf("failed to scan kana stats: %w", err)
		}
		if _, ok := result[gameID]; !ok {
			result[gameID] = map[int]model.KanaAggregate{}
		}
		result[gameID][agg.KanaIndex] = agg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read kana stats: %w", err)
	}
	return result, nil
}

// Times holds the footer figures for finished games.
type Times struct {
	Games  int
	LastMs int64
	BestMs int64
}

// GameTimes returns the number of finished games with the latest and fastest
// durations. Zero values mean no game was played yet.
func (s *Store) GameTimes(ctx context.Context) (Times, error) {
	var t Times
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), MIN(duration_ms) FROM games`).Scan(&t.Games, &best)
	if err != nil {
		return Times{}, fmt.Errorf("failed to query game times: %w", err)
	}
	if t.Games == 0 {
		return t, nil
	}
	t.BestMs = best.Int64
	err = s.db.QueryRowContext(ctx, `SELECT duration_ms FROM games ORDER BY ended_at DESC LIMIT 1`).Scan(&t.LastMs)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Times{}, fmt.Errorf("failed to query last game: %w", err)
	}
	return t, nil
}

func (s *Store) queryAggregates(ctx context.Context, query string, args ...any) ([]model.KanaAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kana aggregates: %w", err)
	}
	defer closeRows(rows)

	var result []model.KanaAggregate
	for rows.Next() {
		var agg model.KanaAggregate
		if err := rows.Scan(&agg.KanaIndex, &agg.Attempts, &agg.Incorrect, &agg.ResponseMs); err != nil {
			return nil, fmt.Errorf("failed to scan kana aggregate: %w", err)
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read kana aggregates: %w", err)
	}
	return result, nil
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}

func placeholders(n int) string {
	return strings.Join(lo.Times(n, func(int) string { return "?" }), ",")
}

func toArgs[T any](values []T) []any {
	return lo.Map(values, func(v T, _ int) any { return v })
}
