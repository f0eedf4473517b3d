package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/kanamatch/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "kanamatch.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return s
}

func insertGame(t *testing.T, s *Store, ended time.Time, durationMs int64, kana ...model.KanaStats) string {
	t.Helper()
	id, err := s.InsertSession(context.Background(), model.GameRecord{
		StartedAt:  ended.Add(-time.Duration(durationMs) * time.Millisecond),
		EndedAt:    ended,
		Seed:       42,
		Score:      4600,
		Matches:    46,
		DurationMs: durationMs,
	}, kana)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return id
}

func TestInsertAndListSessions(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := insertGame(t, s, base, 90000,
		model.KanaStats{KanaIndex: 0, Attempts: 1, Incorrect: 2, ResponseMs: 4000},
		model.KanaStats{KanaIndex: 5, Attempts: 1, ResponseMs: 1000},
		model.KanaStats{KanaIndex: 9},
	)
	second := insertGame(t, s, base.Add(time.Hour), 80000)
	if first == second || first == "" {
		t.Fatalf("expected distinct ids, got %q %q", first, second)
	}

	sessions, err := s.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != first || sessions[0].Attempts != 2 || sessions[0].Incorrect != 2 {
		t.Fatalf("unexpected first session %+v", sessions[0])
	}
	if !sessions[0].EndedAt.Equal(base) {
		t.Fatalf("unexpected end time %s", sessions[0].EndedAt)
	}
	if sessions[1].Attempts != 0 || sessions[1].DurationMs != 80000 {
		t.Fatalf("unexpected second session %+v", sessions[1])
	}

	since := base.Add(30 * time.Minute)
	filtered, err := s.ListSessions(context.Background(), model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(filtered) != 1 || filtered[0].SessionID != second {
		t.Fatalf("unexpected filtered sessions %+v", filtered)
	}
}

func TestKanaAggregates(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := insertGame(t, s, base, 1000, model.KanaStats{KanaIndex: 3, Attempts: 1, Incorrect: 1, ResponseMs: 500})
	b := insertGame(t, s, base.Add(time.Minute), 1000,
		model.KanaStats{KanaIndex: 3, Attempts: 1, ResponseMs: 700},
		model.KanaStats{KanaIndex: 4, Attempts: 1, Incorrect: 3, ResponseMs: 900},
	)

	aggs, err := s.ListKanaAggregatesForSessions(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	if len(aggs) != 2 || aggs[0].KanaIndex != 3 || aggs[0].Attempts != 2 || aggs[0].ResponseMs != 1200 {
		t.Fatalf("unexpected aggregates %+v", aggs)
	}

	weak, err := s.GetWeakKana(context.Background(), 1)
	if err != nil {
		t.Fatalf("weak: %v", err)
	}
	if len(weak) != 2 || weak[0].Incorrect != 0 || weak[1].Incorrect != 3 {
		t.Fatalf("expected only the latest game, got %+v", weak)
	}
	if none, err := s.GetWeakKana(context.Background(), 0); err != nil || none != nil {
		t.Fatalf("expected nothing for an empty window, got %+v %v", none, err)
	}

	per, err := s.ListKanaStatsForSessions(context.Background(), []string{a, b}, []int{4})
	if err != nil {
		t.Fatalf("per game: %v", err)
	}
	if _, ok := per[a]; ok {
		t.Fatalf("game %s has no stats for kana 4", a)
	}
	if per[b][4].Incorrect != 3 {
		t.Fatalf("unexpected per-game stats %+v", per)
	}
}

func TestGameTimes(t *testing.T) {
	s := openTestStore(t)
	times, err := s.GameTimes(context.Background())
	if err != nil {
		t.Fatalf("times: %v", err)
	}
	if times.Games != 0 {
		t.Fatalf("expected no games, got %+v", times)
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	insertGame(t, s, base, 70000)
	insertGame(t, s, base.Add(time.Hour), 95000)
	times, err = s.GameTimes(context.Background())
	if err != nil {
		t.Fatalf("times: %v", err)
	}
	if times.Games != 2 || times.LastMs != 95000 || times.BestMs != 70000 {
		t.Fatalf("unexpected times %+v", times)
	}
}
