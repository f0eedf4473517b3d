package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/kanamatch/internal/model"
	"github.com/verte-zerg/kanamatch/internal/store"
)

func seededStore(t *testing.T) (*store.Store, []string) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "kanamatch.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		end := start.Add(time.Duration(90-i*10) * time.Second)
		game := model.GameRecord{
			StartedAt:  start,
			EndedAt:    end,
			Seed:       int64(i + 1),
			Score:      4600,
			Matches:    46,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		kanaStats := []model.KanaStats{
			{KanaIndex: 0, Attempts: 1, ResponseMs: 1200},
			{KanaIndex: 12, Attempts: 1, Incorrect: 2, ResponseMs: 4000},
			{KanaIndex: 30, Attempts: 1, Incorrect: i, ResponseMs: 2500},
		}
		id, err := st.InsertSession(ctx, game, kanaStats)
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, id)
	}
	return st, ids
}

func TestBuildReport(t *testing.T) {
	st, ids := seededStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{Last: 2, CurveWindow: 1})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("unexpected window ids %v", report.WindowSessionIDs)
	}
	if len(report.KanaAggsAll) != 3 || len(report.KanaAggsWindow) != 3 {
		t.Fatalf("expected kana aggregates, got %d/%d", len(report.KanaAggsAll), len(report.KanaAggsWindow))
	}
	if len(report.CurveKana) != 3 || report.CurveKana[0] != 12 || report.CurveKana[1] != 30 {
		t.Fatalf("expected most-missed kana first, got %v", report.CurveKana)
	}
	if report.PerSession[ids[2]][30].Incorrect != 2 {
		t.Fatalf("unexpected per-game stats %+v", report.PerSession)
	}
}

func TestBuildReportChosenKana(t *testing.T) {
	st, _ := seededStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{Kana: []int{0, 0}})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.CurveKana) != 1 || report.CurveKana[0] != 0 {
		t.Fatalf("expected chosen kana, got %v", report.CurveKana)
	}
}

func TestWriteText(t *testing.T) {
	st, _ := seededStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{CurveWindow: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, report, 2, 60); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Games: 3", "Best time: 1:10.0", "Learning Curves", "Per-Kana (Windowed)", "す/ス/su", "Kana す/ス/su"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, Report{}, 5, 60); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No games found." {
		t.Fatalf("unexpected empty report %q", buf.String())
	}
}
