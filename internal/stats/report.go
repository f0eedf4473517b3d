package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/verte-zerg/kanamatch/internal/model"
)

// defaultCurveKana is how many of the most-missed kana get curves when none are chosen.
const defaultCurveKana = 3

// Source is the history a report is built from.
type Source interface {
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
	ListKanaAggregatesForSessions(ctx context.Context, sessionIDs []string) ([]model.KanaAggregate, error)
	ListKanaStatsForSessions(ctx context.Context, sessionIDs []string, kana []int) (map[string]map[int]model.KanaAggregate, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []string
	KanaAggsAll      []model.KanaAggregate
	KanaAggsWindow   []model.KanaAggregate
	CurveKana        []int
	PerSession       map[string]map[int]model.KanaAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	sessions, err := src.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := allIDs
	if cfg.CurveWindow > 0 && len(allIDs) > cfg.CurveWindow {
		windowIDs = allIDs[len(allIDs)-cfg.CurveWindow:]
	}
	aggsAll, err := src.ListKanaAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	aggsWindow, err := src.ListKanaAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		KanaAggsAll:      aggsAll,
		KanaAggsWindow:   aggsWindow,
	}
	if err := report.SelectCurveKana(ctx, src, cfg.Kana); err != nil {
		return Report{}, err
	}
	return report, nil
}

// SelectCurveKana loads per-game stats for the chosen kana. An empty choice falls
// back to the most-missed kana.
func (r *Report) SelectCurveKana(ctx context.Context, src Source, chosen []int) error {
	r.CurveKana = lo.Uniq(chosen)
	if len(r.CurveKana) == 0 {
		r.CurveKana = TopKanaByMistakes(r.KanaAggsAll, defaultCurveKana)
	}
	per, err := src.ListKanaStatsForSessions(ctx, sessionIDs(r.Sessions), r.CurveKana)
	if err != nil {
		return fmt.Errorf("failed to load kana curves: %w", err)
	}
	r.PerSession = per
	return nil
}

// WriteText prints the full plain-text report.
func WriteText(w io.Writer, r Report, window, width int) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if err := RenderCurvesWithSize(w, r.Sessions, window, width, 0, false); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderKanaTable(w, r.KanaAggsWindow); err != nil {
		return err
	}
	return RenderKanaCurvesWithSize(w, r.Sessions, r.PerSession, r.CurveKana, window, width, 0, false)
}

func sessionIDs(sessions []model.SessionAggregate) []string {
	return lo.Map(sessions, func(s model.SessionAggregate, _ int) string { return s.SessionID })
}
