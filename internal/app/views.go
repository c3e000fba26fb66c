package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rollcall/internal/domain/management"
	"github.com/okian/rollcall/internal/domain/scoring"
	"github.com/okian/rollcall/internal/domain/types"
)

// Publish makes report the one served by the read methods.
func (s *Service) Publish(report *Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = report
	s.publishedAt = time.Now()
}

func (s *Service) report() (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.published == nil {
		return nil, types.ErrNoReport
	}
	return s.published, nil
}

// Threads returns every thread of the published report in first-seen order.
func (s *Service) Threads(_ context.Context) ([]types.Thread, error) {
	r, err := s.report()
	if err != nil {
		return nil, err
	}
	out := make([]types.Thread, 0, len(r.Threads))
	for i := range r.Threads {
		out = append(out, threadView(&r.Threads[i]))
	}
	return out, nil
}

// Thread returns one thread of the published report.
func (s *Service) Thread(_ context.Context, id int64) (types.Thread, error) {
	r, err := s.report()
	if err != nil {
		return types.Thread{}, err
	}
	for i := range r.Threads {
		if r.Threads[i].Thread.ThreadID == id {
			return threadView(&r.Threads[i]), nil
		}
	}
	return types.Thread{}, fmt.Errorf("thread %d: %w", id, types.ErrNotFound)
}

// Season returns the season summary of the published report.
func (s *Service) Season(_ context.Context) (types.Season, error) {
	r, err := s.report()
	if err != nil {
		return types.Season{}, err
	}
	return seasonView(r.Season), nil
}

// Scores returns the accuracy report, or ErrNotFound when the run had no
// ground-truth sample.
func (s *Service) Scores(_ context.Context) (types.Scores, error) {
	r, err := s.report()
	if err != nil {
		return types.Scores{}, err
	}
	if r.Scores == nil {
		return types.Scores{}, fmt.Errorf("scores: %w", types.ErrNotFound)
	}
	out := types.Scores{
		Comments:    r.Scores.Comments,
		Total:       scoreView("Total", r.Scores.Total),
		PerIdentity: make([]types.Score, 0, len(r.Scores.Identities)),
	}
	for i, name := range r.Scores.Identities {
		out.PerIdentity = append(out.PerIdentity, scoreView(name, r.Scores.PerIdentity[i]))
	}
	return out, nil
}

// GetStats returns run statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"run_id":       s.runID,
		"team":         s.cfg.Team,
		"worker_count": s.cfg.WorkerCount,
		"published":    s.published != nil,
	}
	if s.published != nil {
		stats["threads"] = len(s.published.Threads)
		stats["failed_threads"] = s.published.Failed()
		if s.published.Matrix != nil {
			stats["comments"] = s.published.Matrix.Len()
		}
		stats["published_at"] = s.publishedAt.UTC().Format(time.RFC3339)
	}
	return stats
}

func threadView(t *ThreadReport) types.Thread {
	v := types.Thread{
		ThreadID: t.Thread.ThreadID,
		Posted:   t.Thread.Posted,
		Title:    t.Thread.Title,
		Result:   t.Outcome.String(),
	}
	if t.Matrix != nil {
		v.Comments = t.Matrix.Len()
	}
	if t.Err != nil {
		v.Error = t.Err.Error()
	}
	if t.Table != nil {
		for _, name := range t.Table.Identities() {
			if n := t.Table.IdentityMentions(name); n > 0 {
				v.Identities = append(v.Identities, types.Mention{Identity: name, Mentions: n})
			}
		}
	}
	for _, row := range t.Game.Rows {
		v.Managers = append(v.Managers, types.Manager{
			Name:     row.Name,
			Pos:      row.Pos,
			Race:     row.Race,
			Mentions: row.Mentions,
			Positive: row.Positive,
			Negative: row.Negative,
			Net:      row.Net(),
		})
	}
	return v
}

func seasonView(s *management.SeasonSummary) types.Season {
	if s == nil {
		return types.Season{}
	}
	v := types.Season{Won: s.Won, Lost: s.Lost}
	for _, r := range s.Races {
		v.Races = append(v.Races, types.RaceStat{
			Race:         r.Race,
			Managers:     r.Managers,
			NetWin:       value(r.Net.Win),
			NetLoss:      value(r.Net.Loss),
			PositiveWin:  value(r.Positive.Win),
			PositiveLoss: value(r.Positive.Loss),
			NegativeWin:  value(r.Negative.Win),
			NegativeLoss: value(r.Negative.Loss),
		})
	}
	for _, m := range s.Managers {
		v.Managers = append(v.Managers, types.ManagerStat{
			Name:         m.Name,
			Race:         m.Race,
			AnnualSalary: m.AnnualSalary,
			SeasonsSpent: m.SeasonsSpent,
			PerWin:       value(m.PerWin),
			PerLoss:      value(m.PerLoss),
			Ratio:        value(m.Ratio),
		})
	}
	return v
}

func scoreView(identity string, c scoring.Confusion) types.Score {
	return types.Score{
		Identity:       identity,
		TruePositives:  c.TruePositive,
		FalsePositives: c.FalsePositive,
		FalseNegatives: c.FalseNegative,
		Precision:      value(c.Precision()),
		Recall:         value(c.Recall()),
	}
}

func value(r scoring.Ratio) types.Value {
	if !r.Defined {
		return types.Value{}
	}
	v := r.Value
	return types.Value{Value: &v, Defined: true}
}
