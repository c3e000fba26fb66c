// Package management summarises how the team's managers are talked about in
// each game thread and across the season.
package management

import (
	"context"

	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/roster"
	"github.com/okian/rollcall/internal/domain/sentiment"
	"github.com/okian/rollcall/pkg/logger"
)

// Counts is the number of positive and negative comments about one manager.
type Counts struct {
	Positive int
	Negative int
}

// Row is one manager's line in a game summary.
type Row struct {
	Name     string
	Pos      string
	Race     string
	Mentions int
	Counts
}

// Net is positive minus negative comments.
func (r Row) Net() int { return r.Positive - r.Negative }

// GameSummary is the management report of one thread.
type GameSummary struct {
	ThreadID int64
	Rows     []Row
	Outcome  model.Outcome
}

// Tally classifies every comment of m that mentions a manager and counts the
// labels per manager. A comment is classified once even when it mentions
// several managers. Comments whose classification fails are logged and
// skipped; only cancellation aborts the tally.
func Tally(ctx context.Context, c sentiment.Classifier, m *aggregate.Matrix, managers []roster.Entry, log logger.Logger) (map[string]Counts, error) {
	if log == nil {
		log = logger.Nop()
	}
	rows := m.Rows()
	labels := make(map[int]sentiment.Label)
	failed := make(map[int]bool)

	out := make(map[string]Counts, len(managers))
	for _, mgr := range managers {
		col, ok := m.Column(mgr.Name)
		counts := Counts{}
		if ok {
			for row, v := range col {
				if v != 1 || failed[row] {
					continue
				}
				label, seen := labels[row]
				if !seen {
					if err := ctx.Err(); err != nil {
						return nil, err
					}
					var err error
					label, err = c.Classify(ctx, rows[row].Text)
					if err != nil {
						failed[row] = true
						log.Warn(ctx, "sentiment classification failed",
							logger.Int64("thread_id", rows[row].ThreadID),
							logger.Int64("comment_id", rows[row].CommentID),
							logger.Error(err))
						continue
					}
					labels[row] = label
				}
				if label == sentiment.Positive {
					counts.Positive++
				} else {
					counts.Negative++
				}
			}
		}
		out[mgr.Name] = counts
	}
	return out, nil
}

// Game builds the summary of one thread from its frequency table, the
// sentiment tallies and the game outcome.
func Game(threadID int64, table *aggregate.Table, managers []roster.Entry, tallies map[string]Counts, outcome model.Outcome) GameSummary {
	g := GameSummary{ThreadID: threadID, Outcome: outcome, Rows: make([]Row, 0, len(managers))}
	for _, mgr := range managers {
		g.Rows = append(g.Rows, Row{
			Name:     mgr.Name,
			Pos:      mgr.Role,
			Race:     mgr.Race,
			Mentions: table.IdentityMentions(mgr.Name),
			Counts:   tallies[mgr.Name],
		})
	}
	return g
}
