// Package outcome maps a discussion thread to the result of the game it
// discusses by walking back from the post date through the season schedule.
package outcome

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/pkg/metrics"
)

// Matcher resolves thread outcomes against one team's schedule. It is
// read-only after construction and safe for concurrent use.
type Matcher struct {
	byDate      map[Date]int
	entries     []ScheduleEntry
	opponents   *regexp.Regexp
	legacy      bool
	maxLookback int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLegacyRollback uses Date.LegacyPrev to step back.
func WithLegacyRollback(enabled bool) Option {
	return func(m *Matcher) {
		m.legacy = enabled
	}
}

// WithMaxLookback bounds the backward search to days calendar days. Zero
// keeps the default, the schedule span plus one.
func WithMaxLookback(days int) Option {
	return func(m *Matcher) {
		m.maxLookback = days
	}
}

// Result is the full answer of a lookup.
type Result struct {
	Outcome    model.Outcome
	References []string       // opponent names found in the title
	Game       *ScheduleEntry // nil when no game was matched
	Depth      int            // calendar days walked back
}

// NewMatcher builds a matcher for team. teams lists every team name; the
// analysed team is excluded from the opponents.
func NewMatcher(schedule []ScheduleEntry, teams []string, team string, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		byDate:  make(map[Date]int, len(schedule)),
		entries: append([]ScheduleEntry(nil), schedule...),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.maxLookback < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLookback, m.maxLookback)
	}
	if m.maxLookback == 0 {
		m.maxLookback = span(schedule) + 1
	}

	for i, e := range m.entries {
		if _, ok := m.byDate[e.Date]; !ok {
			m.byDate[e.Date] = i
		}
	}

	var alts []string
	for _, t := range teams {
		if t = strings.TrimSpace(t); t == "" || t == team {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(t))
	}
	if len(alts) > 0 {
		m.opponents = regexp.MustCompile(strings.Join(alts, "|"))
	}
	return m, nil
}

func span(schedule []ScheduleEntry) int {
	if len(schedule) == 0 {
		return 0
	}
	first, last := schedule[0].Date, schedule[0].Date
	for _, e := range schedule[1:] {
		if e.Date.Before(first) {
			first = e.Date
		}
		if last.Before(e.Date) {
			last = e.Date
		}
	}
	return daysBetween(first, last)
}

// MaxLookback returns the search bound in days.
func (m *Matcher) MaxLookback() int { return m.maxLookback }

// References returns the opponent names found in title, in order.
func (m *Matcher) References(title string) []string {
	if m.opponents == nil {
		return nil
	}
	return m.opponents.FindAllString(title, -1)
}

// Match returns the outcome of the game thread discusses. A title naming no
// opponent yields Unknown and no error.
func (m *Matcher) Match(ctx context.Context, thread model.ThreadInfo) (model.Outcome, error) {
	res, err := m.Find(ctx, thread)
	return res.Outcome, err
}

// Find walks back from the thread's post date, one day at a time, until a
// scheduled game against a referenced opponent is found.
func (m *Matcher) Find(ctx context.Context, thread model.ThreadInfo) (Result, error) {
	refs := m.References(thread.Title)
	res := Result{Outcome: model.Unknown, References: refs}
	if len(refs) == 0 {
		return res, nil
	}

	candidate, err := ParseDate(thread.Posted)
	if err != nil {
		return res, fmt.Errorf("thread %d: %w", thread.ThreadID, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if i, ok := m.byDate[candidate]; ok && slices.Contains(refs, m.entries[i].OpponentShort) {
			game := m.entries[i]
			res.Game = &game
			metrics.RecordLookbackDays(res.Depth)
			switch game.Result {
			case ResultWin:
				res.Outcome = model.Win
			case ResultLoss:
				res.Outcome = model.Lose
			default:
				return res, fmt.Errorf("thread %d, game %d: %w", thread.ThreadID, game.Game, ErrNoResult)
			}
			return res, nil
		}
		if res.Depth >= m.maxLookback {
			return res, fmt.Errorf("thread %d: %w within %d days", thread.ThreadID, ErrNoMatchingGame, m.maxLookback)
		}
		candidate = m.step(candidate)
		if candidate.Valid() {
			res.Depth++
		}
	}
}

func (m *Matcher) step(d Date) Date {
	if m.legacy {
		return d.LegacyPrev()
	}
	return d.Prev()
}
