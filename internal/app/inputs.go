package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/rollcall/internal/adapters/tabular"
	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/outcome"
	"github.com/okian/rollcall/internal/domain/roster"
	"github.com/okian/rollcall/pkg/logger"
)

// Inputs are the validated tables of one run.
type Inputs struct {
	Comments  []model.Comment
	Roster    *roster.Index
	Schedule  []outcome.ScheduleEntry
	Threads   []model.ThreadInfo
	Teams     []string
	StopWords []string
	Truth     *aggregate.Matrix // nil without a ground-truth sample
}

// Load reads every configured input table. Headers are validated before any
// value is used, so a malformed file fails the run before processing starts.
func (s *Service) Load(ctx context.Context) (*Inputs, error) {
	if err := s.cfg.RequireInputs(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	in := &Inputs{}

	t, err := tabular.ReadFile(ctx, s.cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	if in.Roster, err = roster.Parse(t); err != nil {
		return nil, err
	}

	if t, err = tabular.ReadFile(ctx, s.cfg.CommentsPath); err != nil {
		return nil, err
	}
	if in.Comments, err = tabular.LoadComments(t); err != nil {
		return nil, err
	}

	if err := s.loadGames(ctx, in); err != nil {
		return nil, err
	}

	if s.cfg.StopWordsPath != "" {
		if t, err = tabular.ReadFile(ctx, s.cfg.StopWordsPath); err != nil {
			return nil, err
		}
		if in.StopWords, err = tabular.LoadStopWords(t, s.cfg.Team); err != nil {
			return nil, err
		}
	}

	if s.cfg.GroundTruthPath != "" {
		if t, err = tabular.ReadFile(ctx, s.cfg.GroundTruthPath); err != nil {
			return nil, err
		}
		if in.Truth, err = tabular.LoadMatrix(t, nil); err != nil {
			return nil, err
		}
	}

	s.logger.Info(ctx, "inputs loaded",
		logger.Int("comments", len(in.Comments)),
		logger.Int("roster", in.Roster.Len()),
		logger.Int("games", len(in.Schedule)),
		logger.Int("threads", len(in.Threads)),
		logger.Int("stop_words", len(in.StopWords)),
		logger.Bool("ground_truth", in.Truth != nil),
	)
	return in, nil
}

// LoadGames reads only the tables a single outcome lookup needs: the
// schedule, the thread metadata and the team list.
func (s *Service) LoadGames(ctx context.Context) (*Inputs, error) {
	var missing []string
	for key, v := range map[string]string{
		"team":          s.cfg.Team,
		"schedule_path": s.cfg.SchedulePath,
		"threads_path":  s.cfg.ThreadsPath,
		"teams_path":    s.cfg.TeamsPath,
	} {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	in := &Inputs{}
	if err := s.loadGames(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) loadGames(ctx context.Context, in *Inputs) error {
	t, err := tabular.ReadFile(ctx, s.cfg.SchedulePath)
	if err != nil {
		return err
	}
	if in.Schedule, err = outcome.ParseSchedule(t); err != nil {
		return err
	}

	if t, err = tabular.ReadFile(ctx, s.cfg.ThreadsPath); err != nil {
		return err
	}
	if in.Threads, err = tabular.LoadThreads(t); err != nil {
		return err
	}

	if t, err = tabular.ReadFile(ctx, s.cfg.TeamsPath); err != nil {
		return err
	}
	in.Teams, err = tabular.LoadTeams(t)
	return err
}
