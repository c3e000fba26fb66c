// Package export writes pipeline results as CSV files under an output
// directory and renders console summaries.
package export

import (
	"context"
	"math"
	"path/filepath"
	"strconv"

	"github.com/okian/rollcall/internal/adapters/tabular"
	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/management"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/scoring"
	"github.com/okian/rollcall/pkg/logger"
)

// Output file and directory names relative to the output directory.
const (
	CommentMatrixFile      = "cmt_lvl_roster_mentions.csv"
	FrequencyFile          = "agg_roster_mentions.csv"
	FrequencyByGameDir     = "agg_roster_mentions_by_game"
	CommentMatrixByGameDir = "cmt_lvl_roster_mentions_by_game"
	ManagementByGameDir    = "mgmt_and_race_by_game"
	GameResultsFile        = "game_results.csv"
	SentimentFile          = "mgmt_sentiment.csv"
	MentionsFile           = "mgmt_mentions.csv"
	ScoresFile             = "precision_and_recall.csv"
)

// Writer writes result tables below a directory.
type Writer struct {
	dir string
	log logger.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used to report written files.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.log = l
		}
	}
}

// New returns a Writer rooted at dir.
func New(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, log: logger.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// GameResult pairs a thread with its matched outcome.
type GameResult struct {
	Thread  model.ThreadInfo
	Outcome model.Outcome
}

// CommentMatrix writes the dataset-wide comment-level matrix.
func (w *Writer) CommentMatrix(ctx context.Context, m *aggregate.Matrix) error {
	return w.write(ctx, CommentMatrixFile, matrixHeader(m), matrixRows(m))
}

// GameCommentMatrix writes the comment-level matrix of one thread.
func (w *Writer) GameCommentMatrix(ctx context.Context, threadID int64, m *aggregate.Matrix) error {
	return w.write(ctx, byGame(CommentMatrixByGameDir, threadID), matrixHeader(m), matrixRows(m))
}

// Frequency writes the dataset-wide surface frequency table.
func (w *Writer) Frequency(ctx context.Context, t *aggregate.Table) error {
	return w.write(ctx, FrequencyFile, frequencyHeader(t), frequencyRows(t))
}

// GameFrequency writes the frequency table of one thread.
func (w *Writer) GameFrequency(ctx context.Context, t *aggregate.Table) error {
	return w.write(ctx, byGame(FrequencyByGameDir, t.ThreadID), frequencyHeader(t), frequencyRows(t))
}

// Game writes the management summary of one thread. The last row carries the
// game result in the Name column.
func (w *Writer) Game(ctx context.Context, g management.GameSummary) error {
	header := []string{"Name", "Pos", "Race", "Mentions", "Positive comments", "Negative comments", "Net sentiment"}
	rows := make([][]string, 0, len(g.Rows)+1)
	for _, r := range g.Rows {
		rows = append(rows, []string{
			r.Name, r.Pos, r.Race,
			strconv.Itoa(r.Mentions),
			strconv.Itoa(r.Positive),
			strconv.Itoa(r.Negative),
			strconv.Itoa(r.Net()),
		})
	}
	rows = append(rows, []string{g.Outcome.String(), "", "", "", "", "", ""})
	return w.write(ctx, byGame(ManagementByGameDir, g.ThreadID), header, rows)
}

// GameResults writes one row per thread with its outcome.
func (w *Writer) GameResults(ctx context.Context, results []GameResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.FormatInt(r.Thread.ThreadID, 10),
			r.Thread.Posted,
			r.Thread.Title,
			r.Outcome.String(),
		})
	}
	return w.write(ctx, GameResultsFile, []string{"ID", "dt", "title", "Result"}, rows)
}

// Season writes the race sentiment table and the per-manager mention table.
func (w *Writer) Season(ctx context.Context, s *management.SeasonSummary) error {
	if err := w.write(ctx, SentimentFile, []string{"Statistic Per Game Won or Lost (Per Coach)", "Win", "Loss"}, sentimentRows(s)); err != nil {
		return err
	}
	header := []string{
		"Coach", "Race", "Annual Salary", "Seasons Spent",
		"Mentions Per Win", "Mentions Per Loss", "Mentions Ratio (Per Win/Per Loss)",
	}
	rows := make([][]string, 0, len(s.Managers))
	for _, m := range s.Managers {
		rows = append(rows, []string{
			m.Name, m.Race, m.AnnualSalary, m.SeasonsSpent,
			round(m.PerWin), round(m.PerLoss), round(m.Ratio),
		})
	}
	return w.write(ctx, MentionsFile, header, rows)
}

// Scores writes the precision and recall table. The comment count sits in
// the Total column.
func (w *Writer) Scores(ctx context.Context, r *scoring.Report) error {
	header := append([]string{"Calculations", "Total"}, r.Identities...)
	line := func(label, total string, cell func(scoring.Confusion) string) []string {
		row := make([]string, 0, len(header))
		row = append(row, label, total)
		for _, c := range r.PerIdentity {
			row = append(row, cell(c))
		}
		return row
	}
	count := func(n func(scoring.Confusion) int) func(scoring.Confusion) string {
		return func(c scoring.Confusion) string { return strconv.Itoa(n(c)) }
	}
	tp := func(c scoring.Confusion) int { return c.TruePositive }
	fp := func(c scoring.Confusion) int { return c.FalsePositive }
	fn := func(c scoring.Confusion) int { return c.FalseNegative }
	precision := func(c scoring.Confusion) string { return c.Precision().String() }
	recall := func(c scoring.Confusion) string { return c.Recall().String() }

	rows := [][]string{
		line("True Positives", strconv.Itoa(r.Total.TruePositive), count(tp)),
		line("False Positives", strconv.Itoa(r.Total.FalsePositive), count(fp)),
		line("False Negatives", strconv.Itoa(r.Total.FalseNegative), count(fn)),
		line("Precision", r.Total.Precision().String(), precision),
		line("Recall", r.Total.Recall().String(), recall),
		line("Num. of comments", strconv.Itoa(r.Comments), func(scoring.Confusion) string { return "" }),
	}
	return w.write(ctx, ScoresFile, header, rows)
}

func (w *Writer) write(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(w.dir, name)
	if err := tabular.WriteFile(path, header, rows); err != nil {
		return err
	}
	w.log.Debug(ctx, "wrote table", logger.String("path", path), logger.Int("rows", len(rows)))
	return nil
}

func byGame(dir string, threadID int64) string {
	return filepath.Join(dir, strconv.FormatInt(threadID, 10)+".csv")
}

func matrixHeader(m *aggregate.Matrix) []string {
	return append([]string{tabular.ColThreadID, tabular.ColCommentID, tabular.ColComment}, m.Identities()...)
}

// matrixRows renders present cells as "1" and absent ones blank.
func matrixRows(m *aggregate.Matrix) [][]string {
	comments := m.Rows()
	rows := make([][]string, len(comments))
	for i, c := range comments {
		row := make([]string, 3+m.Width())
		row[0] = strconv.FormatInt(c.ThreadID, 10)
		row[1] = strconv.FormatInt(c.CommentID, 10)
		row[2] = c.Text
		for col := 0; col < m.Width(); col++ {
			if m.Cell(i, col) == 1 {
				row[3+col] = "1"
			}
		}
		rows[i] = row
	}
	return rows
}

func frequencyHeader(t *aggregate.Table) []string {
	return append([]string{"named entity", "category", "mentions"}, t.Identities()...)
}

func frequencyRows(t *aggregate.Table) [][]string {
	identities := t.Identities()
	rows := make([][]string, 0, len(t.Surfaces))
	for _, s := range t.Surfaces {
		row := make([]string, 3+len(identities))
		row[0] = s.Surface
		row[1] = s.Category
		row[2] = strconv.Itoa(s.Mentions)
		for i, name := range identities {
			if name == s.Identity {
				row[3+i] = "1"
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func sentimentRows(s *management.SeasonSummary) [][]string {
	var rows [][]string
	group := func(title string, pick func(management.RaceStats) management.Split) {
		rows = append(rows, []string{title, "", ""})
		for _, r := range s.Races {
			split := pick(r)
			rows = append(rows, []string{r.Race, split.Win.String(), split.Loss.String()})
		}
	}
	group("Manager Average Net Sentiment Per Game", func(r management.RaceStats) management.Split { return r.Net })
	group("Manager Average Positive Comments Per Game", func(r management.RaceStats) management.Split { return r.Positive })
	group("Manager Average Negative Comments Per Game", func(r management.RaceStats) management.Split { return r.Negative })
	rows = append(rows, []string{"Win/Loss Ratio: " + strconv.Itoa(s.Won) + "/" + strconv.Itoa(s.Lost), "", ""})
	return rows
}

func round(r scoring.Ratio) string {
	if !r.Defined {
		return r.String()
	}
	return strconv.FormatFloat(math.Round(r.Value*1e4)/1e4, 'f', -1, 64)
}
