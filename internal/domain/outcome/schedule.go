package outcome

import (
	"fmt"
	"strings"
)

// Column names of the season schedule table.
const (
	ColDate          = "Date"
	ColGame          = "G"
	ColOpponent      = "Opponent"
	ColResult        = "Result"
	ColResultAlt     = "W/L"
	ColOpponentShort = "Opponent Shortened"
	ColNewDate       = "New Date"
)

// Results recorded in the schedule.
const (
	ResultWin  = "W"
	ResultLoss = "L"
)

// ScheduleEntry is one game of the analysed team's season.
type ScheduleEntry struct {
	Date          Date
	Game          int
	Opponent      string
	OpponentShort string
	Result        string
}

// Table is the subset of a loaded CSV table the schedule parser reads.
type Table interface {
	Require(cols ...string) error
	Has(col string) bool
	Len() int
	Value(row int, col string) string
	Int(row int, col string) (int64, error)
}

// ParseSchedule reads a season schedule. The result column may be named
// "Result" or "W/L". When the derived columns "New Date" and "Opponent
// Shortened" are missing they are computed from "Date" and the last word of
// "Opponent".
func ParseSchedule(t Table) ([]ScheduleEntry, error) {
	if err := t.Require(ColDate, ColGame, ColOpponent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	resultCol := ColResult
	if !t.Has(ColResult) {
		if !t.Has(ColResultAlt) {
			return nil, fmt.Errorf("%w: %w", ErrFormat, t.Require(ColResult))
		}
		resultCol = ColResultAlt
	}

	out := make([]ScheduleEntry, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		game, err := t.Int(row, ColGame)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}

		rawDate := t.Value(row, ColNewDate)
		if rawDate == "" {
			rawDate = t.Value(row, ColDate)
		}
		date, err := ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrFormat, row+2, err)
		}

		opponent := t.Value(row, ColOpponent)
		short := t.Value(row, ColOpponentShort)
		if short == "" {
			short = ShortName(opponent)
		}

		out = append(out, ScheduleEntry{
			Date:          date,
			Game:          int(game),
			Opponent:      opponent,
			OpponentShort: short,
			Result:        strings.ToUpper(t.Value(row, resultCol)),
		})
	}
	return out, nil
}

// ShortName returns the last word of a team name, "Lakers" for "Los Angeles
// Lakers".
func ShortName(team string) string {
	words := strings.Fields(team)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
