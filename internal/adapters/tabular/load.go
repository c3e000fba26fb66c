package tabular

import (
	"fmt"
	"slices"

	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/model"
)

// Input column names.
const (
	ColThreadID  = "global_ID"
	ColCommentID = "local_ID"
	ColComment   = "comment"

	ColPosted      = "dt"
	ColThreadIDAlt = "ID"
	ColTitle       = "title"

	ColTeam = "Team"
)

// LoadComments reads the comments table. IDs must be positive integers.
func LoadComments(t *Table) ([]model.Comment, error) {
	if err := t.Require(ColThreadID, ColCommentID, ColComment); err != nil {
		return nil, err
	}
	out := make([]model.Comment, 0, t.Len())
	for i := range t.Rows {
		key, err := t.key(i, ColThreadID, ColCommentID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Comment{
			ThreadID:  key.ThreadID,
			CommentID: key.CommentID,
			Text:      t.Value(i, ColComment),
		})
	}
	return out, nil
}

// LoadThreads reads the thread metadata table.
func LoadThreads(t *Table) ([]model.ThreadInfo, error) {
	if err := t.Require(ColPosted, ColThreadIDAlt, ColTitle); err != nil {
		return nil, err
	}
	out := make([]model.ThreadInfo, 0, t.Len())
	for i := range t.Rows {
		id, err := t.positive(i, ColThreadIDAlt)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ThreadInfo{
			ThreadID: id,
			Posted:   t.Value(i, ColPosted),
			Title:    t.Value(i, ColTitle),
		})
	}
	return out, nil
}

// LoadTeams reads the list of league team names. Blank cells are skipped.
func LoadTeams(t *Table) ([]string, error) {
	return t.column(ColTeam)
}

// LoadStopWords reads the stop-word column of team. The table holds one
// column per team.
func LoadStopWords(t *Table, team string) ([]string, error) {
	return t.column(team)
}

// LoadMatrix reads a hand-coded presence matrix. Identity columns are taken
// in header order unless identities is given, in which case every one of them
// must be present and the matrix follows that order. Blank cells count as 0.
// Every (global_ID, local_ID) key must be unique.
func LoadMatrix(t *Table, identities []string) (*aggregate.Matrix, error) {
	if err := t.Require(ColThreadID, ColCommentID, ColComment); err != nil {
		return nil, err
	}
	if identities == nil {
		for _, h := range t.Header {
			h = trimHeader(h)
			if h == ColThreadID || h == ColCommentID || h == ColComment || slices.Contains(identities, h) {
				continue
			}
			identities = append(identities, h)
		}
	} else if err := t.Require(identities...); err != nil {
		return nil, err
	}

	comments, err := LoadComments(t)
	if err != nil {
		return nil, err
	}
	first := make(map[model.CommentKey]int, len(comments))
	for row, c := range comments {
		if prev, ok := first[c.Key()]; ok {
			return nil, &FormatError{
				File:    t.Name,
				Reason:  fmt.Sprintf("row %d: key %s repeats row %d", row+2, c.Key(), prev+2),
				Columns: []string{ColThreadID, ColCommentID},
			}
		}
		first[c.Key()] = row
	}
	m := aggregate.NewMatrix(identities, comments)
	for row := range t.Rows {
		for col, name := range identities {
			switch v := t.Value(row, name); v {
			case "", "0", "0.0":
			case "1", "1.0":
				m.Mark(row, col)
			default:
				return nil, &FormatError{
					File:    t.Name,
					Reason:  fmt.Sprintf("row %d: %q is not 0 or 1", row+2, v),
					Columns: []string{name},
				}
			}
		}
	}
	return m, nil
}

func (t *Table) column(col string) ([]string, error) {
	if err := t.Require(col); err != nil {
		return nil, err
	}
	var out []string
	for i := range t.Rows {
		if v := t.Value(i, col); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func (t *Table) key(row int, threadCol, commentCol string) (model.CommentKey, error) {
	thread, err := t.positive(row, threadCol)
	if err != nil {
		return model.CommentKey{}, err
	}
	comment, err := t.positive(row, commentCol)
	if err != nil {
		return model.CommentKey{}, err
	}
	return model.CommentKey{ThreadID: thread, CommentID: comment}, nil
}

func (t *Table) positive(row int, col string) (int64, error) {
	n, err := t.Int(row, col)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, &FormatError{
			File:    t.Name,
			Reason:  fmt.Sprintf("row %d: id %d is not positive", row+2, n),
			Columns: []string{col},
		}
	}
	return n, nil
}
