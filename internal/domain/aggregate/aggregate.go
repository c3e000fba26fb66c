package aggregate

import (
	"github.com/okian/rollcall/internal/domain/model"
)

// Resolver maps a surface string to an identity name.
type Resolver interface {
	Name(surface string) (string, bool)
}

// ByComment builds the comment-level presence matrix. Rows are the distinct
// comment keys in first-seen order; a cell is 1 when some mention of that
// comment resolves to that identity.
func ByComment(comments []model.Comment, mentions []model.Mention, r Resolver, identities []string) *Matrix {
	rowOf := make(map[model.CommentKey]int, len(comments))
	rows := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if _, ok := rowOf[c.Key()]; ok {
			continue
		}
		rowOf[c.Key()] = len(rows)
		rows = append(rows, c)
	}

	m := NewMatrix(identities, rows)
	for _, mention := range mentions {
		if mention.IsMarker() {
			continue
		}
		row, ok := rowOf[mention.Key()]
		if !ok {
			continue
		}
		name, ok := r.Name(mention.Surface)
		if !ok {
			continue
		}
		if col, ok := m.colIndex[name]; ok {
			m.Mark(row, col)
		}
	}
	return m
}

// ThreadIDs returns the distinct thread IDs of comments in first-seen order.
func ThreadIDs(comments []model.Comment) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, c := range comments {
		if _, ok := seen[c.ThreadID]; ok {
			continue
		}
		seen[c.ThreadID] = struct{}{}
		out = append(out, c.ThreadID)
	}
	return out
}
