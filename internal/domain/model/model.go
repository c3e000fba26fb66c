// Package model contains domain models passed between pipeline stages.
package model

import "strconv"

// CategoryPerson tags every mention produced by the matcher.
const CategoryPerson = "person"

// CommentKey identifies a comment within a dataset.
type CommentKey struct {
	ThreadID  int64
	CommentID int64
}

// String renders the key as "thread:comment".
func (k CommentKey) String() string {
	return strconv.FormatInt(k.ThreadID, 10) + ":" + strconv.FormatInt(k.CommentID, 10)
}

// Comment is one reply within a discussion thread.
type Comment struct {
	ThreadID  int64  // global_ID
	CommentID int64  // local_ID
	Text      string // raw comment body
}

// Key returns the comment's identity.
func (c Comment) Key() CommentKey {
	return CommentKey{ThreadID: c.ThreadID, CommentID: c.CommentID}
}

// Kind discriminates the Mention variant.
type Kind uint8

const (
	// KindNoMention marks a comment that produced no mentions.
	KindNoMention Kind = iota
	// KindMention is a surface form found in a comment.
	KindMention
)

// Mention is either a surface form found in a comment or the marker recorded
// for a comment without any.
type Mention struct {
	Kind      Kind
	ThreadID  int64
	CommentID int64
	Surface   string // empty for KindNoMention
	Category  string // empty for KindNoMention
}

// NewMention builds a KindMention record.
func NewMention(key CommentKey, surface, category string) Mention {
	return Mention{
		Kind:      KindMention,
		ThreadID:  key.ThreadID,
		CommentID: key.CommentID,
		Surface:   surface,
		Category:  category,
	}
}

// NoMention builds the marker for a comment without mentions.
func NoMention(key CommentKey) Mention {
	return Mention{Kind: KindNoMention, ThreadID: key.ThreadID, CommentID: key.CommentID}
}

// Key returns the comment the record belongs to.
func (m Mention) Key() CommentKey {
	return CommentKey{ThreadID: m.ThreadID, CommentID: m.CommentID}
}

// IsMarker reports whether m is a no-mention marker.
func (m Mention) IsMarker() bool { return m.Kind == KindNoMention }

// ThreadInfo is the metadata of a discussion thread.
type ThreadInfo struct {
	ThreadID int64
	Posted   string // post date as exported, e.g. "3/15/2020"
	Title    string
}

// Outcome is the result of a game as seen from the analysed team.
type Outcome uint8

const (
	Unknown Outcome = iota
	Win
	Lose
)

// String returns the exported label.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Unknown"
	}
}
