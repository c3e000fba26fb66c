// Package sentiment classifies comment text as positive or negative.
package sentiment

import (
	"context"
	"regexp"
	"strings"
)

// Label is a binary sentiment.
type Label uint8

const (
	Negative Label = iota
	Positive
)

// String returns "Positive" or "Negative".
func (l Label) String() string {
	if l == Positive {
		return "Positive"
	}
	return "Negative"
}

// Classifier labels a piece of text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Label, error)
}

// Func adapts a function to Classifier.
type Func func(ctx context.Context, text string) (Label, error)

// Classify calls f.
func (f Func) Classify(ctx context.Context, text string) (Label, error) { return f(ctx, text) }

var (
	urls     = regexp.MustCompile(`https?://\S+`)
	handles  = regexp.MustCompile(`@[A-Za-z0-9_]+`)
	nonWords = regexp.MustCompile(`[^\p{L}\p{N}'\s]+`)
)

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "dont": true, "don't": true,
	"isnt": true, "isn't": true, "cant": true, "can't": true, "wasnt": true, "wasn't": true,
}

// Lexicon scores text by counting words from a positive and a negative list.
// A negator flips the word right after it. Text scoring above zero is
// Positive; everything else, ties included, is Negative.
type Lexicon struct {
	positive map[string]bool
	negative map[string]bool
}

// NewLexicon builds a lexicon classifier. Words are matched case-insensitively.
func NewLexicon(positive, negative []string) *Lexicon {
	return &Lexicon{positive: set(positive), negative: set(negative)}
}

func set(words []string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out[w] = true
		}
	}
	return out
}

// Tokens returns the cleaned, lower-cased tokens of text with links and
// @handles removed.
func Tokens(text string) []string {
	text = urls.ReplaceAllString(text, " ")
	text = handles.ReplaceAllString(text, " ")
	text = nonWords.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(text)
}

// Score returns positive hits minus negative hits.
func (l *Lexicon) Score(text string) int {
	score := 0
	negate := false
	for _, tok := range Tokens(text) {
		if negators[tok] {
			negate = true
			continue
		}
		delta := 0
		switch {
		case l.positive[tok]:
			delta = 1
		case l.negative[tok]:
			delta = -1
		}
		if negate {
			delta = -delta
			negate = false
		}
		score += delta
	}
	return score
}

// Classify implements Classifier.
func (l *Lexicon) Classify(ctx context.Context, text string) (Label, error) {
	if err := ctx.Err(); err != nil {
		return Negative, err
	}
	if l.Score(text) > 0 {
		return Positive, nil
	}
	return Negative, nil
}
