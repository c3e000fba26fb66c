package pattern

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every whitespace separated word,
// lower-cases the rest and joins the words with a single space.
func TitleCase(s string) string {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	words := strings.Fields(s)
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}

// StopWords is a list of strings removed from comment text before matching.
type StopWords struct {
	words []string
}

// NewStopWords prepares words for stripping. Blank entries are ignored. Each
// word is also stripped in its title-cased form; longer words go first so a
// stop word containing another is removed whole.
func NewStopWords(words ...string) StopWords {
	seen := make(map[string]struct{}, len(words)*2)
	var out []string
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		add(w)
		add(TitleCase(w))
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return StopWords{words: out}
}

// Len returns the number of variants stripped.
func (s StopWords) Len() int { return len(s.words) }

// Strip removes every occurrence of every stop word variant from text.
func (s StopWords) Strip(text string) string {
	for _, w := range s.words {
		text = strings.ReplaceAll(text, w, "")
	}
	return text
}
