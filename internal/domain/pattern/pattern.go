// Package pattern compiles a roster into the matchers used to find mentions
// in comment text.
package pattern

import (
	"regexp"
	"strings"

	"github.com/okian/rollcall/internal/domain/roster"
)

// Set is the compiled, read-only matcher set for one roster.
type Set struct {
	// Names matches full, first and last names, case-insensitively. Nil when
	// the roster has none.
	Names *regexp.Regexp
	// Nicknames matches nicknames, case-insensitively. Nil when the roster has
	// none.
	Nicknames *regexp.Regexp
	// ShortFirst and ShortLast are matched against whole lower-cased tokens,
	// including the token followed by "s".
	ShortFirst []string
	ShortLast  []string
}

type buildOptions struct {
	wordBoundaries bool
}

// Option configures Build.
type Option func(*buildOptions)

// WithWordBoundaries anchors every alternative at word boundaries so "Rich"
// no longer matches inside "Richard".
func WithWordBoundaries(enabled bool) Option {
	return func(o *buildOptions) {
		o.wordBoundaries = enabled
	}
}

// Build compiles the matchers for idx. Alternation order is every full name,
// then every first name, then every last name; the leftmost alternative wins
// at a given position.
func Build(idx *roster.Index, opts ...Option) *Set {
	o := buildOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	entries := idx.Entries()
	var full, first, last, nick, shortFirst, shortLast []string
	for _, e := range entries {
		full = append(full, e.Name)
		first = append(first, e.First...)
		last = append(last, e.Last...)
		nick = append(nick, e.Nicknames...)
		shortFirst = append(shortFirst, e.FirstShort...)
		shortLast = append(shortLast, e.LastShort...)
	}

	names := make([]string, 0, len(full)+len(first)+len(last))
	names = append(names, full...)
	names = append(names, first...)
	names = append(names, last...)

	return &Set{
		Names:      alternation(unique(names), o.wordBoundaries),
		Nicknames:  alternation(unique(nick), o.wordBoundaries),
		ShortFirst: unique(shortFirst),
		ShortLast:  unique(shortLast),
	}
}

func alternation(terms []string, bounded bool) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	expr := "(?:" + strings.Join(quoted, "|") + ")"
	if bounded {
		expr = `\b` + expr + `\b`
	}
	return regexp.MustCompile("(?i)" + expr)
}

func unique(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	var out []string
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
