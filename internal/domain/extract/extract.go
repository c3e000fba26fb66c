// Package extract finds roster mentions in comment text.
package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/okian/rollcall/internal/domain/dedupe"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/pattern"
	"github.com/okian/rollcall/pkg/logger"
	"github.com/okian/rollcall/pkg/metrics"
)

// punctuation is everything that is neither a word character nor space.
var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s]`)

// Extractor scans comments against a compiled pattern set. A comment key is
// processed the first time it is seen; later comments with the same key
// produce nothing.
type Extractor struct {
	set        *pattern.Set
	stop       pattern.StopWords
	seen       dedupe.Deduper
	log        logger.Logger
	shortFirst []shortForm
	shortLast  []shortForm
}

type shortForm struct {
	spelling string // as written in the roster
	token    string // normalised for comparison
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDeduper sets the key tracker. Sharing one deduper between extractors
// makes them skip each other's keys.
func WithDeduper(d dedupe.Deduper) Option {
	return func(x *Extractor) {
		if d != nil {
			x.seen = d
		}
	}
}

// WithLogger sets the logger used for skipped comments.
func WithLogger(l logger.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.log = l
		}
	}
}

// New creates an extractor for set. Stop words are stripped from every
// comment before any matcher runs.
func New(set *pattern.Set, stop pattern.StopWords, opts ...Option) *Extractor {
	x := &Extractor{
		set:  set,
		stop: stop,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.seen == nil {
		x.seen = dedupe.NewInMemoryDeduper()
	}
	x.shortFirst = shortForms(set.ShortFirst)
	x.shortLast = shortForms(set.ShortLast)
	return x
}

func shortForms(spellings []string) []shortForm {
	out := make([]shortForm, 0, len(spellings))
	for _, s := range spellings {
		token := normalise(s)
		if token == "" {
			continue
		}
		out = append(out, shortForm{spelling: s, token: token})
	}
	return out
}

func normalise(s string) string {
	return strings.ToLower(punctuation.ReplaceAllString(s, ""))
}

// Extract returns the mention records of one comment: name matches, then
// short form matches, then nickname matches. A comment without mentions gets
// a single NoMention marker; a repeated key gets nothing.
func (x *Extractor) Extract(ctx context.Context, c model.Comment) []model.Mention {
	key := c.Key()
	if x.seen.SeenAndRecord(ctx, key) {
		metrics.RecordCommentDuplicate()
		x.log.Debug(ctx, "skipping duplicate comment",
			logger.Int64("thread_id", key.ThreadID),
			logger.Int64("comment_id", key.CommentID))
		return nil
	}
	metrics.RecordCommentProcessed()

	if strings.TrimSpace(c.Text) == "" {
		metrics.RecordCommentEmpty()
		metrics.RecordMentions(metrics.MentionNone, 1)
		return []model.Mention{model.NoMention(key)}
	}

	text := x.stop.Strip(c.Text)
	var out []model.Mention

	names := x.matchAll(key, x.set.Names, text)
	metrics.RecordMentions(metrics.MentionName, len(names))
	out = append(out, names...)

	shorts := x.matchShort(key, text)
	metrics.RecordMentions(metrics.MentionShort, len(shorts))
	out = append(out, shorts...)

	nicks := x.matchAll(key, x.set.Nicknames, text)
	metrics.RecordMentions(metrics.MentionNickname, len(nicks))
	out = append(out, nicks...)

	if len(out) == 0 {
		metrics.RecordMentions(metrics.MentionNone, 1)
		return []model.Mention{model.NoMention(key)}
	}
	return out
}

func (x *Extractor) matchAll(key model.CommentKey, re *regexp.Regexp, text string) []model.Mention {
	if re == nil {
		return nil
	}
	var out []model.Mention
	for _, m := range re.FindAllString(text, -1) {
		out = append(out, model.NewMention(key, pattern.TitleCase(m), model.CategoryPerson))
	}
	return out
}

// matchShort counts whole tokens equal to a short form or its plural. Every
// occurrence yields its own record.
func (x *Extractor) matchShort(key model.CommentKey, text string) []model.Mention {
	if len(x.shortFirst) == 0 && len(x.shortLast) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, tok := range strings.Fields(normalise(text)) {
		counts[tok]++
	}
	var out []model.Mention
	for _, forms := range [][]shortForm{x.shortFirst, x.shortLast} {
		for _, f := range forms {
			n := counts[f.token] + counts[f.token+"s"]
			for ; n > 0; n-- {
				out = append(out, model.NewMention(key, f.spelling, model.CategoryPerson))
			}
		}
	}
	return out
}

// ExtractAll extracts every comment in order and concatenates the records.
func (x *Extractor) ExtractAll(ctx context.Context, comments []model.Comment) ([]model.Mention, error) {
	out := make([]model.Mention, 0, len(comments))
	for _, c := range comments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, x.Extract(ctx, c)...)
	}
	x.log.Info(ctx, "extracted mentions",
		logger.Int("comments", len(comments)),
		logger.Int("records", len(out)),
		logger.Int64("distinct_comments", x.seen.Size()))
	return out, nil
}
