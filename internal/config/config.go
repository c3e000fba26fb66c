// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
//   - Defaults live in New; Load layers a YAML file and ROLLCALL_ env vars on top.
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Team is the team under analysis. It selects the stop-word column and is
	// excluded from opponent references in thread titles.
	Team string `koanf:"team"`

	// Input tables.
	CommentsPath    string `koanf:"comments_path"`
	RosterPath      string `koanf:"roster_path"`
	SchedulePath    string `koanf:"schedule_path"`
	ThreadsPath     string `koanf:"threads_path"`
	TeamsPath       string `koanf:"teams_path"`
	StopWordsPath   string `koanf:"stop_words_path"`
	GroundTruthPath string `koanf:"ground_truth_path"`

	// OutputDir receives all exported tables.
	OutputDir string `koanf:"output_dir"`

	// WorkerCount sets the number of per-thread workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxLookbackDays bounds the backward schedule search. Zero derives the
	// bound from the schedule span.
	MaxLookbackDays int `koanf:"max_lookback_days"`

	// LegacyDateRollback reproduces the day-1 -> day-31 date stepping of the
	// legacy exports.
	LegacyDateRollback bool `koanf:"legacy_date_rollback"`

	// WordBoundaries forbids name and nickname hits inside longer words.
	WordBoundaries bool `koanf:"word_boundaries"`

	// MetricsPath is a node-exporter textfile written at the end of a run.
	// Empty disables the flush.
	MetricsPath string `koanf:"metrics_path"`

	// Addr is the listen address of the report API started by serve.
	Addr string `koanf:"addr"`

	// PositiveWords and NegativeWords feed the lexicon sentiment classifier.
	PositiveWords []string `koanf:"positive_words"`
	NegativeWords []string `koanf:"negative_words"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		OutputDir:   "out",
		WorkerCount: runtime.NumCPU(),
		Addr:        ":8080",
		PositiveWords: []string{
			"great", "good", "love", "best", "amazing", "clutch", "win", "won",
			"happy", "awesome", "nice", "beast", "goat", "elite", "solid",
		},
		NegativeWords: []string{
			"bad", "terrible", "awful", "worst", "hate", "trash", "lose", "lost",
			"fire", "fired", "sucks", "garbage", "blame", "horrible", "bust",
		},
	}
}
