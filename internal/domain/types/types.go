// Package types contains the JSON views served by the report API.
package types

// Mention is one resolved identity of a thread with its mention count.
type Mention struct {
	Identity string `json:"identity"`
	Mentions int    `json:"mentions"`
}

// Manager is one manager's line in a game summary.
type Manager struct {
	Name     string `json:"name"`
	Pos      string `json:"pos"`
	Race     string `json:"race"`
	Mentions int    `json:"mentions"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Net      int    `json:"net"`
}

// Thread summarises one discussion thread.
type Thread struct {
	ThreadID   int64     `json:"thread_id"`
	Posted     string    `json:"posted,omitempty"`
	Title      string    `json:"title,omitempty"`
	Result     string    `json:"result"`
	Error      string    `json:"error,omitempty"`
	Comments   int       `json:"comments"`
	Identities []Mention `json:"identities,omitempty"`
	Managers   []Manager `json:"managers,omitempty"`
}

// Value is a statistic that may be undefined. Value is omitted when it is not.
type Value struct {
	Value   *float64 `json:"value,omitempty"`
	Defined bool     `json:"defined"`
}

// RaceStat is one race's per-game averages over won and lost games.
type RaceStat struct {
	Race         string `json:"race"`
	Managers     int    `json:"managers"`
	NetWin       Value  `json:"net_win"`
	NetLoss      Value  `json:"net_loss"`
	PositiveWin  Value  `json:"positive_win"`
	PositiveLoss Value  `json:"positive_loss"`
	NegativeWin  Value  `json:"negative_win"`
	NegativeLoss Value  `json:"negative_loss"`
}

// ManagerStat is one manager's mention rates.
type ManagerStat struct {
	Name         string `json:"name"`
	Race         string `json:"race"`
	AnnualSalary string `json:"annual_salary,omitempty"`
	SeasonsSpent string `json:"seasons_spent,omitempty"`
	PerWin       Value  `json:"per_win"`
	PerLoss      Value  `json:"per_loss"`
	Ratio        Value  `json:"ratio"`
}

// Season is the season-wide management summary.
type Season struct {
	Won      int           `json:"won"`
	Lost     int           `json:"lost"`
	Races    []RaceStat    `json:"races"`
	Managers []ManagerStat `json:"managers"`
}

// Score is the confusion of one identity, or of all of them.
type Score struct {
	Identity       string `json:"identity"`
	TruePositives  int    `json:"true_positives"`
	FalsePositives int    `json:"false_positives"`
	FalseNegatives int    `json:"false_negatives"`
	Precision      Value  `json:"precision"`
	Recall         Value  `json:"recall"`
}

// Scores is the accuracy report of a ground-truth comparison.
type Scores struct {
	Comments    int     `json:"comments"`
	Total       Score   `json:"total"`
	PerIdentity []Score `json:"per_identity"`
}
