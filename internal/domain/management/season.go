package management

import (
	"slices"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/roster"
	"github.com/okian/rollcall/internal/domain/scoring"
)

// Races always reported, in this order, even without managers of that race.
var Races = []string{"AA", "CA"}

// Split holds a statistic for won and for lost games.
type Split struct {
	Win  scoring.Ratio
	Loss scoring.Ratio
}

// RaceStats are per-game averages for the managers of one race, divided by
// the number of those managers.
type RaceStats struct {
	Race     string
	Managers int
	Net      Split
	Positive Split
	Negative Split
}

// ManagerStats are one manager's mentions per won and lost game.
type ManagerStats struct {
	Name         string
	Race         string
	AnnualSalary string
	SeasonsSpent string
	PerWin       scoring.Ratio
	PerLoss      scoring.Ratio
	Ratio        scoring.Ratio // PerWin / PerLoss
}

// SeasonSummary aggregates game summaries over a season.
type SeasonSummary struct {
	Won      int
	Lost     int
	Races    []RaceStats
	Managers []ManagerStats
}

type sums struct {
	net, pos, neg float64
}

// Season aggregates games. Games with an Unknown outcome are ignored. Every
// average over zero games is undefined.
func Season(games []GameSummary, managers []roster.Entry) *SeasonSummary {
	s := &SeasonSummary{}

	raceCount := make(map[string]int)
	for _, m := range managers {
		raceCount[m.Race]++
	}

	win := make(map[string]*sums)
	loss := make(map[string]*sums)
	winMentions := make(map[string]int)
	lossMentions := make(map[string]int)

	for _, g := range games {
		var bucket map[string]*sums
		var mentions map[string]int
		switch g.Outcome {
		case model.Win:
			s.Won++
			bucket, mentions = win, winMentions
		case model.Lose:
			s.Lost++
			bucket, mentions = loss, lossMentions
		default:
			continue
		}
		for _, r := range g.Rows {
			mentions[r.Name] += r.Mentions
			acc, ok := bucket[r.Race]
			if !ok {
				acc = &sums{}
				bucket[r.Race] = acc
			}
			acc.net += float64(r.Net())
			acc.pos += float64(r.Positive)
			acc.neg += float64(r.Negative)
		}
	}

	for _, race := range raceOrder(raceCount) {
		divisor := raceCount[race]
		if divisor == 0 {
			divisor = 1
		}
		w, l := win[race], loss[race]
		if w == nil {
			w = &sums{}
		}
		if l == nil {
			l = &sums{}
		}
		s.Races = append(s.Races, RaceStats{
			Race:     race,
			Managers: raceCount[race],
			Net:      Split{Win: average(w.net, s.Won, divisor), Loss: average(l.net, s.Lost, divisor)},
			Positive: Split{Win: average(w.pos, s.Won, divisor), Loss: average(l.pos, s.Lost, divisor)},
			Negative: Split{Win: average(w.neg, s.Won, divisor), Loss: average(l.neg, s.Lost, divisor)},
		})
	}

	for _, m := range managers {
		ms := ManagerStats{
			Name:         m.Name,
			Race:         m.Race,
			AnnualSalary: m.AnnualSalary,
			SeasonsSpent: m.SeasonsSpent,
			PerWin:       average(float64(winMentions[m.Name]), s.Won, 1),
			PerLoss:      average(float64(lossMentions[m.Name]), s.Lost, 1),
		}
		if ms.PerWin.Defined && ms.PerLoss.Defined && ms.PerLoss.Value != 0 {
			ms.Ratio = scoring.Ratio{Value: ms.PerWin.Value / ms.PerLoss.Value, Defined: true}
		}
		s.Managers = append(s.Managers, ms)
	}
	return s
}

func average(total float64, games, divisor int) scoring.Ratio {
	if games == 0 {
		return scoring.Ratio{}
	}
	return scoring.Ratio{Value: total / float64(games) / float64(divisor), Defined: true}
}

// raceOrder lists the fixed races first, then any other race codes sorted.
func raceOrder(counts map[string]int) []string {
	out := append([]string(nil), Races...)
	var extra []string
	for race := range counts {
		if race == "" || slices.Contains(Races, race) {
			continue
		}
		extra = append(extra, race)
	}
	slices.Sort(extra)
	return append(out, extra...)
}
