// Package scoring measures extraction accuracy against a hand-labelled
// comment matrix.
package scoring

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/okian/rollcall/internal/domain/aggregate"
)

// Ratio is a quotient that is undefined when its denominator is zero.
type Ratio struct {
	Value   float64
	Defined bool
}

func ratio(num, den int) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Value: float64(num) / float64(den), Defined: true}
}

// String renders the value, or "undefined".
func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Confusion counts agreement between machine and truth for one column.
type Confusion struct {
	TruePositive  int
	FalsePositive int
	FalseNegative int
}

// Precision is TP / (TP + FP).
func (c Confusion) Precision() Ratio { return ratio(c.TruePositive, c.TruePositive+c.FalsePositive) }

// Recall is TP / (TP + FN).
func (c Confusion) Recall() Ratio { return ratio(c.TruePositive, c.TruePositive+c.FalseNegative) }

// Add returns the element-wise sum.
func (c Confusion) Add(o Confusion) Confusion {
	return Confusion{
		TruePositive:  c.TruePositive + o.TruePositive,
		FalsePositive: c.FalsePositive + o.FalsePositive,
		FalseNegative: c.FalseNegative + o.FalseNegative,
	}
}

// Report is the per-identity and total confusion of one comparison.
type Report struct {
	Identities  []string
	PerIdentity []Confusion // aligned with Identities
	Total       Confusion
	Comments    int
}

// For returns the confusion of the named identity.
func (r *Report) For(identity string) (Confusion, bool) {
	i := slices.Index(r.Identities, identity)
	if i < 0 {
		return Confusion{}, false
	}
	return r.PerIdentity[i], true
}

// Score compares machine against truth cell by cell. A cell marked in both
// is a true positive, marked only by the machine a false positive, and
// marked only in the truth a false negative. Totals are summed before the
// ratios are taken.
func Score(machine, truth *aggregate.Matrix) (*Report, error) {
	if !slices.Equal(machine.Identities(), truth.Identities()) {
		return nil, fmt.Errorf("%w: identity columns differ", ErrShapeMismatch)
	}
	if machine.Len() != truth.Len() {
		return nil, fmt.Errorf("%w: %d machine rows, %d truth rows", ErrShapeMismatch, machine.Len(), truth.Len())
	}

	r := &Report{
		Identities:  machine.Identities(),
		PerIdentity: make([]Confusion, machine.Width()),
		Comments:    machine.Len(),
	}
	for col := 0; col < machine.Width(); col++ {
		var c Confusion
		for row := 0; row < machine.Len(); row++ {
			m, t := int(machine.Cell(row, col)), int(truth.Cell(row, col))
			switch {
			case m+t == 2:
				c.TruePositive++
			case t-m == -1:
				c.FalsePositive++
			case t-m == 1:
				c.FalseNegative++
			}
		}
		r.PerIdentity[col] = c
		r.Total = r.Total.Add(c)
	}
	return r, nil
}
