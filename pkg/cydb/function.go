package cydb

import "fmt"

// FunctionCall renders "name(arg, arg, …)". The function name is
// identifier-escaped only when it is not a plain alphanumeric token
// (covers dialect-qualified names like "schema.fn").
type FunctionCall struct {
	Name string
	Args []Expression
}

func (*FunctionCall) Returns() bool { return true }

// Fn builds a FunctionCall.
func Fn(name string, args ...Expression) *FunctionCall {
	return &FunctionCall{Name: name, Args: args}
}

func isPlainAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}

// Aggregate renders an aggregate function call, optionally filtered
// (FILTER (WHERE …)) and/or windowed (OVER (…)). When the dialect lacks
// native FILTER support the Writer rewrites the filter into a CASE
// expression instead; see Writer.formatAggregate.
type Aggregate struct {
	Function string
	Column   Expression // nil means COUNT(*)-style aggregate with no column
	Filter   *Where
	Over     *Window
	Distinct bool
}

func (*Aggregate) Returns() bool { return true }

// Agg builds an unfiltered, unwindowed aggregate over column (nil for
// COUNT(*)).
func Agg(function string, column Expression) *Aggregate {
	return &Aggregate{Function: function, Column: column}
}

// WithFilter attaches a FILTER (WHERE …) clause and returns the same
// Aggregate for chaining.
func (a *Aggregate) WithFilter(w *Where) *Aggregate { a.Filter = w; return a }

// WithOver attaches an OVER (…) window clause and returns the same
// Aggregate for chaining.
func (a *Aggregate) WithOver(w *Window) *Aggregate { a.Over = w; return a }

// Window renders "(partition by … order by …)", or is referenced by
// name when Name is set and used as a standalone WINDOW clause member.
type Window struct {
	Name        string
	PartitionBy []Expression
	OrderBy     []*OrderByStatement
}

func (*Window) Returns() bool { return false }

// NewWindow builds an unnamed window specification.
func NewWindow() *Window { return &Window{} }

// Named sets the window's name (for use in a top-level WINDOW clause)
// and returns the same Window for chaining.
func (w *Window) Named(name string) *Window { w.Name = name; return w }

// PartitionedBy sets the PARTITION BY columns and returns the same
// Window for chaining.
func (w *Window) PartitionedBy(cols ...Expression) *Window { w.PartitionBy = cols; return w }

// OrderedBy sets the ORDER BY items and returns the same Window for
// chaining.
func (w *Window) OrderedBy(items ...*OrderByStatement) *Window { w.OrderBy = items; return w }

// CurrentTimestamp renders "current_timestamp" by default; dialects
// override it through DialectOps.CurrentTimestampSQL.
type CurrentTimestamp struct{}

func (CurrentTimestamp) Returns() bool { return true }

// Now is the canonical CurrentTimestamp instance.
var Now = CurrentTimestamp{}

// Random renders the dialect's random() function.
type Random struct{}

func (Random) Returns() bool { return true }

// Rand is the canonical Random instance.
var Rand = Random{}

// RandomInt renders a random integer in [Min, Max], guarded so Max is
// never less than Min. Rendered as
// (min + cast(floor(random() * span) as bigint)), where span is
// max - min + 1 computed in Go; the cast keeps the result an integer
// across dialects.
type RandomInt struct {
	Min int64
	Max int64
}

func (*RandomInt) Returns() bool { return true }

// RandBetween builds a RandomInt in [min, max]; it panics if max < min,
// since that is a programmer error, not a runtime condition.
func RandBetween(min, max int64) *RandomInt {
	if max < min {
		panic(fmt.Sprintf("cydb: RandomInt range invalid: max %d < min %d", max, min))
	}
	return &RandomInt{Min: min, Max: max}
}
