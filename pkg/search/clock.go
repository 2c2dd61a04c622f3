package search

import (
	"math"
	"time"

	"github.com/ardentlabs/corechess/pkg/board"
)

// defaultBudget is used when neither movetime nor a clock was given.
const defaultBudget = 8000 * time.Millisecond

// Clock is a single hard search deadline, polled synchronously by the searcher. There
// is no soft/hard limit split and no cancellation channel: a search that starts is run
// to completion or to this deadline, whichever comes first.
type Clock struct {
	start  time.Time
	budget time.Duration
}

// NewClock starts a clock with the given budget.
func NewClock(budget time.Duration) *Clock {
	return &Clock{start: time.Now(), budget: budget}
}

// Reset restarts the clock with a new budget.
func (c *Clock) Reset(budget time.Duration) {
	c.start = time.Now()
	c.budget = budget
}

// Elapsed returns the time since the clock was started or last reset.
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Expired returns true iff the budget has been exceeded.
func (c *Clock) Expired() bool {
	return time.Since(c.start) > c.budget
}

// ResolveBudget computes the search time budget for a `go` command:
//   - an explicit movetime, if given, is used as-is;
//   - otherwise, if either wtime or btime was given, the budget is 10 * sqrt(clock_ms)
//     for the side to move's remaining clock;
//   - otherwise, a fixed default of 8 seconds.
func ResolveBudget(turn board.Color, movetimeMs int, hasMovetime bool, wtimeMs, btimeMs int, hasClock bool) time.Duration {
	switch {
	case hasMovetime:
		return time.Duration(movetimeMs) * time.Millisecond
	case hasClock:
		clockMs := wtimeMs
		if turn == board.Black {
			clockMs = btimeMs
		}
		if clockMs < 0 {
			clockMs = 0
		}
		ms := 10 * math.Sqrt(float64(clockMs))
		return time.Duration(ms) * time.Millisecond
	default:
		return defaultBudget
	}
}
