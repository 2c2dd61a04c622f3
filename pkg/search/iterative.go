package search

import (
	"context"
	"time"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/eval"
)

// IterationResult describes one completed iterative-deepening depth, suitable for
// rendering as a UCI "info" line.
type IterationResult struct {
	Depth int
	Time  time.Duration
	Nodes uint64
	Score eval.Score
	Move  board.Move
}

// Driver runs synchronous iterative deepening over a Searcher, stopping at the first
// depth that does not finish within the clock's budget and reporting the last depth
// that did. There is no background goroutine: a call to Run blocks the caller for the
// full duration of the search and cannot be preempted mid-iteration.
type Driver struct {
	Searcher *Searcher
}

// Run searches b up to maxDepth plies (or until the clock expires), invoking onIteration
// after every depth that completed before the clock ran out. IterationResult.Score is
// reported from the root side-to-move's perspective (positive always means "good for the
// side that asked"), while the returned score stays in the white-perspective convention
// used throughout the searcher. It returns the best move and score found at the deepest
// completed iteration.
func (d *Driver) Run(ctx context.Context, b *board.Board, maxDepth int, onIteration func(IterationResult)) (board.Move, eval.Score) {
	var bestMove board.Move
	var bestScore eval.Score

	perspective := eval.Score(1)
	if b.Turn() == board.Black {
		perspective = -1
	}

	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()
		nodesBefore := d.Searcher.Nodes

		// Extensions are seeded at the cap here, so the extension rule never actually
		// fires anywhere in the tree below this call (capture/check recursion only
		// triggers when the budget hasn't been used up). Preserved as-is rather than
		// seeding at zero, which would make extensions active.
		m, score := d.Searcher.Search(ctx, b, depth, eval.MinEval, eval.MaxEval, MaxExtensions)

		if m.IsNull() && score == deadlineSentinelScore {
			break
		}

		bestMove, bestScore = m, score
		if onIteration != nil {
			onIteration(IterationResult{
				Depth: depth,
				Time:  time.Since(start),
				Nodes: d.Searcher.Nodes - nodesBefore,
				Score: score * perspective,
				Move:  m,
			})
		}

		if d.Searcher.Clock.Expired() {
			break
		}
	}

	return bestMove, bestScore
}
