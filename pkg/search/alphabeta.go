package search

import (
	"context"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/eval"
)

// MaxExtensions bounds how many times a single line may be extended (captures/checks)
// beyond the requested depth.
const MaxExtensions = 8

// deadlineSentinelScore is returned together with board.NullMove to signal that the
// search ran out of time partway through; callers must propagate it unexamined rather
// than treating it as a real evaluation.
const deadlineSentinelScore = eval.Score(-1)

// Searcher runs a split max/min alpha-beta search to a fixed depth, with capture/check
// extensions and shallow-depth futility pruning, backed by a transposition table.
type Searcher struct {
	TT    *Table
	Clock *Clock
	Nodes uint64
}

// Search explores b (the side to move is taken from b.Turn()) to depth, within
// [alpha, beta], having already used ext of the MaxExtensions budget on this line.
// Returns the best move found and its score; returns (board.NullMove,
// deadlineSentinelScore) if the clock expired before a result was available, which the
// caller must propagate unexamined.
func (s *Searcher) Search(ctx context.Context, b *board.Board, depth int, alpha, beta eval.Score, ext int) (board.Move, eval.Score) {
	moves := OrderMoves(b, b.GenerateMoves())

	if depth == 0 || len(moves) == 0 {
		s.Nodes++
		return board.NullMove, eval.Evaluate(ctx, b)
	}

	if e, ok := s.TT.Probe(b.ZobristHash()); ok && !e.Move.IsNull() && int(e.Depth) >= depth {
		return e.Move, e.Score
	}

	if s.Clock.Expired() {
		return board.NullMove, deadlineSentinelScore
	}

	if b.Turn() == board.White {
		return s.searchMax(ctx, b, moves, depth, alpha, beta, ext)
	}
	return s.searchMin(ctx, b, moves, depth, alpha, beta, ext)
}

func (s *Searcher) searchMax(ctx context.Context, b *board.Board, moves []board.Move, depth int, alpha, beta eval.Score, ext int) (board.Move, eval.Score) {
	var best board.Move
	var legal bool
	for _, m := range moves {
		if !b.PushMove(m) {
			continue
		}
		legal = true
		cm, cs := s.exploreChild(ctx, b, m, depth, alpha, beta, ext, true)
		b.PopMove()

		if cm.IsNull() && cs == deadlineSentinelScore {
			return board.NullMove, deadlineSentinelScore
		}
		if cs > alpha {
			alpha = cs
			best = m
		}
		if beta <= alpha {
			break
		}
	}
	if !legal {
		// Every pseudo-legal move left the mover's own king in check: this is actually
		// checkmate or stalemate, not an interior node with a real move to make.
		return board.NullMove, eval.Evaluate(ctx, b)
	}
	s.TT.Store(b.ZobristHash(), alpha, best, depth)
	return best, alpha
}

func (s *Searcher) searchMin(ctx context.Context, b *board.Board, moves []board.Move, depth int, alpha, beta eval.Score, ext int) (board.Move, eval.Score) {
	var best board.Move
	var legal bool
	for _, m := range moves {
		if !b.PushMove(m) {
			continue
		}
		legal = true
		cm, cs := s.exploreChild(ctx, b, m, depth, alpha, beta, ext, false)
		b.PopMove()

		if cm.IsNull() && cs == deadlineSentinelScore {
			return board.NullMove, deadlineSentinelScore
		}
		if cs < beta {
			beta = cs
			best = m
		}
		if beta <= alpha {
			break
		}
	}
	if !legal {
		return board.NullMove, eval.Evaluate(ctx, b)
	}
	s.TT.Store(b.ZobristHash(), beta, best, depth)
	return best, beta
}

// exploreChild decides, for the move m just pushed onto b, whether to extend (same
// depth), recurse at depth-1, or — at shallow depth — apply a futility cutoff using a
// synthetic placeholder score. m is returned as the "move" half of the result exactly
// in the placeholder case so that callers' sentinel detection (move == null and score
// == -1) cannot misfire on a futility cutoff.
func (s *Searcher) exploreChild(ctx context.Context, b *board.Board, m board.Move, depth int, alpha, beta eval.Score, ext int, maximizing bool) (board.Move, eval.Score) {
	switch {
	case (m.IsCapture() || b.InCheck()) && ext < MaxExtensions:
		return s.Search(ctx, b, depth, alpha, beta, ext+1)

	case depth > 3:
		return s.Search(ctx, b, depth-1, alpha, beta, ext)

	default:
		standPat := eval.Evaluate(ctx, b)
		margin := eval.Score(300 * depth * depth)
		if maximizing {
			if margin+standPat < alpha {
				return m, alpha - 2
			}
		} else {
			if margin+standPat < -beta {
				return m, beta + 2
			}
		}
		return s.Search(ctx, b, depth-1, alpha, beta, ext)
	}
}
