// Package eval contains static position evaluation: material balance plus
// phase-dependent piece-square tables, with terminal shortcuts for checkmate and
// stalemate.
package eval

import (
	"context"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/seekerror/logw"
)

// Score is a centipawn evaluation, from White's perspective (positive favors White).
type Score int32

const (
	// MinEval and MaxEval bound the alpha-beta search window. MaxEval is the int32
	// maximum and MinEval is one above the int32 minimum, matching the reference
	// evaluator, so that negating either bound never overflows (-MinEval == MaxEval).
	MinEval Score = -2_147_483_647
	MaxEval Score = 2_147_483_647

	mateScore = 9_999_999
)

// endgamePieceCount is the total non-king piece count below which the endgame
// piece-square tables are used instead of the middlegame ones.
const endgamePieceCount = 14

// Evaluator is a static position evaluator.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material is the table-driven evaluator: material balance plus phase-dependent
// piece-square tables, with checkmate/stalemate terminal shortcuts.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Score {
	return Evaluate(ctx, b)
}

// Evaluate scores the position from White's perspective.
func Evaluate(ctx context.Context, b *board.Board) Score {
	if b.Checkmate() {
		logw.Debugf(ctx, "evaluate: checkmate at ply %v", b.HalfMovesPlayed())
		played := Score(b.HalfMovesPlayed())
		if b.Turn() == board.White {
			return -mateScore + played
		}
		return mateScore - played
	}
	if b.Stalemate() {
		return 0
	}

	phase := 0
	if b.Position().TotalPieceCount() < endgamePieceCount {
		phase = 1
	}

	var score Score
	pos := b.Position()
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		color, piece, ok := pos.Square(sq)
		if !ok {
			continue
		}

		value := pieceValues[piece]
		if color == board.White {
			score += value
			score += pieceTables[phase][piece][63-sq]
		} else {
			score -= value
			score -= pieceTables[phase][piece][sq]
		}
	}
	return score
}
