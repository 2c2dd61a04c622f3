package eval

import "github.com/ardentlabs/corechess/pkg/board"

// Piece values and piece-square tables, reproduced verbatim from the reference
// evaluator this package is ported from. Indexed none, pawn, knight, bishop, rook,
// queen, king — matching board.Piece's own ordering.

var pieceValues = [board.NumPieces]Score{0, 100, 320, 330, 500, 900, 0}

var noneTable = [64]Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var mgPawnTable = [64]Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var egPawnTable = [64]Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	50, 50, 50, 50, 50, 50, 50, 50,
	30, 30, 30, 30, 30, 30, 30, 30,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	-5, -5, -5, -5, -5, -5, -5, -5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var mgKnightTable = [64]Score{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var mgBishopTable = [64]Score{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var mgRookTable = [64]Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var mgQueenTable = [64]Score{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	0, 0, 5, -5, -5, 5, 0, 0,
	-5, 0, -5, 5, 5, -5, 0, -5,
	-5, 0, -5, 5, 5, -5, 0, -5,
	-10, 5, 5, -5, -5, 5, 5, -10,
	-10, 0, 5, 0, 0, 5, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var mgKingTable = [64]Score{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var egKingTable = [64]Score{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// pieceTables[phase][piece][square], phase 0 = middlegame, phase 1 = endgame. Only
// Pawn and King vary by phase; the other officers use the same table in both phases.
var pieceTables = [2][board.NumPieces][64]Score{
	{
		board.NoPiece: noneTable,
		board.Pawn:    mgPawnTable,
		board.Knight:  mgKnightTable,
		board.Bishop:  mgBishopTable,
		board.Rook:    mgRookTable,
		board.Queen:   mgQueenTable,
		board.King:    mgKingTable,
	},
	{
		board.NoPiece: noneTable,
		board.Pawn:    egPawnTable,
		board.Knight:  mgKnightTable,
		board.Bishop:  mgBishopTable,
		board.Rook:    mgRookTable,
		board.Queen:   mgQueenTable,
		board.King:    egKingTable,
	},
}
