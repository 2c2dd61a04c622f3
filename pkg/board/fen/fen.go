// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardentlabs/corechess/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode returns a new position and game status from a FEN description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (board.Position, board.Color, int, int, error) {
	// A FEN record contains six fields, separated by a space.

	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	// (1) Piece placement (from white's perspective). Each rank is described,
	// starting with rank 8 and ending with rank 1; within each rank, the
	// contents of each square are described from file a through file h.

	var pieces []board.Placement

	sq := board.A8
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			// rank separator, cosmetic

		case unicode.IsDigit(r):
			sq -= board.Square(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return board.Position{}, 0, 0, 0, fmt.Errorf("invalid piece %q in FEN: %q", r, fen)
			}
			pieces = append(pieces, board.Placement{Square: sq, Color: color, Piece: piece})
			sq--

		default:
			return board.Position{}, 0, 0, 0, fmt.Errorf("invalid character in FEN: %q", fen)
		}
	}
	if sq+1 != board.H1 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of squares in FEN: %q", fen)
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	active, ok := parseColor(parts[1])
	if !ok {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid castling in FEN: %q", fen)
	}

	// (4) En passant target square.

	var ep board.Square
	if parts[3] != "-" {
		s, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return board.Position{}, 0, 0, 0, fmt.Errorf("invalid en passant in FEN: %q", fen)
		}
		ep = s
	}

	// (5) Halfmove clock: halfmoves since the last pawn advance or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid halfmove in FEN: %q", fen)
	}

	// (6) Fullmove number: starts at 1, incremented after Black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid full moves in FEN: %q", fen)
	}

	pos, err := board.NewPosition(pieces, castling, ep)
	if err != nil {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid position in FEN: %q: %w", fen, err)
	}
	return pos, active, np, fm, nil
}

// Encode encodes the position and game data in FEN notation.
func Encode(pos board.Position, c board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder
	for r := board.ZeroRank; r < board.NumRanks; r++ {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(board.NumFiles-f-1, board.NumRanks-r-1))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r < board.NumRanks-1 {
			sb.WriteString("/")
		}
	}

	turn := printColor(c)
	castling := printCastling(pos.Castling())

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, castling, ep, noprogress, fullmoves)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}
	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	if unicode.IsUpper(r) {
		p, ok := board.ParsePiece(r)
		return board.White, p, ok
	}
	p, ok := board.ParsePiece(r)
	return board.Black, p, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	s := p.String()
	if c == board.White {
		s = strings.ToUpper(s)
	}
	return []rune(s)[0]
}
