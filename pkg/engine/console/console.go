// Package console contains a synchronous, human-readable driver for debugging the
// engine outside a UCI-speaking GUI.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/engine"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

const ProtocolName = "console"

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

// Run reads console commands from in and writes responses to out until "quit" is
// received or in is exhausted.
func Run(ctx context.Context, in io.Reader, out io.Writer, e *engine.State) error {
	logw.Infof(ctx, "Console protocol initialized")

	fmt.Fprintf(out, "engine %v (%v)\n", e.Name(), e.Author())
	printBoard(out, e)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch strings.ToLower(cmd) {
		case "reset", "r":
			pos := fen.Initial
			if len(args) >= 6 && args[0] != "moves" {
				pos = strings.Join(args[0:6], " ")
			}
			if err := e.Reset(ctx, pos); err != nil {
				fmt.Fprintf(out, "invalid position: %v\n", line)
				break
			}
			move := false
			for _, arg := range args {
				if arg == "moves" {
					move = true
					continue
				}
				if !move {
					continue
				}
				if err := e.Move(ctx, arg); err != nil {
					fmt.Fprintf(out, "invalid move %q: %v\n", arg, err)
					break
				}
			}
			printBoard(out, e)

		case "print", "p":
			printBoard(out, e)

		case "go", "analyze", "a":
			var req engine.GoRequest
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					req.Depth = lang.Some(n)
				}
			}
			m, score := e.Go(ctx, req, func(r search.IterationResult) {
				fmt.Fprintf(out, "depth %2d  score %6d  nodes %8d  time %6dms  move %v\n",
					r.Depth, int(r.Score), r.Nodes, r.Time.Milliseconds(), r.Move)
			})
			fmt.Fprintf(out, "bestmove %v  score %v\n", m, score)

		case "depth", "d":
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					e.SetDepth(uint(n))
				}
			}

		case "hash":
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					e.SetHash(ctx, uint(n))
				}
			}

		case "quit", "exit", "q":
			return nil

		case "":
			// ignore empty command

		default:
			// Assume a move if not a recognized command.

			if err := e.Move(ctx, cmd); err != nil {
				fmt.Fprintf(out, "invalid move %q: %v\n", cmd, err)
			} else {
				printBoard(out, e)
			}
		}
	}
	return scanner.Err()
}

func printBoard(out io.Writer, e *engine.State) {
	b := e.Board()
	p := b.Position()

	fmt.Fprintln(out)
	fmt.Fprintln(out, files)
	fmt.Fprintln(out, horizontal)

	var sb strings.Builder
	sb.WriteString("8" + vertical)
	for i := board.ZeroSquare; i < board.NumSquares; i++ {
		if i != 0 && i%8 == 0 {
			fmt.Fprintln(out, sb.String())
			fmt.Fprintln(out, horizontal)

			sb.Reset()
			sb.WriteString((7 - i.Rank()).String())
			sb.WriteString(vertical)
		}

		if color, piece, ok := p.Square(board.NumSquares - i - 1); ok {
			sb.WriteString(printPiece(color, piece))
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(vertical)
	}
	fmt.Fprintln(out, sb.String())
	fmt.Fprintln(out, horizontal)
	fmt.Fprintln(out, files)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "fen:    %v\n", e.Position())
	fmt.Fprintf(out, "hash:   0x%x\n", b.ZobristHash())
	fmt.Fprintln(out)
}

func printPiece(c board.Color, p board.Piece) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}
