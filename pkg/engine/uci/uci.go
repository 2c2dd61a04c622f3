// Package uci contains a synchronous driver for running the engine under the UCI
// protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/engine"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

const ProtocolName = "uci"

const (
	minHashMiB = 1
	maxHashMiB = 4096
)

// Run reads UCI commands from in and writes responses to out until "quit" is received
// or in is exhausted. It is fully synchronous: a "go" command blocks Run for the
// duration of the search, so "stop" received while a search is running only sets a
// flag the searcher has no opportunity to poll until that search returns on its own.
func Run(ctx context.Context, in io.Reader, out io.Writer, e *engine.State) error {
	logw.Infof(ctx, "UCI protocol initialized")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lastPosition := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch strings.ToLower(cmd) {
		case "uci":
			fmt.Fprintf(out, "id name %v\n", e.Name())
			fmt.Fprintf(out, "id author %v\n", e.Author())
			fmt.Fprintln(out)
			fmt.Fprintf(out, "option name Hash type spin default %v min %v max %v\n", engine.DefaultHashMiB, minHashMiB, maxHashMiB)
			fmt.Fprintln(out, "uciok")

		case "isready":
			fmt.Fprintln(out, "readyok")

		case "debug":
			// No additional "info string" diagnostics implemented.

		case "setoption":
			name, value := parseSetOption(args)
			switch name {
			case "Hash":
				if n, err := strconv.Atoi(value); err == nil && n >= minHashMiB && n <= maxHashMiB {
					e.SetHash(ctx, uint(n))
				}
			}

		case "ucinewgame":
			lastPosition = ""

		case "position":
			if lastPosition != "" && strings.HasPrefix(line, lastPosition) {
				rest := strings.TrimSpace(strings.TrimPrefix(line, lastPosition))
				for _, mv := range strings.Fields(rest) {
					if mv == "moves" {
						continue
					}
					if err := e.Move(ctx, mv); err != nil {
						logw.Errorf(ctx, "Invalid position move %q: %v: %v", mv, line, err)
						return fmt.Errorf("illegal move %q: %w", mv, err)
					}
				}
				lastPosition = line
				break
			}

			position := fen.Initial
			if len(args) >= 7 && args[0] == "fen" {
				position = strings.Join(args[1:7], " ")
			}
			if err := e.Reset(ctx, position); err != nil {
				logw.Errorf(ctx, "Invalid position %q, falling back to start position: %v", line, err)
				_ = e.Reset(ctx, fen.Initial)
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
					logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
					return fmt.Errorf("illegal move %q: %w", arg, err)
				}
			}
			lastPosition = line

		case "go":
			req := parseGoRequest(args)
			m, score := e.Go(ctx, req, func(r search.IterationResult) {
				fmt.Fprintln(out, formatInfo(r))
			})
			fmt.Fprintf(out, "bestmove %v\n", formatMove(m))
			_ = score

		case "stop":
			e.Stop()

		case "d":
			b := e.Board()
			fmt.Fprintln(out, b.String())

		case "quit":
			return nil

		default:
			logw.Warningf(ctx, "Unknown command %q: %v", cmd, args)
			fmt.Fprintf(out, "Unknown command: %v\n", line)
		}
	}
	return scanner.Err()
}

func parseSetOption(args []string) (name, value string) {
	i := 0
	for i < len(args) && args[i] != "name" {
		i++
	}
	i++
	var nameParts []string
	for i < len(args) && args[i] != "value" {
		nameParts = append(nameParts, args[i])
		i++
	}
	name = strings.Join(nameParts, " ")
	i++
	if i < len(args) {
		value = strings.Join(args[i:], " ")
	}
	return name, value
}

func parseGoRequest(args []string) engine.GoRequest {
	var req engine.GoRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					req.Depth = lang.Some(n)
				}
			}
		case "movetime":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					req.Movetime = lang.Some(time.Duration(n) * time.Millisecond)
				}
			}
		case "wtime":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					req.WhiteClock = lang.Some(time.Duration(n) * time.Millisecond)
				}
			}
		case "btime":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					req.BlackClock = lang.Some(time.Duration(n) * time.Millisecond)
				}
			}
		}
	}
	return req
}

func formatInfo(r search.IterationResult) string {
	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", r.Depth))
	parts = append(parts, fmt.Sprintf("time %v", r.Time.Milliseconds()))
	parts = append(parts, fmt.Sprintf("nodes %v", r.Nodes))
	parts = append(parts, fmt.Sprintf("score cp %v", int(r.Score)))
	if !r.Move.IsNull() {
		parts = append(parts, "pv", formatMove(r.Move))
	}
	return strings.Join(parts, " ")
}

func formatMove(m board.Move) string {
	return m.String()
}
