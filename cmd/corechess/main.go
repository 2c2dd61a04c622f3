// corechess is a synchronous UCI chess engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ardentlabs/corechess/pkg/engine"
	"github.com/ardentlabs/corechess/pkg/engine/console"
	"github.com/ardentlabs/corechess/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	depth           = flag.Uint("depth", 0, "Search depth limit (0: default limit of 20, also bounded by time budget)")
	hash            = flag.Uint("hash", engine.DefaultHashMiB, "Transposition table size in MB")
	consoleProtocol = flag.Bool("console", false, "Speak the human-readable debug console protocol instead of UCI")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corechess [options]

corechess is a single-threaded UCI chess engine. It speaks the UCI protocol
on stdin/stdout from the first line read, with no handshake line required to
select it: a GUI's first command is ordinarily "uci" itself.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corechess", "ardentlabs", engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
	}))

	var err error
	if *consoleProtocol {
		err = console.Run(ctx, os.Stdin, os.Stdout, e)
	} else {
		err = uci.Run(ctx, os.Stdin, os.Stdout, e)
	}
	if err != nil {
		logw.Exitf(ctx, "Driver failed: %v", err)
	}
}
