// Command revdict builds the reverse-dictionary dataset from a WordNet
// database: deterministic train/dev/test split by synset, exclusion-list
// filtering, and one "word;description" file per split.
//
// Commands:
//
//	build    run the pipeline (default)
//	verify   check written files against their manifest
//	version  print the build version
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
