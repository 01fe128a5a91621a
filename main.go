package main

import (
	"context"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	err := newRootCmd().ExecuteContext(shutdownContext(ctx))

	cancel()

	if err != nil {
		exitOnError(err)
	}
}
