// Package main runs the governance invariant verifier against a workspace.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	verifycmd "github.com/concordhq/concord/internal/cmd/verify"
	"github.com/concordhq/concord/internal/platform/config"
)

func main() {
	cfg, err := verifycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := verifycmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("verify: %v", err)
	}
}
