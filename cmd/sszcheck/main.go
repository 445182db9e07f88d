// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// sszcheck runs consensus-spec style ssz test vectors against the codec.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/sszkit/ssz/spectest"
)

var (
	flagRoot     = flag.String("root", spectest.DefaultConfig.Root, "directory containing the suite folders")
	flagSuites   = flag.String("suites", "", "optional comma-separated list of suites to run (default: all)")
	flagParallel = flag.Int("parallel", 0, "number of test vectors to run concurrently (default: GOMAXPROCS)")
	flagVerbose  = flag.Bool("verbose", false, "log every test vector")
	flagList     = flag.Bool("list", false, "list the known suites and exit")
)

func main() {
	flag.Parse()

	if *flagList {
		for _, suite := range spectest.Suites() {
			fmt.Println(suite)
		}
		return
	}
	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	config := spectest.Config{
		Root:        *flagRoot,
		Suites:      splitSuites(*flagSuites),
		Parallelism: *flagParallel,
		Logger:      logger,
	}
	runner, err := spectest.NewRunner(config)
	if err != nil {
		logger.Error("Failed to create runner", "err", err)
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	report, err := runner.Run(ctx)
	if err != nil {
		logger.Error("Failed to run test vectors", "err", err)
		os.Exit(2)
	}
	fmt.Print(report)
	if report.Failed() {
		os.Exit(1)
	}
}

// splitSuites parses the comma separated suite filter.
func splitSuites(filter string) []string {
	if filter == "" {
		return nil
	}
	var suites []string
	for _, suite := range strings.Split(filter, ",") {
		if suite = strings.TrimSpace(suite); suite != "" {
			suites = append(suites, suite)
		}
	}
	return suites
}
