// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package spectest runs consensus-spec style ssz test vectors against the
// codec and merkleizer.
package spectest

import (
	"errors"
	"io"
	"log/slog"
	"runtime"
)

// Config contains the settings of a fixture run.
type Config struct {
	Root        string       // Directory containing the suite folders
	Suites      []string     // Suites to run, all known ones if empty
	Parallelism int          // Number of cases to run concurrently, GOMAXPROCS if zero
	Logger      *slog.Logger // Logger to report progress into, discarded if nil
}

// DefaultConfig contains the default settings for a fixture run.
var DefaultConfig = Config{
	Root: "testdata",
}

// errNoRoot is returned if the fixture run is started without a directory.
var errNoRoot = errors.New("spectest: no fixture root configured")

// sanitize checks the config for mandatory fields and fills in defaults.
func (c Config) sanitize() (Config, error) {
	if c.Root == "" {
		return c, errNoRoot
	}
	if len(c.Suites) == 0 {
		c.Suites = Suites()
	}
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c, nil
}
