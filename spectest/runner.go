// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package spectest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	serializedFile = "serialized.ssz_snappy" // Snappy compressed ssz encoding
	metaFile       = "meta.yaml"             // Expected hash tree root of valid cases
)

// meta is the content of a valid case's meta.yaml.
type meta struct {
	Root string `yaml:"root"`
}

// testCase is a single test vector folder.
type testCase struct {
	suite string
	name  string
	valid bool
	path  string
}

// Runner executes the test vectors of a fixture directory.
type Runner struct {
	config Config
	logger *slog.Logger
}

// NewRunner creates a fixture runner with the given config.
func NewRunner(config Config) (*Runner, error) {
	config, err := config.sanitize()
	if err != nil {
		return nil, err
	}
	return &Runner{config: config, logger: config.Logger}, nil
}

// Run executes every test vector of the configured suites and aggregates the
// outcome into a report. Misbehaving vectors are recorded in the report, an
// error is only returned if the fixtures could not be enumerated or the run
// was interrupted.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	cases, err := r.collect()
	if err != nil {
		return nil, err
	}
	r.logger.Info("Running ssz test vectors", "root", r.config.Root, "suites", len(r.config.Suites), "cases", len(cases))

	var (
		start  = time.Now()
		report = new(Report)
	)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.config.Parallelism)

	for _, tc := range cases {
		tc := tc
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.run(tc, report)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	r.logger.Info("Finished ssz test vectors", "passed", report.Passed(), "failed", len(report.Failures()),
		"skipped", report.Skipped(), "elapsed", time.Since(start))
	return report, nil
}

// collect enumerates the case folders of all configured suites. Missing suite
// folders are skipped.
func (r *Runner) collect() ([]testCase, error) {
	var cases []testCase
	for _, suite := range r.config.Suites {
		for _, valid := range []bool{true, false} {
			kind := "invalid"
			if valid {
				kind = "valid"
			}
			dir := filepath.Join(r.config.Root, filepath.FromSlash(suite), kind)

			entries, err := os.ReadDir(dir)
			if errors.Is(err, fs.ErrNotExist) {
				r.logger.Debug("Skipping missing suite folder", "suite", suite, "kind", kind)
				continue
			}
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					continue
				}
				cases = append(cases, testCase{
					suite: suite,
					name:  entry.Name(),
					valid: valid,
					path:  filepath.Join(dir, entry.Name()),
				})
			}
		}
	}
	return cases, nil
}

// run executes a single test vector and records the outcome.
func (r *Runner) run(tc testCase, report *Report) {
	logger := r.logger.With("suite", tc.suite, "case", tc.name)

	h, err := resolve(tc.suite, tc.name)
	if err != nil {
		logger.Debug("Skipping unrecognized test vector", "err", err)
		report.skip()
		return
	}
	if err := check(h, tc); err != nil {
		logger.Warn("Test vector failed", "valid", tc.valid, "err", err)
		report.fail(Failure{Suite: tc.suite, Case: tc.name, Valid: tc.valid, Err: err})
		return
	}
	logger.Debug("Test vector passed", "valid", tc.valid)
	report.pass()
}

// check runs a handler against a test vector. Valid vectors must decode,
// re-encode into the exact same bytes and hash into the expected root, while
// invalid ones must be rejected by the decoder.
func check(h handler, tc testCase) error {
	compressed, err := os.ReadFile(filepath.Join(tc.path, serializedFile))
	if err != nil {
		return err
	}
	blob, err := snappy.Decode(nil, compressed)
	if err != nil {
		return fmt.Errorf("failed to decompress vector: %w", err)
	}
	if !tc.valid {
		if _, _, err := h(blob); err == nil {
			return errors.New("invalid vector decoded successfully")
		}
		return nil
	}
	raw, err := os.ReadFile(filepath.Join(tc.path, metaFile))
	if err != nil {
		return err
	}
	var want meta
	if err := yaml.Unmarshal(raw, &want); err != nil {
		return fmt.Errorf("failed to parse meta: %w", err)
	}
	enc, root, err := h(blob)
	if err != nil {
		return fmt.Errorf("failed to decode vector: %w", err)
	}
	if !bytes.Equal(enc, blob) {
		return fmt.Errorf("re-encoding mismatch: have %x, want %x", enc, blob)
	}
	if have := fmt.Sprintf("%#x", root); have != want.Root {
		return fmt.Errorf("root mismatch: have %s, want %s", have, want.Root)
	}
	return nil
}
