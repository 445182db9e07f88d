// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package spectest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Failure is a single test vector that did not behave as expected.
type Failure struct {
	Suite string // Suite the case belongs to
	Case  string // Name of the case folder
	Valid bool   // Whether the case was expected to decode
	Err   error  // Reason of the failure
}

// String implements fmt.Stringer.
func (f Failure) String() string {
	kind := "invalid"
	if f.Valid {
		kind = "valid"
	}
	return fmt.Sprintf("%s/%s/%s: %v", f.Suite, kind, f.Case, f.Err)
}

// Report aggregates the outcome of a fixture run. It is safe for concurrent use.
type Report struct {
	lock     sync.Mutex
	passed   int
	skipped  int
	failures []Failure
}

// pass records a case behaving as expected.
func (r *Report) pass() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.passed++
}

// skip records a case for which no handler exists.
func (r *Report) skip() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.skipped++
}

// fail records a case misbehaving.
func (r *Report) fail(f Failure) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.failures = append(r.failures, f)
}

// Passed returns the number of cases that behaved as expected.
func (r *Report) Passed() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.passed
}

// Skipped returns the number of cases that had no matching handler.
func (r *Report) Skipped() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.skipped
}

// Failures returns the misbehaving cases, sorted by suite and name.
func (r *Report) Failures() []Failure {
	r.lock.Lock()
	defer r.lock.Unlock()

	failures := append([]Failure(nil), r.failures...)
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Suite != failures[j].Suite {
			return failures[i].Suite < failures[j].Suite
		}
		return failures[i].Case < failures[j].Case
	})
	return failures
}

// Failed reports whether any case misbehaved.
func (r *Report) Failed() bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.failures) > 0
}

// String implements fmt.Stringer.
func (r *Report) String() string {
	failures := r.Failures()

	var b strings.Builder
	fmt.Fprintf(&b, "passed: %d, failed: %d, skipped: %d\n", r.Passed(), len(failures), r.Skipped())
	for _, f := range failures {
		fmt.Fprintf(&b, "  %v\n", f)
	}
	return b.String()
}
