// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package spectest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sszkit/ssz"
	"github.com/sszkit/ssz/consensus"
)

// chunkOf returns a zero padded chunk starting with the given bytes.
func chunkOf(prefix ...byte) [32]byte {
	var chunk [32]byte
	copy(chunk[:], prefix)
	return chunk
}

// writeFixtures populates a fixture directory with a mix of passing, failing
// and unrecognized vectors.
func writeFixtures(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	write := func(suite string, valid bool, name string, blob []byte, hash [32]byte) {
		t.Helper()
		if err := WriteCase(root, suite, valid, name, blob, hash); err != nil {
			t.Fatalf("failed to write %s/%s: %v", suite, name, err)
		}
	}
	// Basic types
	write("uints", true, "uint_16_max", []byte{0xff, 0xff}, chunkOf(0xff, 0xff))
	write("uints", false, "uint_32_one_too_short", []byte{1, 2, 3}, [32]byte{})
	write("uints", true, "uint_7_weird", []byte{1}, chunkOf(1))
	write("boolean", true, "true", []byte{0x01}, chunkOf(0x01))
	write("boolean", false, "byte_2", []byte{0x02}, [32]byte{})

	// Bit collections
	write("bitvector", true, "bitvec_4_max", []byte{0x0f}, chunkOf(0x0f))
	write("bitvector", false, "bitvec_4_random_padding", []byte{0x1f}, [32]byte{})
	write("bitvector", false, "bitvec_0", nil, [32]byte{})
	write("bitlist", true, "bitlist_8_some", []byte{0x0d}, ssz.MixInLength(chunkOf(0x05), 3))
	write("bitlist", false, "bitlist_1_but_2", []byte{0x07}, [32]byte{})

	// Basic vectors
	write("basic_vector", true, "vec_uint16_3_max", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, chunkOf(0xff, 0xff, 0xff, 0xff, 0xff, 0xff))
	write("basic_vector", false, "vec_uint8_0", nil, [32]byte{})

	// Containers
	cp := &consensus.Checkpoint{Epoch: 3, Root: consensus.Hash{0xaa}}
	blob, err := ssz.MarshalSSZ(cp)
	if err != nil {
		t.Fatalf("failed to encode checkpoint: %v", err)
	}
	hash, err := ssz.HashSequential(cp)
	if err != nil {
		t.Fatalf("failed to hash checkpoint: %v", err)
	}
	write("ssz_static/Checkpoint", true, "case_0", blob, hash)
	write("ssz_static/Checkpoint", true, "case_bad_root", blob, [32]byte{0xde, 0xad})
	write("ssz_static/Checkpoint", false, "case_truncated", blob[:39], [32]byte{})

	return root
}

// Tests that a fixture run classifies every vector correctly.
func TestRunner(t *testing.T) {
	runner, err := NewRunner(Config{Root: writeFixtures(t), Parallelism: 3})
	if err != nil {
		t.Fatalf("failed to create runner: %v", err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("failed to run fixtures: %v", err)
	}
	if have, want := report.Passed(), 13; have != want {
		t.Errorf("passed count mismatch: have %d, want %d\n%v", have, want, report)
	}
	if have, want := report.Skipped(), 1; have != want {
		t.Errorf("skipped count mismatch: have %d, want %d", have, want)
	}
	failures := report.Failures()
	if len(failures) != 1 {
		t.Fatalf("failure count mismatch: have %d, want %d\n%v", len(failures), 1, report)
	}
	if f := failures[0]; f.Suite != "ssz_static/Checkpoint" || f.Case != "case_bad_root" || !f.Valid {
		t.Errorf("failure mismatch: have %v", f)
	}
	if !report.Failed() {
		t.Errorf("report with failures not marked failed")
	}
	if s := report.String(); !strings.Contains(s, "passed: 13, failed: 1, skipped: 1") || !strings.Contains(s, "case_bad_root") {
		t.Errorf("report rendering mismatch:\n%s", s)
	}
}

// Tests that only the requested suites are run and missing ones are ignored.
func TestRunnerSuiteFilter(t *testing.T) {
	runner, err := NewRunner(Config{
		Root:   writeFixtures(t),
		Suites: []string{"boolean", "ssz_static/Validator"},
	})
	if err != nil {
		t.Fatalf("failed to create runner: %v", err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("failed to run fixtures: %v", err)
	}
	if report.Passed() != 2 || report.Skipped() != 0 || report.Failed() {
		t.Errorf("filtered run mismatch: %v", report)
	}
}

// Tests that an interrupted run is reported as an error.
func TestRunnerCancel(t *testing.T) {
	runner, err := NewRunner(Config{Root: writeFixtures(t)})
	if err != nil {
		t.Fatalf("failed to create runner: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled run error mismatch: have %v, want %v", err, context.Canceled)
	}
}

// Tests that runners refuse to start without a fixture directory.
func TestRunnerConfig(t *testing.T) {
	if _, err := NewRunner(Config{}); !errors.Is(err, errNoRoot) {
		t.Errorf("missing root error mismatch: have %v, want %v", err, errNoRoot)
	}
	config, err := DefaultConfig.sanitize()
	if err != nil {
		t.Fatalf("failed to sanitize default config: %v", err)
	}
	if len(config.Suites) != len(Suites()) || config.Parallelism <= 0 || config.Logger == nil {
		t.Errorf("defaults not filled in: %+v", config)
	}
}

// Tests that case names resolve into handlers only if they are understood.
func TestResolve(t *testing.T) {
	tests := []struct {
		suite string
		name  string
		known bool
	}{
		{"uints", "uint_8_zero", true},
		{"uints", "uint_256_max", true},
		{"uints", "uint_7_max", false},
		{"uints", "int_8_max", false},
		{"boolean", "anything", true},
		{"bitvector", "bitvec_513_random", true},
		{"bitvector", "bitvec_x_random", false},
		{"bitlist", "bitlist_1_zero", true},
		{"basic_vector", "vec_uint128_16_random", true},
		{"basic_vector", "vec_int8_1_max", false},
		{"basic_vector", "vec_bool", false},
		{"ssz_static/Attestation", "case_0", true},
		{"ssz_static/SignedBeaconBlock", "case_0", false},
		{"containers", "SingleFieldTestStruct_random", false},
	}
	for _, tt := range tests {
		_, err := resolve(tt.suite, tt.name)
		if tt.known && err != nil {
			t.Errorf("%s/%s: failed to resolve: %v", tt.suite, tt.name, err)
		}
		if !tt.known && !errors.Is(err, errUnknownCase) {
			t.Errorf("%s/%s: error mismatch: have %v, want %v", tt.suite, tt.name, err, errUnknownCase)
		}
	}
}

// Tests that the handlers of the generic suites produce canonical encodings
// and the expected roots.
func TestHandlers(t *testing.T) {
	h, _ := resolve("basic_vector", "vec_uint64_5_random")

	blob := ssz.MarshalVector(nil, []uint64{1, 2, 3, 4, 5})
	enc, root, err := h(blob)
	if err != nil {
		t.Fatalf("failed to handle vector: %v", err)
	}
	if string(enc) != string(blob) {
		t.Errorf("vector re-encoding mismatch: have %x, want %x", enc, blob)
	}
	chunks, _ := ssz.Pack(blob, 8)
	if want, _ := ssz.Merkleize(chunks, 2); root != want {
		t.Errorf("vector root mismatch: have %x, want %x", root, want)
	}
	if _, _, err := h(blob[:32]); !errors.Is(err, ssz.ErrLengthMismatch) {
		t.Errorf("short vector error mismatch: have %v, want %v", err, ssz.ErrLengthMismatch)
	}
	h, _ = resolve("bitvector", "bitvec_0_random")
	if _, _, err := h(nil); !errors.Is(err, errIllegalType) {
		t.Errorf("empty bitvector error mismatch: have %v, want %v", err, errIllegalType)
	}
	// Empty bitlists hash as the zero root with zero length mixed in
	h, _ = resolve("bitlist", "bitlist_512_zero")
	if _, root, err = h([]byte{0x01}); err != nil {
		t.Fatalf("failed to handle empty bitlist: %v", err)
	}
	if want := ssz.MixInLength(ssz.ZeroHash(1), 0); root != want {
		t.Errorf("empty bitlist root mismatch: have %x, want %x", root, want)
	}
}

// Tests that the suite listing covers both the generic and record suites.
func TestSuites(t *testing.T) {
	suites := strings.Join(Suites(), ",")
	for _, want := range []string{"uints", "boolean", "bitvector", "bitlist", "basic_vector", "ssz_static/BeaconStateLite", "ssz_static/AggregateAndProof"} {
		if !strings.Contains(suites, want) {
			t.Errorf("suite %s missing from %s", want, suites)
		}
	}
}
