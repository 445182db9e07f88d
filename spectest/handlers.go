// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package spectest

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sszkit/ssz"
	"github.com/sszkit/ssz/consensus"
)

// staticSuitePrefix is the suite name prefix of the consensus record tests.
const staticSuitePrefix = "ssz_static/"

var (
	// errUnknownCase is returned if a case name does not describe a type the
	// runner knows how to test.
	errUnknownCase = errors.New("spectest: unrecognized case")

	// errIllegalType is returned when decoding into a type that cannot exist,
	// such as a zero length vector.
	errIllegalType = errors.New("spectest: illegal type")
)

// handler decodes a serialized test vector and returns its canonical
// re-encoding and hash tree root.
type handler func(blob []byte) ([]byte, [32]byte, error)

// resolver picks the handler for a case based on the case name.
type resolver func(name string) (handler, error)

// genericSuites are the suites testing the basic types, keyed by folder name.
var genericSuites = map[string]resolver{
	"uints":        resolveUint,
	"boolean":      resolveBoolean,
	"bitvector":    resolveBitvector,
	"bitlist":      resolveBitlist,
	"basic_vector": resolveBasicVector,
}

// staticSuites are the consensus records testable via the ssz_static suites.
var staticSuites = map[string]func() ssz.Object{
	"AggregateAndProof":      func() ssz.Object { return new(consensus.AggregateAndProof) },
	"Attestation":            func() ssz.Object { return new(consensus.Attestation) },
	"AttestationData":        func() ssz.Object { return new(consensus.AttestationData) },
	"BeaconBlockHeader":      func() ssz.Object { return new(consensus.BeaconBlockHeader) },
	"BeaconStateLite":        func() ssz.Object { return new(consensus.BeaconStateLite) },
	"Checkpoint":             func() ssz.Object { return new(consensus.Checkpoint) },
	"Eth1Data":               func() ssz.Object { return new(consensus.Eth1Data) },
	"ExecutionPayloadHeader": func() ssz.Object { return new(consensus.ExecutionPayloadHeader) },
	"Fork":                   func() ssz.Object { return new(consensus.Fork) },
	"IndexedAttestation":     func() ssz.Object { return new(consensus.IndexedAttestation) },
	"PendingAttestation":     func() ssz.Object { return new(consensus.PendingAttestation) },
	"Validator":              func() ssz.Object { return new(consensus.Validator) },
}

// Suites returns the names of all the suites the runner knows about.
func Suites() []string {
	suites := make([]string, 0, len(genericSuites)+len(staticSuites))
	for suite := range genericSuites {
		suites = append(suites, suite)
	}
	for kind := range staticSuites {
		suites = append(suites, staticSuitePrefix+kind)
	}
	sort.Strings(suites)
	return suites
}

// resolve picks the handler for a case of a suite.
func resolve(suite string, name string) (handler, error) {
	if resolver, ok := genericSuites[suite]; ok {
		return resolver(name)
	}
	if kind, ok := strings.CutPrefix(suite, staticSuitePrefix); ok {
		if blank, ok := staticSuites[kind]; ok {
			return staticHandler(blank), nil
		}
	}
	return nil, fmt.Errorf("%w: suite %s", errUnknownCase, suite)
}

// staticHandler tests a consensus record through the container codec.
func staticHandler(blank func() ssz.Object) handler {
	return func(blob []byte) ([]byte, [32]byte, error) {
		obj := blank()
		if err := ssz.DecodeFromBytes(blob, obj); err != nil {
			return nil, [32]byte{}, err
		}
		enc, err := ssz.MarshalSSZ(obj)
		if err != nil {
			return nil, [32]byte{}, err
		}
		root, err := ssz.HashSequential(obj)
		if err != nil {
			return nil, [32]byte{}, err
		}
		return enc, root, nil
	}
}

// caseParam extracts the numeric parameter at the given position of an
// underscore separated case name, e.g. the 16 out of uint_16_max.
func caseParam(name string, prefix string, pos int) (uint64, error) {
	parts := strings.Split(name, "_")
	if len(parts) <= pos || parts[0] != prefix {
		return 0, fmt.Errorf("%w: %s", errUnknownCase, name)
	}
	n, err := strconv.ParseUint(parts[pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errUnknownCase, name)
	}
	return n, nil
}

// illegal returns a handler rejecting everything, standing in for types that
// cannot be constructed.
func illegal(format string, args ...any) handler {
	err := fmt.Errorf("%w: %s", errIllegalType, fmt.Sprintf(format, args...))
	return func([]byte) ([]byte, [32]byte, error) {
		return nil, [32]byte{}, err
	}
}

// chunkRoot merkleizes an encoding of a basic value or vector.
func chunkRoot(enc []byte, stride int, limit uint64) ([32]byte, error) {
	chunks, err := ssz.Pack(enc, stride)
	if err != nil {
		return [32]byte{}, err
	}
	return ssz.Merkleize(chunks, limit)
}

func resolveUint(name string) (handler, error) {
	bits, err := caseParam(name, "uint", 1)
	if err != nil {
		return nil, err
	}
	switch bits {
	case 8:
		return basicHandler(ssz.UnmarshalUint8, ssz.MarshalUint8), nil
	case 16:
		return basicHandler(ssz.UnmarshalUint16, ssz.MarshalUint16), nil
	case 32:
		return basicHandler(ssz.UnmarshalUint32, ssz.MarshalUint32), nil
	case 64:
		return basicHandler(ssz.UnmarshalUint64, ssz.MarshalUint64), nil
	case 128:
		return basicHandler(ssz.UnmarshalUint128, ssz.MarshalUint128), nil
	case 256:
		return basicHandler(ssz.UnmarshalUint256, ssz.MarshalUint256), nil
	}
	return nil, fmt.Errorf("%w: %d bit uint", errUnknownCase, bits)
}

func resolveBoolean(string) (handler, error) {
	return basicHandler(ssz.UnmarshalBool, ssz.MarshalBool), nil
}

// basicHandler tests a single basic value through its scalar codec.
func basicHandler[T any](decode func([]byte) (T, error), encode func([]byte, T) []byte) handler {
	return func(blob []byte) ([]byte, [32]byte, error) {
		v, err := decode(blob)
		if err != nil {
			return nil, [32]byte{}, err
		}
		enc := encode(nil, v)
		root, err := chunkRoot(enc, len(enc), 0)
		return enc, root, err
	}
}

func resolveBitvector(name string) (handler, error) {
	size, err := caseParam(name, "bitvec", 1)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return illegal("zero length bitvector"), nil
	}
	return func(blob []byte) ([]byte, [32]byte, error) {
		bits, err := ssz.UnmarshalBitvector(blob, size)
		if err != nil {
			return nil, [32]byte{}, err
		}
		enc := ssz.MarshalBitvector(nil, bits)
		root, err := chunkRoot(enc, 1, (size+255)/256)
		return enc, root, err
	}, nil
}

func resolveBitlist(name string) (handler, error) {
	limit, err := caseParam(name, "bitlist", 1)
	if err != nil {
		return nil, err
	}
	return func(blob []byte) ([]byte, [32]byte, error) {
		bits, err := ssz.UnmarshalBitlist(blob, limit)
		if err != nil {
			return nil, [32]byte{}, err
		}
		root, err := chunkRoot(ssz.MarshalBitvector(nil, bits), 1, (limit+255)/256)
		if err != nil {
			return nil, [32]byte{}, err
		}
		return ssz.MarshalBitlist(nil, bits), ssz.MixInLength(root, uint64(len(bits))), nil
	}, nil
}

func resolveBasicVector(name string) (handler, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %s", errUnknownCase, name)
	}
	size, err := caseParam(name, "vec", 2)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return illegal("zero length vector"), nil
	}
	switch parts[1] {
	case "bool":
		return vectorHandler[bool](size), nil
	case "uint8":
		return vectorHandler[uint8](size), nil
	case "uint16":
		return vectorHandler[uint16](size), nil
	case "uint32":
		return vectorHandler[uint32](size), nil
	case "uint64":
		return vectorHandler[uint64](size), nil
	case "uint128":
		return vectorHandler[ssz.Uint128](size), nil
	case "uint256":
		return vectorHandler[ssz.Uint256](size), nil
	}
	return nil, fmt.Errorf("%w: %s vector", errUnknownCase, parts[1])
}

// vectorHandler tests a vector of basic items through the collection codec.
func vectorHandler[T ssz.Basic](size uint64) handler {
	return func(blob []byte) ([]byte, [32]byte, error) {
		items, err := ssz.UnmarshalVector[T](blob, size)
		if err != nil {
			return nil, [32]byte{}, err
		}
		stride := ssz.SizeOf[T]()
		enc := ssz.MarshalVector(nil, items)
		root, err := chunkRoot(enc, stride, (size*uint64(stride)+31)/32)
		return enc, root, err
	}
}
