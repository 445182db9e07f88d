// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package consensus contains beacon chain records described via the ssz codec.
package consensus

import (
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sszkit/ssz"
)

// Worst case bounds of the collections within the records.
const (
	MaxValidatorsPerCommittee = 2048
	SlotsPerEpoch             = 32
	EpochsPerEth1VotingPeriod = 64
	EpochsPerSlashingsVector  = 8192
	JustificationBitsLength   = 4
	ValidatorRegistryLimit    = 1 << 40
	MaxExtraDataBytes         = 32
)

// Hash is a 32 byte root.
type Hash [32]byte

// Fork is the versioning information of the chain.
type Fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           uint64
}

func (f *Fork) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineStaticBytes(codec, f.PreviousVersion[:]) // Field (0) - PreviousVersion - 4 bytes
	ssz.DefineStaticBytes(codec, f.CurrentVersion[:])  // Field (1) - CurrentVersion  - 4 bytes
	ssz.DefineUint64(codec, &f.Epoch)                  // Field (2) - Epoch           - 8 bytes
}

// Checkpoint is an epoch boundary block reference.
type Checkpoint struct {
	Epoch uint64
	Root  Hash
}

func (c *Checkpoint) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint64(codec, &c.Epoch)       // Field (0) - Epoch -  8 bytes
	ssz.DefineStaticBytes(codec, c.Root[:]) // Field (1) - Root  - 32 bytes
}

// AttestationData is the vote of a validator.
type AttestationData struct {
	Slot            uint64
	Index           uint64
	BeaconBlockRoot Hash
	Source          *Checkpoint
	Target          *Checkpoint
}

func (a *AttestationData) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint64(codec, &a.Slot)                   // Field (0) - Slot            -  8 bytes
	ssz.DefineUint64(codec, &a.Index)                  // Field (1) - Index           -  8 bytes
	ssz.DefineStaticBytes(codec, a.BeaconBlockRoot[:]) // Field (2) - BeaconBlockRoot - 32 bytes
	ssz.DefineStaticObject(codec, &a.Source)           // Field (3) - Source          - 40 bytes
	ssz.DefineStaticObject(codec, &a.Target)           // Field (4) - Target          - 40 bytes
}

// Attestation is an aggregated vote of a committee.
type Attestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	Signature       [96]byte
}

func (a *Attestation) DefineSSZ(codec *ssz.Codec) {
	// Define the static data (fields and dynamic offsets)
	ssz.DefineBitlistOffset(codec, &a.AggregationBits, MaxValidatorsPerCommittee) // Offset (0) - AggregationBits -   4 bytes
	ssz.DefineStaticObject(codec, &a.Data)                                        // Field  (1) - Data            - 128 bytes
	ssz.DefineStaticBytes(codec, a.Signature[:])                                  // Field  (2) - Signature       -  96 bytes

	// Define the dynamic data (fields)
	ssz.DefineBitlistContent(codec, &a.AggregationBits, MaxValidatorsPerCommittee) // Field  (0) - AggregationBits - ? bytes
}

// IndexedAttestation is an attestation with the attesting validators listed
// by index.
type IndexedAttestation struct {
	AttestingIndices []uint64
	Data             *AttestationData
	Signature        [96]byte
}

func (a *IndexedAttestation) DefineSSZ(codec *ssz.Codec) {
	// Define the static data (fields and dynamic offsets)
	ssz.DefineListOffset(codec, &a.AttestingIndices, MaxValidatorsPerCommittee) // Offset (0) - AttestingIndices -   4 bytes
	ssz.DefineStaticObject(codec, &a.Data)                                      // Field  (1) - Data             - 128 bytes
	ssz.DefineStaticBytes(codec, a.Signature[:])                                // Field  (2) - Signature        -  96 bytes

	// Define the dynamic data (fields)
	ssz.DefineListContent(codec, &a.AttestingIndices, MaxValidatorsPerCommittee) // Field  (0) - AttestingIndices - ? bytes
}

// PendingAttestation is an attestation awaiting inclusion rewards.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	InclusionDelay  uint64
	ProposerIndex   uint64
}

func (a *PendingAttestation) DefineSSZ(codec *ssz.Codec) {
	// Define the static data (fields and dynamic offsets)
	ssz.DefineBitlistOffset(codec, &a.AggregationBits, MaxValidatorsPerCommittee) // Offset (0) - AggregationBits -   4 bytes
	ssz.DefineStaticObject(codec, &a.Data)                                        // Field  (1) - Data            - 128 bytes
	ssz.DefineUint64(codec, &a.InclusionDelay)                                    // Field  (2) - InclusionDelay  -   8 bytes
	ssz.DefineUint64(codec, &a.ProposerIndex)                                     // Field  (3) - ProposerIndex   -   8 bytes

	// Define the dynamic data (fields)
	ssz.DefineBitlistContent(codec, &a.AggregationBits, MaxValidatorsPerCommittee) // Field  (0) - AggregationBits - ? bytes
}

// AggregateAndProof is an aggregated attestation along with the proof of its
// aggregator having been selected.
type AggregateAndProof struct {
	AggregatorIndex uint64
	Aggregate       *Attestation
	SelectionProof  [96]byte
}

func (a *AggregateAndProof) DefineSSZ(codec *ssz.Codec) {
	// Define the static data (fields and dynamic offsets)
	ssz.DefineUint64(codec, &a.AggregatorIndex)        // Field  (0) - AggregatorIndex -  8 bytes
	ssz.DefineDynamicObjectOffset(codec, &a.Aggregate) // Offset (1) - Aggregate       -  4 bytes
	ssz.DefineStaticBytes(codec, a.SelectionProof[:])  // Field  (2) - SelectionProof  - 96 bytes

	// Define the dynamic data (fields)
	ssz.DefineDynamicObjectContent(codec, &a.Aggregate) // Field  (1) - Aggregate       - ? bytes
}

// BeaconBlockHeader is the header of a beacon block.
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    Hash
	StateRoot     Hash
	BodyRoot      Hash
}

func (h *BeaconBlockHeader) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint64(codec, &h.Slot)
	ssz.DefineUint64(codec, &h.ProposerIndex)
	ssz.DefineStaticBytes(codec, h.ParentRoot[:])
	ssz.DefineStaticBytes(codec, h.StateRoot[:])
	ssz.DefineStaticBytes(codec, h.BodyRoot[:])
}

// Eth1Data is a vote on the state of the deposit contract.
type Eth1Data struct {
	DepositRoot  Hash
	DepositCount uint64
	BlockHash    Hash
}

func (d *Eth1Data) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineStaticBytes(codec, d.DepositRoot[:])
	ssz.DefineUint64(codec, &d.DepositCount)
	ssz.DefineStaticBytes(codec, d.BlockHash[:])
}

// Validator is an entry of the validator registry.
type Validator struct {
	Pubkey                     [48]byte
	WithdrawalCredentials      Hash
	EffectiveBalance           uint64
	Slashed                    bool
	ActivationEligibilityEpoch uint64
	ActivationEpoch            uint64
	ExitEpoch                  uint64
	WithdrawableEpoch          uint64
}

func (v *Validator) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineStaticBytes(codec, v.Pubkey[:])
	ssz.DefineStaticBytes(codec, v.WithdrawalCredentials[:])
	ssz.DefineUint64(codec, &v.EffectiveBalance)
	ssz.DefineBool(codec, &v.Slashed)
	ssz.DefineUint64(codec, &v.ActivationEligibilityEpoch)
	ssz.DefineUint64(codec, &v.ActivationEpoch)
	ssz.DefineUint64(codec, &v.ExitEpoch)
	ssz.DefineUint64(codec, &v.WithdrawableEpoch)
}

// ExecutionPayloadHeader is the header of an execution layer block.
type ExecutionPayloadHeader struct {
	ParentHash       Hash
	FeeRecipient     [20]byte
	StateRoot        Hash
	ReceiptsRoot     Hash
	LogsBloom        [256]byte
	PrevRandao       Hash
	BlockNumber      uint64
	GasLimit         uint64
	GasUsed          uint64
	Timestamp        uint64
	ExtraData        []byte
	BaseFeePerGas    ssz.Uint256
	BlockHash        Hash
	TransactionsRoot Hash
}

func (h *ExecutionPayloadHeader) DefineSSZ(codec *ssz.Codec) {
	// Define the static data (fields and dynamic offsets)
	ssz.DefineStaticBytes(codec, h.ParentHash[:])                        // Field  ( 0) - ParentHash       -  32 bytes
	ssz.DefineStaticBytes(codec, h.FeeRecipient[:])                      // Field  ( 1) - FeeRecipient     -  20 bytes
	ssz.DefineStaticBytes(codec, h.StateRoot[:])                         // Field  ( 2) - StateRoot        -  32 bytes
	ssz.DefineStaticBytes(codec, h.ReceiptsRoot[:])                      // Field  ( 3) - ReceiptsRoot     -  32 bytes
	ssz.DefineStaticBytes(codec, h.LogsBloom[:])                         // Field  ( 4) - LogsBloom        - 256 bytes
	ssz.DefineStaticBytes(codec, h.PrevRandao[:])                        // Field  ( 5) - PrevRandao       -  32 bytes
	ssz.DefineUint64(codec, &h.BlockNumber)                              // Field  ( 6) - BlockNumber      -   8 bytes
	ssz.DefineUint64(codec, &h.GasLimit)                                 // Field  ( 7) - GasLimit         -   8 bytes
	ssz.DefineUint64(codec, &h.GasUsed)                                  // Field  ( 8) - GasUsed          -   8 bytes
	ssz.DefineUint64(codec, &h.Timestamp)                                // Field  ( 9) - Timestamp        -   8 bytes
	ssz.DefineDynamicBytesOffset(codec, &h.ExtraData, MaxExtraDataBytes) // Offset (10) - ExtraData        -   4 bytes
	ssz.DefineUint256(codec, &h.BaseFeePerGas)                           // Field  (11) - BaseFeePerGas    -  32 bytes
	ssz.DefineStaticBytes(codec, h.BlockHash[:])                         // Field  (12) - BlockHash        -  32 bytes
	ssz.DefineStaticBytes(codec, h.TransactionsRoot[:])                  // Field  (13) - TransactionsRoot -  32 bytes

	// Define the dynamic data (fields)
	ssz.DefineDynamicBytesContent(codec, &h.ExtraData, MaxExtraDataBytes) // Field  (10) - ExtraData        - ? bytes
}

// BeaconStateLite is the validator and finality related subset of the beacon
// state.
type BeaconStateLite struct {
	Slot                uint64
	Fork                *Fork
	LatestBlockHeader   *BeaconBlockHeader
	Eth1Data            *Eth1Data
	Eth1DataVotes       []*Eth1Data
	Validators          []*Validator
	Balances            []uint64
	Slashings           [EpochsPerSlashingsVector]uint64
	JustificationBits   [1]byte
	FinalizedCheckpoint *Checkpoint
}

func (s *BeaconStateLite) DefineSSZ(codec *ssz.Codec) {
	// Define the static data (fields and dynamic offsets)
	ssz.DefineUint64(codec, &s.Slot)                                                                       // Field  (0) - Slot                -     8 bytes
	ssz.DefineStaticObject(codec, &s.Fork)                                                                 // Field  (1) - Fork                -    16 bytes
	ssz.DefineStaticObject(codec, &s.LatestBlockHeader)                                                    // Field  (2) - LatestBlockHeader   -   112 bytes
	ssz.DefineStaticObject(codec, &s.Eth1Data)                                                             // Field  (3) - Eth1Data            -    72 bytes
	ssz.DefineSliceOfStaticObjectsOffset(codec, &s.Eth1DataVotes, EpochsPerEth1VotingPeriod*SlotsPerEpoch) // Offset (4) - Eth1DataVotes       -     4 bytes
	ssz.DefineSliceOfStaticObjectsOffset(codec, &s.Validators, ValidatorRegistryLimit)                     // Offset (5) - Validators          -     4 bytes
	ssz.DefineListOffset(codec, &s.Balances, ValidatorRegistryLimit)                                       // Offset (6) - Balances            -     4 bytes
	ssz.DefineVector(codec, s.Slashings[:])                                                                // Field  (7) - Slashings           - 65536 bytes
	ssz.DefineBitvector(codec, s.JustificationBits[:], JustificationBitsLength)                            // Field  (8) - JustificationBits   -     1 bytes
	ssz.DefineStaticObject(codec, &s.FinalizedCheckpoint)                                                  // Field  (9) - FinalizedCheckpoint -    40 bytes

	// Define the dynamic data (fields)
	ssz.DefineSliceOfStaticObjectsContent(codec, &s.Eth1DataVotes, EpochsPerEth1VotingPeriod*SlotsPerEpoch) // Field  (4) - Eth1DataVotes       - ? bytes
	ssz.DefineSliceOfStaticObjectsContent(codec, &s.Validators, ValidatorRegistryLimit)                     // Field  (5) - Validators          - ? bytes
	ssz.DefineListContent(codec, &s.Balances, ValidatorRegistryLimit)                                       // Field  (6) - Balances            - ? bytes
}
