// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"fmt"
	"strings"
)

// TreeNode represents a node in a materialized Merkle tree. Leaves have no
// children; all-zero subtrees are shared between every position they occur at.
type TreeNode struct {
	Hash  [32]byte
	Left  *TreeNode
	Right *TreeNode
}

// IsLeaf reports whether the node is at the bottom of the tree.
func (n *TreeNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is a fully materialized Merkle tree over a chunk sequence, sized the
// same way Merkleize does.
type Tree struct {
	root  *TreeNode
	depth int
}

// NewTree builds the Merkle tree of the chunks, padded with virtual zero
// subtrees up to the next power of two of the limit (or of the chunk count if
// the limit is zero).
func NewTree(chunks []byte, limit uint64) (*Tree, error) {
	if len(chunks)%BytesPerChunk != 0 {
		return nil, fmt.Errorf("%w: %d bytes, chunk size %d", ErrStrideMismatch, len(chunks), BytesPerChunk)
	}
	count := uint64(len(chunks) / BytesPerChunk)
	if limit == 0 {
		limit = count
	} else if count > limit {
		return nil, fmt.Errorf("%w: %d chunks, limit %d", ErrLimitExceeded, count, limit)
	}
	depth := treeDepth(limit)

	zeroes := make([]*TreeNode, depth+1)
	zeroes[0] = &TreeNode{}
	for i := 1; i <= depth; i++ {
		zeroes[i] = &TreeNode{Hash: zeroHashes[i], Left: zeroes[i-1], Right: zeroes[i-1]}
	}
	if count == 0 {
		return &Tree{root: zeroes[depth], depth: depth}, nil
	}
	layer := make([]*TreeNode, count)
	for i := range layer {
		layer[i] = new(TreeNode)
		copy(layer[i].Hash[:], chunks[i*BytesPerChunk:])
	}
	for i := 0; i < depth; i++ {
		if len(layer)&1 == 1 {
			layer = append(layer, zeroes[i])
		}
		next := make([]*TreeNode, len(layer)/2)
		for j := range next {
			left, right := layer[2*j], layer[2*j+1]
			next[j] = &TreeNode{Hash: hashPair(left.Hash, right.Hash), Left: left, Right: right}
		}
		layer = next
	}
	return &Tree{root: layer[0], depth: depth}, nil
}

// Root returns the Merkle root of the tree.
func (t *Tree) Root() [32]byte {
	return t.root.Hash
}

// Depth returns the number of layers between the leaves and the root.
func (t *Tree) Depth() int {
	return t.depth
}

// Branch returns the Merkle proof of the leaf at index: the sibling hashes
// along the path from the leaf up to the root, bottom first.
func (t *Tree) Branch(index uint64) ([][32]byte, error) {
	if t.depth < 64 && index >= 1<<t.depth {
		return nil, fmt.Errorf("%w: leaf %d of %d", ErrIndexOutOfRange, index, uint64(1)<<t.depth)
	}
	branch := make([][32]byte, t.depth)

	node := t.root
	for level := t.depth - 1; level >= 0; level-- {
		if (index>>level)&1 == 1 {
			branch[level] = node.Left.Hash
			node = node.Right
		} else {
			branch[level] = node.Right.Hash
			node = node.Left
		}
	}
	return branch, nil
}

// VerifyBranch checks that a leaf at the given index is part of the tree with
// the given root, as proven by the branch.
func VerifyBranch(leaf [32]byte, branch [][32]byte, index uint64, root [32]byte) bool {
	node := leaf
	for i, sibling := range branch {
		if (index>>i)&1 == 1 {
			node = hashPair(sibling, node)
		} else {
			node = hashPair(node, sibling)
		}
	}
	return node == root
}

// String renders the tree, one node per line, indented by depth. Shared zero
// subtrees are printed only as their root.
func (t *Tree) String() string {
	var b strings.Builder
	printNode(&b, t.root, 0)
	return b.String()
}

func printNode(b *strings.Builder, node *TreeNode, level int) {
	fmt.Fprintf(b, "%s%x\n", strings.Repeat("  ", level), node.Hash)
	if node.IsLeaf() || (level > 0 && node.Hash == zeroHashes[node.height()]) {
		return
	}
	printNode(b, node.Left, level+1)
	printNode(b, node.Right, level+1)
}

// height returns the distance of the node from the leaf layer.
func (n *TreeNode) height() int {
	h := 0
	for !n.IsLeaf() {
		n, h = n.Left, h+1
	}
	return h
}
