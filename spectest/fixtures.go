// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package spectest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

// WriteCase stores a test vector in the layout the runner expects. The root is
// only written for valid vectors.
func WriteCase(root string, suite string, valid bool, name string, blob []byte, hash [32]byte) error {
	kind := "invalid"
	if valid {
		kind = "valid"
	}
	dir := filepath.Join(root, filepath.FromSlash(suite), kind, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, serializedFile), snappy.Encode(nil, blob), 0o644); err != nil {
		return err
	}
	if !valid {
		return nil
	}
	raw, err := yaml.Marshal(meta{Root: fmt.Sprintf("%#x", hash)})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, metaFile), raw, 0o644)
}
