// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"slices"
	"testing"
)

func TestSplitSuites(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{"", nil},
		{"uints", []string{"uints"}},
		{"uints, boolean,,ssz_static/Fork ", []string{"uints", "boolean", "ssz_static/Fork"}},
		{" , ", nil},
	}
	for _, tt := range tests {
		if have := splitSuites(tt.filter); !slices.Equal(have, tt.want) {
			t.Errorf("filter %q: suites mismatch: have %v, want %v", tt.filter, have, tt.want)
		}
	}
}
