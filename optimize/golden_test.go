// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize_test

import (
	"testing"

	"github.com/go-interpreter/peephole/asmtext"
	"github.com/go-interpreter/peephole/optimize"
)

// runOptimize parses src, optimizes it to a fixed point with the default
// registry, and returns the textual result.
func runOptimize(t *testing.T, src string) string {
	t.Helper()
	stream, err := asmtext.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if _, err := optimize.Optimize(stream, optimize.NewRegistry(optimize.Options{})); err != nil {
		t.Fatalf("Optimize(%q): %v", src, err)
	}
	return asmtext.String(stream)
}

// These start from spec.md §8's "concrete scenarios", each ending in a
// return. The expected text is the full fixed point of the default
// registry, so remove_dead_store also deletes a store or inc whose slot
// is never read again before the return.
func TestGoldenScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "multiply by 0",
			src:  "load_int 1\npush_int 0\nmul\nstore_int 2\nreturn\n",
			want: "return\n",
		},
		{
			name: "multiply by 2",
			src:  "load_int 1\npush_int 2\nmul\nireturn\n",
			want: "load_int 1\ndup\nadd\nireturn\n",
		},
		{
			name: "positive inc",
			src:  "load_int 3\npush_int 5\nadd\nstore_int 3\nreturn\n",
			want: "return\n",
		},
		{
			name: "goto to return",
			src:  "goto L0\nL0:\nreturn\n",
			want: "return\n",
		},
		{
			name: "dead store",
			src:  "store_int 4\nreturn\n",
			want: "pop\nreturn\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runOptimize(t, tt.src)
			if got != tt.want {
				t.Fatalf("optimize(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

// TestInverseBranch covers spec.md §8's inverse-branch scenario: the
// inverted branch was L1's only reference (the fall-through into the
// label node is not a reference), so L1 is removed as dead; L2 is still
// targeted by the new ifnonzero and stays.
func TestInverseBranch(t *testing.T) {
	src := "ifzero L1\ngoto L2\nL1:\nload_int 0\nL2:\nreturn\n"
	got := runOptimize(t, src)
	want := "ifnonzero L2\nload_int 0\nL2:\nreturn\n"
	if got != want {
		t.Fatalf("optimize(%q) = %q, want %q", src, got, want)
	}
}

// TestOptimizeIsIdempotent covers spec.md §8 property 2: running the
// optimizer again over its own output makes no further change.
func TestOptimizeIsIdempotent(t *testing.T) {
	srcs := []string{
		"load_int 1\npush_int 0\nmul\nstore_int 2\nreturn\n",
		"load_int 3\npush_int 5\nadd\nstore_int 3\nreturn\n",
		"ifzero L1\ngoto L2\nL1:\nload_int 0\nL2:\nreturn\n",
		"store_int 4\nreturn\n",
	}
	for _, src := range srcs {
		once := runOptimize(t, src)
		twice := runOptimize(t, once)
		if once != twice {
			t.Errorf("not idempotent: optimize(%q) = %q, optimize(that) = %q", src, once, twice)
		}
	}
}
