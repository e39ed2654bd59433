// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunOptimizesAndReportsCounts(t *testing.T) {
	out := new(bytes.Buffer)
	if err := run(out, "testdata/mul2.pasm"); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	want := "testdata/mul2.pasm: 4 -> 4 instructions"
	if !strings.Contains(got, want) {
		t.Fatalf("output = %q, want it to contain %q", got, want)
	}
}

func TestRunPrintsOptimizedListing(t *testing.T) {
	*flagPrint = true
	defer func() { *flagPrint = false }()

	out := new(bytes.Buffer)
	if err := run(out, "testdata/mul2.pasm"); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, line := range []string{"load_int 0", "dup", "add", "ireturn"} {
		if !strings.Contains(got, line) {
			t.Errorf("output %q does not contain %q", got, line)
		}
	}
	if strings.Contains(got, "\nmul\n") {
		t.Errorf("output %q still contains the unoptimized mul", got)
	}
}

func TestRunMissingFile(t *testing.T) {
	out := new(bytes.Buffer)
	if err := run(out, "testdata/does-not-exist.pasm"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
