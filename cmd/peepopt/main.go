// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command peepopt reads a .pasm instruction listing, runs the peephole
// optimizer over it to a fixed point, and reports the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/go-interpreter/peephole/asmtext"
	"github.com/go-interpreter/peephole/code"
	"github.com/go-interpreter/peephole/optimize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: peepopt [options] file.pasm

ex:
 $> peepopt -print ./method.pasm

options:
`,
		)
		flag.PrintDefaults()
		os.Exit(1)
	}
}

var (
	flagVerbose = flag.Bool("v", false, "enable debug logging of each rewrite")
	flagPrint   = flag.Bool("print", false, "print the optimized listing")
	flagRisky   = flag.Bool("risky-factoring", false, "enable common-tail factoring across getfield/putfield/invokevirtual")
)

func main() {
	flag.Parse()

	if !*flagVerbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if flag.NArg() != 1 {
		flag.Usage()
	}

	if err := run(os.Stdout, flag.Arg(0)); err != nil {
		log.Fatal().Err(err).Msg("peepopt")
	}
}

// run optimizes the listing at fname and reports the outcome to out. It
// takes the output writer as a parameter (rather than writing to
// os.Stdout directly) so tests can capture it.
func run(out io.Writer, fname string) error {
	src, err := ioutil.ReadFile(fname)
	if err != nil {
		return errors.Wrapf(err, "peepopt: could not read %q", fname)
	}

	stream, err := asmtext.Parse(src)
	if err != nil {
		return errors.Wrapf(err, "peepopt: could not parse %q", fname)
	}
	before := countInstrs(stream)

	reg := optimize.NewRegistry(optimize.Options{EnableRiskyFactoring: *flagRisky})
	stats, err := optimize.Optimize(stream, reg)
	if err != nil {
		return errors.Wrapf(err, "peepopt: optimizing %q", fname)
	}
	after := countInstrs(stream)

	fmt.Fprintf(out, "%s: %d -> %d instructions (passes=%d edits=%d modified=%d)\n",
		fname, before, after, stats.Passes, stats.Edits, stats.ModifiedEdits)

	if *flagPrint {
		if err := asmtext.Write(out, stream); err != nil {
			return errors.Wrap(err, "peepopt: writing result")
		}
	}
	return nil
}

func countInstrs(s *code.Stream) int {
	n := 0
	for i := s.Head; i != nil; i = i.Next {
		n++
	}
	return n
}
