// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"github.com/go-interpreter/peephole/code"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// maxPasses bounds the number of full sweeps Optimize will attempt
// before giving up and returning an error. Every rule in the catalog is
// designed (spec.md §4.2) to lexicographically reduce a well-founded,
// non-negative cost tuple, so a real implementation converges long
// before this is reached; it exists only to turn a latent non-
// terminating rule bug into a returned error instead of a hang.
const maxPasses = 100000

// Stats reports how many scans from the head Optimize made (one more
// than the number of restarts) and how many counted/uncounted edits
// (code.Stream.Edits/ModifiedEdits) were applied in total.
type Stats struct {
	Passes        int
	Edits         int
	ModifiedEdits int
}

// Optimize applies reg's rules to stream until a complete sweep from
// head to tail finds no rule that fires, per spec.md §4.2: at each
// position it tries every registered rule in registration order, and
// restarts scanning from the head whenever a rule reports progress
// (replacements can change predecessor links and re-enable earlier
// rules). It returns once a full sweep finds nothing to do.
func Optimize(stream *code.Stream, reg *Registry) (Stats, error) {
	var stats Stats
	rules := reg.Rules()

	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			return stats, errors.Errorf("optimize: exceeded %d passes without converging", maxPasses)
		}
		stats.Passes++

		progressed, err := sweep(stream, rules)
		if err != nil {
			return stats, errors.Wrap(err, "optimize")
		}
		if !progressed {
			stats.Edits = stream.Edits()
			stats.ModifiedEdits = stream.ModifiedEdits()
			return stats, nil
		}
	}
}

// sweep performs one left-to-right scan from the head and stops at the
// first rule that fires (its replacement may have rewritten the very
// position the scan is sitting on, or an earlier one, so Optimize
// restarts from the head). It returns whether any rule fired.
func sweep(stream *code.Stream, rules []Rule) (bool, error) {
	for cur := &stream.Head; *cur != nil; cur = &(*cur).Next {
		for _, rule := range rules {
			if rule.Match(stream, cur) {
				log.Debug().Str("rule", rule.Name).Msg("rewrite fired")
				return true, nil
			}
		}
	}
	return false, nil
}
