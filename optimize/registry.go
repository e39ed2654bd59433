// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimize implements the peephole rewrite driver and the rule
// catalog that runs under it: each Rule matches a small window of
// instructions at a cursor position and, on match, rewrites the window
// in place and reports progress.
package optimize

import "github.com/go-interpreter/peephole/code"

// Matcher inspects the window beginning at *cur and, if it matches,
// performs a rewrite via the cursor's Stream and reports true. cur is a
// pointer to the slot holding the window's first node (either
// &Stream.Head or &(predecessor.Next)), mirroring code.Stream.Replace's
// cursor convention. A Matcher that does not match must leave the
// stream untouched and return false.
type Matcher func(s *code.Stream, cur **code.Instr) bool

// Rule is a named, registered peephole rewrite.
type Rule struct {
	Name  string
	Match Matcher
}

// Registry is an ordered collection of rules, applied in registration
// order at every cursor position. Registration order is the only source
// of determinism when more than one rule could fire at a given position
// (spec.md §5): two registries built with the same Options produce
// byte-for-byte identical rewrite sequences.
type Registry struct {
	rules []Rule
}

// Options configures which optional rules a Registry includes.
type Options struct {
	// EnableRiskyFactoring registers factor_instruction_risky and
	// factor_instruction2_risky, which additionally treat getfield/
	// putfield/invokevirtual as mergeable across a control-flow merge.
	// Per spec.md §9 these are unsound against stack-type verification
	// in the general case and so ship disabled by default.
	EnableRiskyFactoring bool
}

// Register appends a named rule to the registry.
func (r *Registry) Register(name string, m Matcher) {
	r.rules = append(r.rules, Rule{Name: name, Match: m})
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule { return r.rules }

// NewRegistry builds the default rule catalog in the exact order
// required by spec.md §6, so that two runs against equal input streams
// produce byte-for-byte identical output.
func NewRegistry(opts Options) *Registry {
	r := &Registry{}

	r.Register("constant_fold", constantFold)
	r.Register("goto_return", gotoReturn)
	r.Register("invert_comparison", invertAndEliminate)
	r.Register("simplify_dup_xxx_pop", simplifyDupXXXPop)
	r.Register("simplify_member_store", simplifyMemberStore)
	r.Register("simplify_astore_aload", simplifyAstoreAload)
	r.Register("simplify_istore_iload", simplifyIstoreIload)
	r.Register("simplify_multiplication_right", simplifyMultiplicationRight)
	r.Register("positive_increment", positiveIncrement)
	r.Register("simplify_iconst_0_goto_ifeq", simplifyIconst0GotoIfeq)
	r.Register("simplify_goto_goto", simplifyGotoGoto)
	r.Register("remove_iconst_ifeq", removeIconstIfeq)
	r.Register("remove_dead_label", removeDeadLabel)
	r.Register("fuse_labels", fuseLabels)
	r.Register("remove_instruction_after_goto", removeInstructionAfterGoto)
	r.Register("remove_instruction_after_return", removeInstructionAfterReturn)
	r.Register("simplify_icmp_0", simplifyIcmp0)
	r.Register("simplify_acmp_null", simplifyAcmpNull)
	r.Register("basic_unswap", basicUnswap)
	r.Register("dup_pop", dupPop)
	r.Register("simplify_ldc_string_ifnonnull", simplifyLdcStringIfnonnull)
	r.Register("remove_unnecessary_goto", removeUnnecessaryGoto)
	r.Register("simplify_concat_string_ifnonnull", simplifyConcatStringIfnonnull)
	r.Register("remove_dead_store", removeDeadStore)
	r.Register("basic_expression_pop", basicExpressionPop)
	r.Register("simplify_dup_ifeq_ifeq", simplifyDupIfeqIfeq)
	r.Register("simplify_dup_ifeq_ifne", simplifyDupIfeqIfne)
	r.Register("simplify_iconst_goto_ifeq", simplifyIconstGotoIfeq)
	r.Register("simplify_iconst_0_goto_dup_ifeq", simplifyIconst0GotoDupIfeq)
	r.Register("simplify_iconst_1_dup_ifeq_pop", simplifyIconstNonzeroDupIfeqPop)
	r.Register("negative_increment", negativeIncrement)
	r.Register("simplify_aload_astore", simplifyAloadAstore)
	r.Register("simplify_iload_istore", simplifyIloadIstore)
	r.Register("factor_instruction", factorInstructionBeforeGoto(false))
	r.Register("factor_instruction2", factorInstructionBeforeLabel(false))
	// factor_instruction_risky/factor_instruction2_risky stay in their
	// fixed registration-order slots (spec.md §6) regardless of Options,
	// so that registration order never depends on configuration; the
	// risky matchers themselves refuse to match unless
	// opts.EnableRiskyFactoring is set (spec.md §9's resolved open
	// question: ship disabled by default, behind a flag).
	r.Register("factor_instruction_risky", riskyFactorInstructionBeforeGoto(opts))
	r.Register("factor_instruction2_risky", riskyFactorInstructionBeforeLabel(opts))
	r.Register("remove_nop", removeNop)

	return r
}
