// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package code

// labelEntry is a label registry entry: the node carrying the label
// definition and the exact number of instructions in the stream that
// currently target it. This is the Go analog of the
// `map[int]*block{offset, patchOffsets}` bookkeeping that
// exec/internal/compile.Compile keeps while lowering structured control
// flow to absolute jumps — there, a block's continuation offset and its
// pending patch sites; here, a label's defining node and its live
// reference count.
type labelEntry struct {
	node  *Instr
	count int
}

// Stream is the mutable instruction-stream representation that the
// rewrite rules operate on: a singly-linked sequence of Instr nodes with
// a single entry at the head, plus the label registry. Stream owns every
// instruction node reachable from Head and every label registry entry.
type Stream struct {
	Head *Instr

	labels  map[LabelID]*labelEntry
	nextLbl LabelID

	edits         int // Replace calls (counted for convergence accounting)
	modifiedEdits int // ReplaceModified calls (not counted)
}

// NewStream adopts an externally produced instruction chain (as handed
// over by the code generator) and builds its label registry by walking
// the chain once to find label definitions and once more to count
// references. It is the boundary at which the optimizer takes ownership
// of a stream.
func NewStream(head *Instr) *Stream {
	s := &Stream{Head: head, labels: make(map[LabelID]*labelEntry), nextLbl: 1}
	for n := head; n != nil; n = n.Next {
		if n.Kind == Label {
			s.labels[n.Lbl] = &labelEntry{node: n}
			if n.Lbl >= s.nextLbl {
				s.nextLbl = n.Lbl + 1
			}
		}
	}
	for n := head; n != nil; n = n.Next {
		if IsLabelUsing(n.Kind) {
			if e, ok := s.labels[n.Lbl]; ok {
				e.count++
			}
		}
	}
	return s
}

// Next returns the successor of p, or nil at end-of-stream.
func Next(p *Instr) *Instr {
	if p == nil {
		return nil
	}
	return p.Next
}

// Destination returns the label node bearing identifier l. It fails
// with MissingLabelError if l is not registered — per spec.md §7 a
// fatal internal error, since every label identifier appearing as a
// jump target must appear exactly once as a label node in the stream.
func (s *Stream) Destination(l LabelID) (*Instr, error) {
	e, ok := s.labels[l]
	if !ok {
		return nil, MissingLabelError(l)
	}
	return e.node, nil
}

// RefCount returns the current reference count for label l, or -1 if l
// is not registered.
func (s *Stream) RefCount(l LabelID) int {
	e, ok := s.labels[l]
	if !ok {
		return -1
	}
	return e.count
}

// DropLabel decrements the reference count of l. It fails with
// NegativeRefCountError if the count would go below zero — a rule
// dropped a reference the registry never counted.
func (s *Stream) DropLabel(l LabelID) error {
	e, ok := s.labels[l]
	if !ok {
		return MissingLabelError(l)
	}
	if e.count == 0 {
		return NegativeRefCountError(l)
	}
	e.count--
	return nil
}

// CopyLabel increments the reference count of l.
func (s *Stream) CopyLabel(l LabelID) error {
	e, ok := s.labels[l]
	if !ok {
		return MissingLabelError(l)
	}
	e.count++
	return nil
}

// NextLabel allocates a fresh, unused label identifier.
func (s *Stream) NextLabel() LabelID {
	l := s.nextLbl
	s.nextLbl++
	return l
}

// InsertNewLabel registers node (which must be a Label-kind node
// carrying identifier l) as the defining node for l, with initial
// reference count equal to count — used by rules that splice a fresh
// label into the middle of the stream (the fresh-label variants of the
// control-flow rules, and both factoring rules), whose initial count is
// the number of jumps that will target it (usually 1).
func (s *Stream) InsertNewLabel(l LabelID, node *Instr, count int) {
	s.labels[l] = &labelEntry{node: node, count: count}
}

// SetLabel retargets a label-using instruction to identifier l without
// touching any reference count; callers must pair each call with the
// appropriate DropLabel/CopyLabel. For any node kind that is not
// label-using this is a no-op that returns false.
//
// The reference JOOSA implementation's set_label switches on the node's
// kind and falls through from the goto case into the ifeq case (a
// missing break) — spec.md §9 resolves this as a bug: here only the
// matched kind's own operand is set.
func SetLabel(n *Instr, l LabelID) bool {
	if n == nil || !IsLabelUsing(n.Kind) {
		return false
	}
	n.Lbl = l
	return true
}

// Replace deletes the n consecutive nodes starting at *cur and splices
// the chain rooted at newHead in their place, preserving the
// predecessor's link to the position denoted by cur. cur is a pointer to
// the slot that references the window's first node — either &Stream.Head
// or &(predecessor.Next) — so that Replace can repoint that slot without
// the caller needing to track the predecessor explicitly (this is the
// Go analog of JOOSA's `CODE **c` cursor convention). If newHead is nil,
// the deletion alone is legal and leaves the slot pointing at the old
// successor.
//
// Callers guarantee that no live label points at any of the n deleted
// nodes, except a Label node being deleted by the dead-label rule
// itself (whose reference count must already be zero) — Replace drops
// the registry entry for any Label node it removes.
//
// Replace always succeeds; a rule that cannot match a window must
// report "no rewrite" before ever calling Replace.
func (s *Stream) Replace(cur **Instr, n int, newHead *Instr) bool {
	s.splice(cur, n, newHead)
	s.edits++
	return true
}

// ReplaceModified has the same splicing semantics as Replace, but the
// edit is not counted toward convergence accounting (Stream.Edits) —
// used by rules whose rewrite is better understood as an in-place
// retarget (e.g. goto-chasing, which only rewrites a label operand and
// adjusts reference counts) than as a textbook window replacement.
func (s *Stream) ReplaceModified(cur **Instr, n int, newHead *Instr) bool {
	s.splice(cur, n, newHead)
	s.modifiedEdits++
	return true
}

func (s *Stream) splice(cur **Instr, n int, newHead *Instr) {
	node := *cur
	for i := 0; i < n && node != nil; i++ {
		if node.Kind == Label {
			delete(s.labels, node.Lbl)
		}
		node = node.Next
	}
	if newHead == nil {
		*cur = node
		return
	}
	*cur = newHead
	tail := newHead
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = node
}

// Edits returns the number of Replace calls applied to this stream so
// far (the edits that count toward the lexicographic-metric convergence
// argument of spec.md §4.2).
func (s *Stream) Edits() int { return s.edits }

// ModifiedEdits returns the number of ReplaceModified calls applied to
// this stream so far.
func (s *Stream) ModifiedEdits() int { return s.modifiedEdits }

// Labels returns the set of label identifiers currently registered,
// for use by tests asserting invariant 1 of spec.md §8 (registry counts
// equal actual in-stream reference counts).
func (s *Stream) Labels() []LabelID {
	ids := make([]LabelID, 0, len(s.labels))
	for l := range s.labels {
		ids = append(ids, l)
	}
	return ids
}
