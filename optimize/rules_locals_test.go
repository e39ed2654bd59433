// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"testing"

	"github.com/go-interpreter/peephole/code"
)

func TestSimplifyIstoreIload(t *testing.T) {
	s := code.NewStream(code.NewStoreInt(2, code.NewLoadInt(2, code.NewSimple(code.ReturnVoid, nil))))
	if !simplifyIstoreIload(s, &s.Head) {
		t.Fatalf("simplifyIstoreIload did not match")
	}
	if !code.IsDup(s.Head) {
		t.Fatalf("head = %+v, want dup", s.Head)
	}
	if x, ok := code.IsStoreInt(s.Head.Next); !ok || x != 2 {
		t.Fatalf("head.Next = %+v, want store_int 2", s.Head.Next)
	}
}

func TestSimplifyIstoreIloadRejectsDifferentSlots(t *testing.T) {
	s := code.NewStream(code.NewStoreInt(2, code.NewLoadInt(3, nil)))
	if simplifyIstoreIload(s, &s.Head) {
		t.Fatalf("simplifyIstoreIload should not match different slots")
	}
}

func TestSimplifyAstoreAload(t *testing.T) {
	s := code.NewStream(code.NewStoreRef(1, code.NewLoadRef(1, nil)))
	if !simplifyAstoreAload(s, &s.Head) {
		t.Fatalf("simplifyAstoreAload did not match")
	}
	if !code.IsDup(s.Head) {
		t.Fatalf("head = %+v, want dup", s.Head)
	}
}

func TestSimplifyIloadIstore(t *testing.T) {
	s := code.NewStream(code.NewLoadInt(2, code.NewStoreInt(2, code.NewSimple(code.ReturnVoid, nil))))
	if !simplifyIloadIstore(s, &s.Head) {
		t.Fatalf("simplifyIloadIstore did not match")
	}
	if s.Head.Kind != code.ReturnVoid {
		t.Fatalf("head = %+v, want the load/store pair removed entirely", s.Head)
	}
}

func TestSimplifyAloadAstore(t *testing.T) {
	s := code.NewStream(code.NewLoadRef(1, code.NewStoreRef(1, code.NewSimple(code.ReturnVoid, nil))))
	if !simplifyAloadAstore(s, &s.Head) {
		t.Fatalf("simplifyAloadAstore did not match")
	}
	if s.Head.Kind != code.ReturnVoid {
		t.Fatalf("head = %+v, want the load/store pair removed entirely", s.Head)
	}
}
