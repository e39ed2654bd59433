// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package code

import "fmt"

// MissingLabelError is returned by Destination when a jump target has no
// defining label node in the stream. Per spec.md §7 this can only arise
// from a bug in the optimizer or ill-formed input from the code
// generator; the driver treats it as fatal.
type MissingLabelError LabelID

func (e MissingLabelError) Error() string {
	return fmt.Sprintf("code: no label node for identifier L%d", LabelID(e))
}

// NegativeRefCountError is returned by DropLabel if a label's reference
// count would go negative. Per spec.md §7 this is a fatal internal
// error: a rule dropped a reference the registry never counted.
type NegativeRefCountError LabelID

func (e NegativeRefCountError) Error() string {
	return fmt.Sprintf("code: reference count for L%d went negative", LabelID(e))
}
