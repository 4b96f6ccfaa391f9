// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fault defines the fatal error taxonomy for the simulation core.

A fault is never recoverable at the point it is raised: loaders and kernels
return it up the call chain, wrapped with context via github.com/pkg/errors,
and only the program entry point halts on it (see Halt). Numeric overflow is
not a fault: the fixed-point kernels saturate instead.
*/
package fault

import (
	"fmt"
	"log"

	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// Kinds are the classes of fatal faults
type Kinds int32

//go:generate stringer -type=Kinds

var KiT_Kinds = kit.Enums.AddEnum(KindsN, kit.NotBitFlag, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The fault kinds
const (
	// ConfigInconsistency means the loaded configuration references
	// something that does not exist, e.g., a spike key with no population
	// table entry or no atom count.
	ConfigInconsistency Kinds = iota

	// ResourceExhaustion means the working memory budget was exceeded
	ResourceExhaustion

	// TransferFailure means a bulk row transfer could not complete
	TransferFailure

	// Corrupt means a region is shorter than its header claims
	Corrupt

	KindsN
)

// Error is a fatal fault
type Error struct {

	// class of fault
	Kind Kinds

	// operation that raised the fault
	Op string

	// underlying cause, may be nil
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a new fault of the given kind with a formatted message,
// including a stack trace.
func New(kind Kinds, op string, format string, args ...any) error {
	return errors.WithStack(&Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)})
}

// Wrap returns err as a fault of the given kind. nil stays nil.
func Wrap(kind Kinds, op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&Error{Kind: kind, Op: op, Err: err})
}

// KindOf returns the kind of the first fault in err's chain
func KindOf(err error) (Kinds, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return KindsN, false
}

// Is returns true if err's chain contains a fault of the given kind
func Is(err error, kind Kinds) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Halt logs the fault and terminates the process. It is the single
// halt point and is only called from the program entry point.
func Halt(err error) {
	if k, ok := KindOf(err); ok {
		log.Fatalf("fatal %v: %+v\n", k, err)
	}
	log.Fatalf("fatal: %+v\n", err)
}
