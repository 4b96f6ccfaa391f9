// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fault

import (
	"testing"

	"github.com/pkg/errors"
)

func TestKinds(t *testing.T) {
	err := New(ConfigInconsistency, "poptable.Resolve", "key %#x not found", 0x100)
	wrapped := errors.Wrap(err, "expanding bit fields")
	if !Is(wrapped, ConfigInconsistency) {
		t.Errorf("kind lost through wrapping: %v", wrapped)
	}
	if Is(wrapped, TransferFailure) {
		t.Errorf("wrong kind matched")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Errorf("plain error classified as fault")
	}
	if Wrap(Corrupt, "x", nil) != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
	var k Kinds
	if err := k.FromString("TransferFailure"); err != nil || k != TransferFailure {
		t.Errorf("FromString: %v %v", k, err)
	}
	if ResourceExhaustion.String() != "ResourceExhaustion" {
		t.Errorf("String: %v", ResourceExhaustion.String())
	}
}
