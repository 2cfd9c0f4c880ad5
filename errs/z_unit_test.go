// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errs

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSentinelMatchesByKind(t *testing.T) {
	err := With(ErrOutOfStock, "prize_1", nil)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected errors.Is to match by kind")
	}
	if errors.Is(err, ErrBusy) {
		t.Fatalf("different kind must not match")
	}
	if KindOf(err) != KindOutOfStock {
		t.Fatalf("unexpected kind: %v", KindOf(err))
	}
}

func TestWrapKeepsLevelAndKind(t *testing.T) {
	inner := With(ErrExhaustedInventory, "", nil)
	w := Wrap(inner, "draw failed")
	if w.ErrLv != Warn || w.Kind != KindExhaustedInventory {
		t.Fatalf("wrap lost level/kind: %+v", w)
	}
	if !errors.Is(w, ErrExhaustedInventory) {
		t.Fatalf("wrapped error must still match sentinel")
	}

	foreign := Wrap(io.EOF, "read")
	if foreign.ErrLv != Fatal || foreign.Kind != KindUnknown {
		t.Fatalf("foreign cause should be fatal/unknown: %+v", foreign)
	}
	if !errors.Is(foreign, io.EOF) {
		t.Fatalf("cause must unwrap")
	}
}

func TestErrorString(t *testing.T) {
	e := WrapWithExtra(io.EOF, "load", "products")
	s := e.Error()
	if !strings.Contains(s, "errlv=fatal") || !strings.Contains(s, "extra: products") || !strings.Contains(s, "EOF") {
		t.Fatalf("unexpected error string: %s", s)
	}
	k := With(ErrBusy, "", nil).Error()
	if !strings.Contains(k, "kind=busy") {
		t.Fatalf("kind missing from string: %s", k)
	}
}
