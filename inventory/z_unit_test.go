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

package inventory

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/storage"
)

func TestLoadFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, prize.Default(), nil)

	if inv := s.Load(ctx); !inv.Equal(prize.Default()) {
		t.Fatalf("absent record should load defaults, got %v", inv)
	}

	_ = kv.Put(ctx, KeyProducts, []byte("{not json"))
	if inv := s.Load(ctx); !inv.Equal(prize.Default()) {
		t.Fatalf("corrupt record should load defaults, got %v", inv)
	}

	kv.FailGet = errors.New("io error")
	if inv := s.Load(ctx); !inv.Equal(prize.Default()) {
		t.Fatalf("unreadable storage should load defaults, got %v", inv)
	}
}

func TestLoadMergesPersistedQuantities(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	_ = kv.Put(ctx, KeyProducts, []byte(`{"prize_1":{"name":"x","quantity":0},"prize_5":{"name":"y","quantity":7},"ghost":{"name":"z","quantity":1}}`))
	s := New(kv, prize.Default(), nil)
	inv := s.Load(ctx)
	if got := inv.Quantities(); !slices.Equal(got, []int{0, 3, 5, 10, 7, 150}) {
		t.Fatalf("unexpected merged quantities: %v", got)
	}
	p, _, _ := inv.Get("prize_1")
	if p.Name != "로지텍 MX Master 3s 마우스" {
		t.Fatalf("names must come from the prize table, got %q", p.Name)
	}
}

func TestStageThenCommitChangesExactlyOne(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, prize.Default(), nil)
	before := s.Load(ctx)

	staged, err := s.Stage("prize_4")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Current().Equal(before) {
		t.Fatalf("stage must not change the current inventory")
	}
	if kv.Puts() != 0 {
		t.Fatalf("stage must not write")
	}
	if err := s.Commit(ctx, staged); err != nil {
		t.Fatal(err)
	}
	after := s.Current().Quantities()
	orig := before.Quantities()
	changed := 0
	for i := range orig {
		if after[i] != orig[i] {
			changed++
			if orig[i]-after[i] != 1 {
				t.Fatalf("prize %d changed by %d", i, orig[i]-after[i])
			}
		}
	}
	if changed != 1 {
		t.Fatalf("expected exactly one changed prize, got %d", changed)
	}

	// 重新讀取持久化紀錄
	s2 := New(kv, prize.Default(), nil)
	if !s2.Load(ctx).Equal(s.Current()) {
		t.Fatalf("committed inventory not durable")
	}
}

func TestStageUnavailablePrize(t *testing.T) {
	inv, _ := prize.Default().WithQuantity("prize_1", 0)
	out, err := StageFrom(inv, "prize_1")
	if !errors.Is(err, errs.ErrOutOfStock) {
		t.Fatalf("expected out of stock, got %v", err)
	}
	if !out.Equal(inv) {
		t.Fatalf("failed stage must return an unchanged inventory")
	}
	if _, err := StageFrom(inv, "nope"); !errors.Is(err, errs.ErrUnknownPrize) {
		t.Fatalf("expected unknown prize, got %v", err)
	}
}

func TestCommitFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, prize.Default(), nil)
	s.Load(ctx)
	staged, _ := s.Stage("prize_2")
	kv.FailPut = errors.New("disk full")
	if err := s.Commit(ctx, staged); err == nil {
		t.Fatalf("expected commit error")
	}
	if !s.Current().Equal(prize.Default()) {
		t.Fatalf("failed commit must not change current inventory")
	}

	other := prize.MustNew(prize.Prize{ID: "x", Quantity: 1})
	kv.FailPut = nil
	if err := s.Commit(ctx, other); err == nil {
		t.Fatalf("commit of a foreign prize table must fail")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, prize.Default(), nil)
	s.Load(ctx)
	for _, id := range []prize.ID{"prize_1", "prize_1", "prize_6"} {
		staged, err := s.Stage(id)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Commit(ctx, staged); err != nil {
			t.Fatal(err)
		}
		_ = s.SavePending(ctx, staged)
	}
	inv, err := s.Reset(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := inv.Quantities(); !slices.Equal(got, []int{2, 3, 5, 10, 30, 150}) {
		t.Fatalf("reset quantities: %v", got)
	}
	if _, ok := s.Pending(ctx); ok {
		t.Fatalf("reset must clear the pending record")
	}
	if !New(kv, prize.Default(), nil).Load(ctx).Equal(prize.Default()) {
		t.Fatalf("load after reset must return defaults")
	}
}

func TestPendingRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, prize.Default(), nil)
	s.Load(ctx)
	staged, _ := s.Stage("prize_3")
	if err := s.SavePending(ctx, staged); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Pending(ctx)
	if !ok || !got.Equal(staged) {
		t.Fatalf("pending round trip failed: %v %v", got, ok)
	}
	if err := s.ClearPending(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Pending(ctx); ok {
		t.Fatalf("pending still present after clear")
	}
}

func TestEncodeIsStable(t *testing.T) {
	a, err := Encode(prize.Default())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Encode(prize.Default())
	if !bytes.Equal(a, b) {
		t.Fatalf("encoding must be deterministic")
	}
	if !bytes.Contains(a, []byte(`"prize_6":{"name":"농심 제품 + DT FAIR 다회용백","quantity":150,"img":"prize6.png"}`)) {
		t.Fatalf("unexpected record layout: %s", a)
	}
}
