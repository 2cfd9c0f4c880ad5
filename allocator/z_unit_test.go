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

package allocator

import (
	"errors"
	"math"
	"testing"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/sdk/core"
)

func TestDrawNeverPicksEmptyPrize(t *testing.T) {
	inv := prize.MustNew(
		prize.Prize{ID: "A", Quantity: 0, Weight: 3},
		prize.Prize{ID: "B", Quantity: 1, Weight: 7},
		prize.Prize{ID: "nowin", Quantity: 0, Weight: 150, NoWin: true},
	)
	a := New(core.NewWithSeed(1), prize.WeightByTable)
	const n = 100000
	hitsB := 0
	for i := 0; i < n; i++ {
		p, err := a.Draw(inv)
		if err != nil {
			t.Fatal(err)
		}
		switch p.PrizeID {
		case "A":
			t.Fatalf("drew a prize with zero stock")
		case "B":
			hitsB++
		}
		if p.Total != 157 {
			t.Fatalf("expected 157 tickets, got %d", p.Total)
		}
	}
	rate := float64(hitsB) / n
	want := 7.0 / 157.0
	// 4 個標準差
	tol := 4 * math.Sqrt(want*(1-want)/n)
	if math.Abs(rate-want) > tol {
		t.Fatalf("B rate %.4f, want %.4f ± %.4f", rate, want, tol)
	}
}

func TestDrawThousandTimesScenario(t *testing.T) {
	inv := prize.MustNew(
		prize.Prize{ID: "A", Quantity: 0, Weight: 0},
		prize.Prize{ID: "B", Quantity: 1, Weight: 7},
		prize.Prize{ID: "nowin", Quantity: 150, Weight: 150, NoWin: true},
	)
	a := New(core.NewWithSeed(2024), prize.WeightByTable)
	hitsB := 0
	for i := 0; i < 1000; i++ {
		p, err := a.Draw(inv)
		if err != nil {
			t.Fatal(err)
		}
		if p.PrizeID == "A" {
			t.Fatalf("A selected")
		}
		if p.PrizeID == "B" {
			hitsB++
		}
	}
	// 7/157 * 1000 ≈ 44.6，σ ≈ 6.5
	if hitsB < 15 || hitsB > 75 {
		t.Fatalf("B hits %d outside sampling tolerance", hitsB)
	}
}

func TestDrawStockWeighting(t *testing.T) {
	inv := prize.Default()
	a := New(core.NewWithSeed(5), prize.WeightByStock)
	w, total := a.Odds(inv)
	if total != 2+3+5+10+30+150 || w[5] != 150 {
		t.Fatalf("unexpected stock odds: %v %d", w, total)
	}
	// 只剩 NoWin
	empty := inv
	for _, p := range inv.Prizes() {
		if !p.NoWin {
			empty, _ = empty.WithQuantity(p.ID, 0)
		}
	}
	empty, _ = empty.WithQuantity("prize_6", 0)
	for i := 0; i < 50; i++ {
		p, err := a.Draw(empty)
		if err != nil {
			t.Fatal(err)
		}
		if !p.NoWin || p.Rank != 5 {
			t.Fatalf("only the no-win prize is drawable, got %+v", p)
		}
	}
}

func TestDrawExhausted(t *testing.T) {
	inv := prize.Default()
	for _, p := range inv.Prizes() {
		inv, _ = inv.WithQuantity(p.ID, 0)
	}
	// NoWin 也停用
	ps := inv.Prizes()
	ps[5].Weight = 0
	inv = prize.MustNew(ps...)

	for _, mode := range []prize.Weighting{prize.WeightByStock, prize.WeightByTable} {
		a := New(core.NewWithSeed(9), mode)
		if a.Eligible(inv) {
			t.Fatalf("nothing should be eligible")
		}
		before := inv.Clone()
		_, err := a.Draw(inv)
		if !errors.Is(err, errs.ErrExhaustedInventory) {
			t.Fatalf("expected exhausted inventory, got %v", err)
		}
		if !inv.Equal(before) {
			t.Fatalf("draw must not mutate the inventory")
		}
	}
}
