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

package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"math"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/sdk/core"
)

func TestProportionCICP(t *testing.T) {
	p, ci := proportionCICP(0, 100, 0.95)
	if p != 0 || ci.Lo != 0 || ci.Hi <= 0 || ci.Hi >= 0.05 {
		t.Fatalf("k=0: p=%v ci=%+v", p, ci)
	}
	p, ci = proportionCICP(100, 100, 0.95)
	if p != 1 || ci.Hi != 1 || ci.Lo <= 0.95 {
		t.Fatalf("k=n: p=%v ci=%+v", p, ci)
	}
	p, ci = proportionCICP(50, 100, 0.95)
	if p != 0.5 || !(ci.Lo < 0.5 && ci.Hi > 0.5) || ci.Lo < 0.38 || ci.Hi > 0.62 {
		t.Fatalf("k=50: p=%v ci=%+v", p, ci)
	}
	if _, ci := proportionCICP(0, 0, 0.95); ci.Lo != 0 || ci.Hi != 1 {
		t.Fatalf("n=0 must be uninformative: %+v", ci)
	}
}

func TestSimulateFixedMatchesConfiguredOdds(t *testing.T) {
	alloc := allocator.New(core.NewWithSeed(2025), prize.WeightByTable)
	rep, _, err := Simulate(context.Background(), alloc, prize.Default(), 200_000, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Drawn != 200_000 || rep.Exhausted {
		t.Fatalf("unexpected report header: %+v", rep)
	}
	if rep.Prizes[0].Expected != 3.0/235.0 {
		t.Fatalf("expected rate for prize_1 = %v", rep.Prizes[0].Expected)
	}
	n := float64(rep.Drawn)
	for _, p := range rep.Prizes {
		tol := 5 * math.Sqrt(p.Expected*(1-p.Expected)/n)
		if math.Abs(p.Rate-p.Expected) > tol {
			t.Fatalf("%s rate=%.5f expected=%.5f tol=%.5f", p.ID, p.Rate, p.Expected, tol)
		}
		if p.RateCI.Lo > p.Rate || p.RateCI.Hi < p.Rate {
			t.Fatalf("%s CI %+v does not contain the point estimate", p.ID, p.RateCI)
		}
	}
}

func TestWithin(t *testing.T) {
	rep := &Report{Drawn: 1000, Prizes: []PrizeStat{
		{ID: "a", Hits: 500, Expected: 0.5},
		{ID: "b", Hits: 500, Expected: 0.5},
	}}
	if !rep.Within() {
		t.Fatalf("exact match must be within CI")
	}
	off := &Report{Drawn: 1000, Prizes: []PrizeStat{{ID: "a", Hits: 100, Expected: 0.5}}}
	if off.Within() {
		t.Fatalf("10%% vs 50%% must be outside CI")
	}
	dep := &Report{Deplete: true, Drawn: 10, Prizes: []PrizeStat{{ID: "a", Hits: 1, Expected: 0.9}}}
	if !dep.Within() {
		t.Fatalf("deplete reports are not checked")
	}
}

func TestSimulateDepleteStopsAtExhaustion(t *testing.T) {
	ps := prize.Default().Prizes()
	ps[5].Weight = 0 // 沒中獎不佔票，才會真的抽完
	inv := prize.MustNew(ps...)
	alloc := allocator.New(core.NewWithSeed(9), prize.WeightByStock)

	rep, _, err := Simulate(context.Background(), alloc, inv, 1_000, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Exhausted || rep.Drawn != 50 {
		t.Fatalf("expected exhaustion after 50 draws, got drawn=%d exhausted=%v", rep.Drawn, rep.Exhausted)
	}
	want := []int{2, 3, 5, 10, 30, 0}
	for i, p := range rep.Prizes {
		if p.Hits != want[i] || p.Remaining != 0 && i < 5 {
			t.Fatalf("%s hits=%d remaining=%d", p.ID, p.Hits, p.Remaining)
		}
	}
}

func TestSimulateRejectsBadRounds(t *testing.T) {
	alloc := allocator.New(core.NewWithSeed(1), prize.WeightByStock)
	if _, _, err := Simulate(context.Background(), alloc, prize.Default(), 0, false, nil); err == nil {
		t.Fatalf("expected error for zero rounds")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Simulate(ctx, alloc, prize.Default(), 10, false, nil); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenders(t *testing.T) {
	alloc := allocator.New(core.NewWithSeed(3), prize.WeightByStock)
	rep, used, err := Simulate(context.Background(), alloc, prize.Default(), 1_000, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	var js bytes.Buffer
	if err := rep.WriteWith(&js, JSONRender{}); err != nil {
		t.Fatal(err)
	}
	var back Report
	if err := json.Unmarshal(js.Bytes(), &back); err != nil || back.Drawn != 1_000 || len(back.Prizes) != 6 {
		t.Fatalf("json render: %v %+v", err, back)
	}

	var ym bytes.Buffer
	if err := rep.WriteWith(&ym, YAMLRender{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ym.String(), "Drawn: 1000") {
		t.Fatalf("yaml render: %s", ym.String())
	}

	var tb bytes.Buffer
	rep.StdOut(&tb, used)
	out := tb.String()
	if !strings.Contains(out, "로지텍 MX Master 3s 마우스") || !strings.Contains(out, "PRIZE WHEEL SIMULATION") {
		t.Fatalf("table render: %s", out)
	}
	// 每一列顯示寬度一致
	var width int
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "|") && !strings.HasPrefix(line, "+") {
			continue
		}
		w := runewidth.StringWidth(line)
		if width == 0 {
			width = w
		} else if w != width {
			t.Fatalf("misaligned row %q: %d != %d", line, w, width)
		}
	}

	if _, ok := RenderFor("xml"); ok {
		t.Fatalf("unknown render should be rejected")
	}
}
