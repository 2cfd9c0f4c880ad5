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

package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/zintix-labs/prizewheel/sdk/core"
)

// checkDistribution 驗證抽樣結果的分佈是否符合預期票數
func checkDistribution(t *testing.T, name string, weights []int, samples []int, tolerance float64) {
	t.Helper()
	totalW := 0
	for _, w := range weights {
		totalW += w
	}
	counts := make(map[int]int)
	for _, idx := range samples {
		counts[idx]++
	}
	for i, w := range weights {
		if w == 0 {
			if counts[i] > 0 {
				t.Errorf("[%s] expected 0 samples for index %d (weight 0), got %d", name, i, counts[i])
			}
			continue
		}
		expected := float64(w) / float64(totalW)
		actual := float64(counts[i]) / float64(len(samples))
		if diff := math.Abs(expected - actual); diff > tolerance {
			t.Errorf("[%s] index %d: expected %.4f, got %.4f (diff %.4f > tol %.4f)", name, i, expected, actual, diff, tolerance)
		}
	}
}

func TestBuildLUTExpandsTickets(t *testing.T) {
	lut, err := BuildLUT([]int{3, 5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 0, 0, 1, 1, 1, 1, 1}
	if len(lut) != len(want) {
		t.Fatalf("unexpected lut: %v", lut)
	}
	for i := range want {
		if lut[i] != want[i] {
			t.Fatalf("unexpected lut: %v", lut)
		}
	}
	if lut.Tickets() != 8 {
		t.Fatalf("tickets: %d", lut.Tickets())
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := BuildLUT([]int{0, 0}); !errors.Is(err, ErrNoTickets) {
		t.Fatalf("expected ErrNoTickets, got %v", err)
	}
	if _, err := BuildLUT([]int{1, -1}); !errors.Is(err, ErrNegativeWeight) {
		t.Fatalf("expected ErrNegativeWeight, got %v", err)
	}
	if _, err := BuildAliasTable([]int{}); !errors.Is(err, ErrNoTickets) {
		t.Fatalf("expected ErrNoTickets for empty alias input, got %v", err)
	}
	if _, err := NewPool([]int64{math.MaxInt64, 1}); !errors.Is(err, ErrTooManyTickets) {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestLUTDistribution(t *testing.T) {
	c := core.NewWithSeed(42)
	weights := []int{0, 7, 150}
	lut, err := BuildLUT(weights)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]int, 200000)
	for i := range samples {
		samples[i] = lut.Pick(c)
	}
	checkDistribution(t, "lut", weights, samples, 0.005)
}

func TestAliasDistribution(t *testing.T) {
	c := core.NewWithSeed(99)
	weights := []int{2, 0, 5, 10, 30, 150}
	at, err := BuildAliasTable(weights)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]int, 300000)
	for i := range samples {
		samples[i] = at.Pick(c)
	}
	checkDistribution(t, "alias", weights, samples, 0.005)
}

func TestNewPoolChoosesByTicketCount(t *testing.T) {
	small, err := NewPool([]int{3, 7, 150})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := small.(LUT); !ok {
		t.Fatalf("expected LUT for small ticket sums, got %T", small)
	}
	big, err := NewPool([]int{200_000, 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := big.(*AliasTable); !ok {
		t.Fatalf("expected AliasTable for large ticket sums, got %T", big)
	}
	if big.Tickets() != 200_001 {
		t.Fatalf("tickets: %d", big.Tickets())
	}
}
