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

package core

import (
	"strconv"
	"testing"
)

func TestCoreDeterminism(t *testing.T) {
	c1 := NewWithSeed(7)
	c2 := NewWithSeed(7)
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
}

func TestIntNRange(t *testing.T) {
	c := NewWithSeed(3)
	if got := c.IntN(0); got != -1 {
		t.Fatalf("expected -1 for n=0, got %d", got)
	}
	seen := make([]int, 157)
	for i := 0; i < 100000; i++ {
		v := c.IntN(157)
		if v < 0 || v >= 157 {
			t.Fatalf("IntN out of range: %d", v)
		}
		seen[v]++
	}
	for i, n := range seen {
		if n == 0 {
			t.Fatalf("ticket %d never drawn in 100k draws", i)
		}
	}
	for i := 0; i < 1000; i++ {
		f := c.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestPickAndNumericID(t *testing.T) {
	c := NewDefault()
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}
	if got := c.Pick([]int{4}); got != 4 {
		t.Fatalf("single element pick: %d", got)
	}
	for i := 0; i < 200; i++ {
		id := c.NumericID(10000)
		v, err := strconv.Atoi(id)
		if err != nil || v < 0 || v >= 10000 {
			t.Fatalf("bad numeric id %q", id)
		}
	}
}
