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

package result

import (
	"testing"

	"github.com/zintix-labs/prizewheel/prize"
)

func TestMessage(t *testing.T) {
	if Message(0) != "🏆 1등 당첨 🎉" {
		t.Fatalf("rank 0: %q", Message(0))
	}
	if Message(4) != "📦 5등 당첨 😉" {
		t.Fatalf("rank 4: %q", Message(4))
	}
	if Message(5) != "📦 6등 당첨 😉" {
		t.Fatalf("rank 5: %q", Message(5))
	}
	for _, r := range []int{-1, 6, 100} {
		if Message(r) != "" {
			t.Fatalf("unranked %d should be empty", r)
		}
	}
	seen := map[string]bool{}
	for r := 0; r < 6; r++ {
		if seen[Message(r)] {
			t.Fatalf("duplicate message for rank %d", r)
		}
		seen[Message(r)] = true
	}
}

func TestNewView(t *testing.T) {
	v := NewView(0, prize.Default())
	if !v.TopTier || v.PrizeID != "prize_1" || v.Image != "prize1.png" || v.PrizeName == "" {
		t.Fatalf("unexpected view: %+v", v)
	}
	empty := NewView(-1, prize.Default())
	if empty.Message != "" || empty.PrizeName != "" || empty.TopTier {
		t.Fatalf("unranked view should be empty: %+v", empty)
	}
}
