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

package spin

import "github.com/zintix-labs/prizewheel/errs"

// Phase 是抽獎流程目前所在的階段。整個流程只有這一個狀態值。
type Phase uint8

const (
	Idle Phase = iota
	Drawing
	Animating
	RevealPending
	ResultShown
	// Aborted 是短暫狀態：庫存全數耗盡時回報使用者後立刻回到 Idle。
	Aborted
)

var phaseName = map[Phase]string{
	Idle:          "idle",
	Drawing:       "drawing",
	Animating:     "animating",
	RevealPending: "reveal_pending",
	ResultShown:   "result_shown",
	Aborted:       "aborted",
}

func (p Phase) String() string {
	if s, ok := phaseName[p]; ok {
		return s
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for k, v := range phaseName {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return errs.Warnf("unknown phase %q", b)
}

// Busy 回報是否有一輪抽獎正在進行 (已抽出、尚未揭曉)。
func (p Phase) Busy() bool {
	return p == Drawing || p == Animating || p == RevealPending
}
