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

import (
	"sort"
	"time"
)

// ManualScheduler 是手動推進時間的 Scheduler，測試與模擬使用。
// Advance 會在呼叫端的 goroutine 上依到期順序同步執行回呼。
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []manualTimer
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.timers = append(m.timers, manualTimer{at: m.now + d, seq: m.seq, fn: fn})
}

// Advance 推進 d，執行期間新排入且仍在範圍內的回呼也會被執行。
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		idx := -1
		for i, t := range m.timers {
			if t.at > target {
				continue
			}
			if idx < 0 || t.at < m.timers[idx].at || (t.at == m.timers[idx].at && t.seq < m.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		t := m.timers[idx]
		m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
		m.now = t.at
		t.fn()
	}
	m.now = target
}

// Elapsed 回傳目前的虛擬時間。
func (m *ManualScheduler) Elapsed() time.Duration { return m.now }

// Pending 回傳尚未觸發的回呼到期時間 (相對現在)，由近到遠。
func (m *ManualScheduler) Pending() []time.Duration {
	out := make([]time.Duration, 0, len(m.timers))
	for _, t := range m.timers {
		out = append(out, t.at-m.now)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
