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
	"io"
	"log/slog"

	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/result"
)

// View 是控制器對外呈現的出口。所有方法都在 Loop 上呼叫，實作不得阻塞。
type View interface {
	SetInputEnabled(enabled bool)
	ShowOverlay(visible bool)
	ShowResult(v result.View)
	Alert(msg string)
	ShowInventory(inv prize.Inventory)
}

// Animator 播放轉盤動畫，停在 rank 對應的位置後呼叫 onDone。
// onDone 必須在 Loop 上呼叫 (例如經由同一個 Scheduler)。
type Animator interface {
	Start(rank int, onDone func())
}

// LogView 把畫面事件寫成 log，是無畫面執行時的預設 View。
type LogView struct {
	log *slog.Logger
}

func NewLogView(log *slog.Logger) *LogView {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogView{log: log}
}

func (v *LogView) SetInputEnabled(enabled bool) {
	v.log.Debug("input", slog.Bool("enabled", enabled))
}

func (v *LogView) ShowOverlay(visible bool) {
	v.log.Info("celebration overlay", slog.Bool("visible", visible))
}

func (v *LogView) ShowResult(r result.View) {
	v.log.Info(r.Message, slog.String("prize", r.PrizeName), slog.Int("rank", r.Rank))
}

func (v *LogView) Alert(msg string) {
	v.log.Warn(msg)
}

func (v *LogView) ShowInventory(inv prize.Inventory) {
	v.log.Info("inventory", slog.String("stock", inv.String()))
}
