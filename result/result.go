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

// Package result 把抽中的名次轉成畫面上的結果。
package result

import (
	"github.com/zintix-labs/prizewheel/prize"
)

var messages = [...]string{
	0: "🏆 1등 당첨 🎉",
	1: "🥇 2등 당첨 🎁",
	2: "🥈 3등 당첨 👏",
	3: "🥉 4등 당첨 😉",
	4: "📦 5등 당첨 😉", // 現場舊畫面此處重複顯示 4등，這裡依名次改為 5등
	5: "📦 6등 당첨 😉",
}

// Message 回傳名次對應的固定訊息；未知名次回傳空字串 (只會在尚未抽獎時發生)。
func Message(rank int) string {
	if rank < 0 || rank >= len(messages) {
		return ""
	}
	return messages[rank]
}

// View 是結果彈窗的內容。
type View struct {
	Rank      int      `json:"rank"`
	PrizeID   prize.ID `json:"prize_id"`
	Message   string   `json:"message"`
	PrizeName string   `json:"prize_name"`
	Image     string   `json:"image,omitempty"`
	TopTier   bool     `json:"top_tier"`
}

// NewView 依名次與庫存組出結果彈窗。
func NewView(rank int, inv prize.Inventory) View {
	v := View{Rank: rank, Message: Message(rank), TopTier: IsTopTier(rank)}
	if p, ok := inv.At(rank); ok {
		v.PrizeID = p.ID
		v.PrizeName = p.Name
		v.Image = p.Image
	}
	return v
}

// IsTopTier 回傳是否為需要慶祝動畫的最高獎項。
func IsTopTier(rank int) bool { return rank == 0 }
