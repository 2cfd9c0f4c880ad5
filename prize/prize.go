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

// Package prize 定義轉盤上的獎項與庫存 (Inventory)。
//
// Inventory 是有序的：索引同時代表轉盤上的格位與獎項名次 (rank 0 = 1 等獎)。
// Inventory 以值語意傳遞，所有「修改」都回傳新的 Inventory，原值不變。
package prize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zintix-labs/prizewheel/errs"
)

// ID 是獎項的穩定鍵值，也是持久化紀錄中的 key。
type ID string

// Weighting 決定有庫存獎項的票數來源。
type Weighting uint8

const (
	// WeightByStock 票數 = 剩餘數量，每一件庫存就是一張票。
	WeightByStock Weighting = iota
	// WeightByTable 票數 = 設定的固定票數，只要還有庫存就生效。
	WeightByTable
)

func (w Weighting) String() string {
	switch w {
	case WeightByStock:
		return "stock"
	case WeightByTable:
		return "table"
	default:
		return ""
	}
}

// ParseWeighting 解析設定檔中的 weighting 字串，空字串視為 stock。
func ParseWeighting(s string) (Weighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stock":
		return WeightByStock, nil
	case "table":
		return WeightByTable, nil
	default:
		return WeightByStock, errs.Configf("unknown weighting %q (want stock|table)", s)
	}
}

// Prize 是一個獎項。
//
// Weight 對一般獎項是 table 模式下的票數；對 NoWin 獎項則是與庫存無關的固定票數。
type Prize struct {
	ID       ID     `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Quantity int    `yaml:"quantity" json:"quantity"`
	Weight   int    `yaml:"weight" json:"weight"`
	NoWin    bool   `yaml:"no_win" json:"no_win"`
	Image    string `yaml:"image" json:"image"`
}

// DrawWeight 回傳此獎項在抽獎時的票數。
//   - NoWin 獎項：固定 Weight，不論庫存。
//   - 庫存為 0：0，永遠抽不到。
//   - 其餘依 Weighting 決定。
func (p Prize) DrawWeight(mode Weighting) int {
	if p.NoWin {
		return max(0, p.Weight)
	}
	if p.Quantity <= 0 {
		return 0
	}
	if mode == WeightByTable {
		return max(0, p.Weight)
	}
	return p.Quantity
}

// Inventory 是有序的獎項集合。零值是空庫存。
type Inventory struct {
	prizes []Prize
}

// New 檢查並建立 Inventory。
//
// 規則：ID 不可為空且不可重複、數量與票數不可為負、最多一個 NoWin 獎項。
func New(prizes ...Prize) (Inventory, error) {
	seen := make(map[ID]struct{}, len(prizes))
	noWin := 0
	for i, p := range prizes {
		if strings.TrimSpace(string(p.ID)) == "" {
			return Inventory{}, errs.Configf("prize[%d]: id required", i)
		}
		if _, ok := seen[p.ID]; ok {
			return Inventory{}, errs.Configf("prize[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Quantity < 0 {
			return Inventory{}, errs.Configf("prize %q: negative quantity %d", p.ID, p.Quantity)
		}
		if p.Weight < 0 {
			return Inventory{}, errs.Configf("prize %q: negative weight %d", p.ID, p.Weight)
		}
		if p.NoWin {
			noWin++
		}
	}
	if noWin > 1 {
		return Inventory{}, errs.Configf("at most one no-win prize allowed, got %d", noWin)
	}
	return Inventory{prizes: slices.Clone(prizes)}, nil
}

// MustNew 與 New 相同，失敗時 panic；只給內建預設值與測試使用。
func MustNew(prizes ...Prize) Inventory {
	inv, err := New(prizes...)
	if err != nil {
		panic(err)
	}
	return inv
}

func (inv Inventory) Len() int { return len(inv.prizes) }

// Prizes 回傳獎項的複本。
func (inv Inventory) Prizes() []Prize { return slices.Clone(inv.prizes) }

// At 依名次 (轉盤格位) 取得獎項。
func (inv Inventory) At(rank int) (Prize, bool) {
	if rank < 0 || rank >= len(inv.prizes) {
		return Prize{}, false
	}
	return inv.prizes[rank], true
}

// Get 依 ID 取得獎項與其名次。
func (inv Inventory) Get(id ID) (Prize, int, bool) {
	for i, p := range inv.prizes {
		if p.ID == id {
			return p, i, true
		}
	}
	return Prize{}, -1, false
}

func (inv Inventory) Clone() Inventory { return Inventory{prizes: slices.Clone(inv.prizes)} }

// Equal 逐欄位比較兩份庫存（含順序）。
func (inv Inventory) Equal(o Inventory) bool {
	return slices.Equal(inv.prizes, o.prizes)
}

// Weights 依名次順序回傳每個獎項的票數。
func (inv Inventory) Weights(mode Weighting) []int {
	w := make([]int, len(inv.prizes))
	for i, p := range inv.prizes {
		w[i] = p.DrawWeight(mode)
	}
	return w
}

// Quantities 依名次順序回傳剩餘數量。
func (inv Inventory) Quantities() []int {
	q := make([]int, len(inv.prizes))
	for i, p := range inv.prizes {
		q[i] = p.Quantity
	}
	return q
}

// WithQuantity 回傳指定獎項數量被替換後的新庫存。
func (inv Inventory) WithQuantity(id ID, qty int) (Inventory, error) {
	_, rank, ok := inv.Get(id)
	if !ok {
		return inv.Clone(), errs.With(errs.ErrUnknownPrize, string(id), nil)
	}
	if qty < 0 {
		return inv.Clone(), errs.Warnf("prize %q: negative quantity %d", id, qty)
	}
	out := inv.Clone()
	out.prizes[rank].Quantity = qty
	return out, nil
}

// NoWin 回傳 NoWin 獎項（若有）。
func (inv Inventory) NoWin() (Prize, bool) {
	for _, p := range inv.prizes {
		if p.NoWin {
			return p, true
		}
	}
	return Prize{}, false
}

func (inv Inventory) String() string {
	var b strings.Builder
	for i, p := range inv.prizes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", p.ID, p.Quantity)
	}
	return b.String()
}
