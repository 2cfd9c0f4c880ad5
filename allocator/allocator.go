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

// Package allocator 依目前庫存抽出一個獎項。
//
// 每個可抽獎項貢獻 DrawWeight 張票，從總票數中均勻抽一張，票的主人就是中獎獎項。
// 票數是庫存推導出來的：獎項庫存歸零時票數同步歸零；NoWin 獎項票數固定，
// 因此庫存越少，NoWin 的相對機率越高。
package allocator

import (
	"errors"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/sdk/core"
	"github.com/zintix-labs/prizewheel/sdk/sampler"
)

// Pick 是一次抽獎的結果。
type Pick struct {
	PrizeID prize.ID
	Rank    int
	Name    string
	NoWin   bool
	// Tickets 是中獎獎項的票數；Total 是當次總票數。
	Tickets int
	Total   uint64
}

// Allocator 持有亂數來源與票數規則，本身無狀態。
type Allocator struct {
	rng  *core.Core
	mode prize.Weighting
}

func New(rng *core.Core, mode prize.Weighting) *Allocator {
	if rng == nil {
		rng = core.NewDefault()
	}
	return &Allocator{rng: rng, mode: mode}
}

func (a *Allocator) Mode() prize.Weighting { return a.mode }

// Eligible 回傳庫存中是否至少有一個可抽獎項。
func (a *Allocator) Eligible(inv prize.Inventory) bool {
	for _, w := range inv.Weights(a.mode) {
		if w > 0 {
			return true
		}
	}
	return false
}

// Draw 抽出一個獎項。沒有任何可抽獎項時回傳 errs.ErrExhaustedInventory。
func (a *Allocator) Draw(inv prize.Inventory) (Pick, error) {
	weights := inv.Weights(a.mode)
	pool, err := sampler.NewPool(weights)
	if err != nil {
		if errors.Is(err, sampler.ErrNoTickets) {
			return Pick{}, errs.With(errs.ErrExhaustedInventory, inv.String(), nil)
		}
		return Pick{}, errs.Wrap(err, "build ticket pool")
	}
	rank := pool.Pick(a.rng)
	p, ok := inv.At(rank)
	if !ok || weights[rank] == 0 {
		// 票池只會回傳票數 > 0 的索引，走到這裡代表 sampler 壞了
		return Pick{}, errs.Fatalf("ticket pool returned invalid rank %d", rank)
	}
	return Pick{
		PrizeID: p.ID,
		Rank:    rank,
		Name:    p.Name,
		NoWin:   p.NoWin,
		Tickets: weights[rank],
		Total:   pool.Tickets(),
	}, nil
}

// Odds 回傳每個獎項目前的票數與總票數，給報表與 API 顯示。
func (a *Allocator) Odds(inv prize.Inventory) ([]int, int) {
	w := inv.Weights(a.mode)
	total := 0
	for _, v := range w {
		total += v
	}
	return w, total
}
