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
	"context"
	"errors"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/inventory"
	"github.com/zintix-labs/prizewheel/prize"
)

// ctxCheckEvery 每抽幾次檢查一次 ctx
const ctxCheckEvery = 4096

// Simulate 抽 rounds 次並統計每個獎項的命中次數。
//
//   - deplete=false：每次都對同一份庫存抽，量測設定的機率。
//   - deplete=true：每次抽中就扣庫存，模擬一場真實活動；全部抽完即停止。
//
// bar 可為 nil。回傳報告與用時。
func Simulate(ctx context.Context, alloc *allocator.Allocator, inv prize.Inventory, rounds int, deplete bool, bar *pb.ProgressBar) (*Report, time.Duration, error) {
	if rounds < 1 {
		return nil, 0, errs.NewWarn("rounds must > 0")
	}
	weights, total := alloc.Odds(inv)
	rep := &Report{
		Title:     "PRIZE WHEEL SIMULATION",
		Weighting: alloc.Mode().String(),
		Deplete:   deplete,
		Rounds:    rounds,
		Prizes:    make([]PrizeStat, inv.Len()),
	}
	for i, p := range inv.Prizes() {
		rep.Prizes[i] = PrizeStat{ID: string(p.ID), Name: p.Name, Rank: i, Tickets: weights[i]}
		if !deplete && total > 0 {
			rep.Prizes[i].Expected = float64(weights[i]) / float64(total)
		}
	}

	start := time.Now()
	cur := inv.Clone()
	for i := 0; i < rounds; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		pick, err := alloc.Draw(cur)
		if err != nil {
			if errors.Is(err, errs.ErrExhaustedInventory) {
				rep.Exhausted = true
				break
			}
			return nil, 0, err
		}
		rep.Prizes[pick.Rank].Hits++
		rep.Drawn++
		if deplete {
			next, err := inventory.StageFrom(cur, pick.PrizeID)
			if err == nil {
				cur = next
			} else if !errs.Is(err, errs.KindOutOfStock) {
				return nil, 0, err
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}
	used := time.Since(start)
	if bar != nil {
		bar.Finish()
	}
	for i, q := range cur.Quantities() {
		rep.Prizes[i].Remaining = q
	}
	rep.Done()
	return rep, used, nil
}
