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

// 本檔案 (lut.go) 實作了查找表 (Look-Up Table) 加權抽樣：
// 把每個獎項的票數逐張展開，抽樣時在 [0, 總票數) 均勻抽一張票。
//
// 特性：
//   - 建表時間：O(sum(weights))
//   - 抽樣時間：O(1)，只需一次 IntN。
//   - 空間複雜度：O(sum(weights))。
//
// 現場活動的票數總和通常只有數百張，LUT 就是「把票放進箱子抽一張」的直譯。

package sampler

import (
	"fmt"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/sdk/core"
)

const maxLUTCap uint64 = 10_000_000 // 約 80MB (int slice)

// LUT 是展開後的票池。
//
// 舉例 :
//
// 三個獎項，對應票數分別為 [3,5,0]
//
// LUT 轉換展開 -> [0,0,0,1,1,1,1,1]，票數 0 的獎項不會出現在票池中。
type LUT []int

// BuildLUT 根據票數列表建立查找表。
func BuildLUT[T Integers](src []T) (LUT, error) {
	acc, err := sumTickets(src)
	if err != nil {
		return nil, err
	}
	if acc > maxLUTCap {
		return nil, errs.NewFatal(fmt.Sprintf("lut: total weight %d exceeds limit %d, use alias table instead", acc, maxLUTCap))
	}

	lut := make([]int, 0, int(acc))
	for i, v := range src {
		// 將索引 i 重複寫入 v 次
		for j := T(0); j < v; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// Pick 會透過 Core 的 RNG 從 LUT 中隨機位置取一張票
// 若 lut 為空，回傳 -1
func (l LUT) Pick(c *core.Core) int {
	return c.Pick(l)
}

// Tickets 回傳票池總票數
func (l LUT) Tickets() uint64 {
	return uint64(len(l))
}
