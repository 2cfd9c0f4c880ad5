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

// 本檔案 (aliastable.go) 實作整數版 Vose Alias Method。
//
// 當票數總和很大時 (例如庫存以萬計)，LUT 會展開成巨大切片；
// AliasTable 的空間只與獎項數量成正比，且全程整數運算，
// 每個獎項被抽中的機率仍精確等於 票數/總票數。

package sampler

import (
	"math"
	"math/bits"

	"github.com/zintix-labs/prizewheel/sdk/core"
)

// AliasTable 是 O(1) 加權抽樣結構。
//
// 結構欄位說明：
// - Prob: 每個欄位「自己」的整數機率 (權重 * Size)，與 Total 比較。
// - Aliases: 機率不足時改選的別名索引。
// - Size: 欄位數量。
// - Total: 票數總和。
type AliasTable struct {
	Prob    []int
	Aliases []int
	Size    int
	Total   int
}

// BuildAliasTable 根據票數建立 AliasTable。
//
// 處理流程：
// 1) 將每個權重 w 乘以 n 做整數 scaling，得到 prob。
// 2) 依 prob[i] 與 total 比較分類到 small / large。
// 3) 從兩桶各取一個 s, l，令 l 為 s 的 alias，並把 s 的缺口從 l 扣除。
// 4) 重複直到任一桶為空。
//
// 票數為 0 的獎項 prob 為 0，且永遠不會成為別名（只有 large 會被當 alias），所以抽不到。
func BuildAliasTable[T Integers](weights []T) (*AliasTable, error) {
	acc, err := sumTickets(weights)
	if err != nil {
		return nil, err
	}
	n := len(weights)
	if acc > uint64(math.MaxInt) || !isSafeMultiply(int(acc), n) {
		return nil, ErrTooManyTickets
	}
	total := int(acc)

	prob := make([]int, n)
	aliases := make([]int, n)

	small := make([]int, 0, n)
	large := make([]int, 0, n)

	for i, w := range weights {
		prob[i] = int(w) * n
		aliases[i] = i
		if prob[i] < total {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		aliases[s] = l
		prob[l] = prob[l] + prob[s] - total // 維持 sum(prob) = total * n

		if prob[l] < total {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// 整數版在理論上不會殘留，保險起見把剩下的欄位設為「必選自己」。
	for _, i := range large {
		prob[i] = total
	}
	for _, i := range small {
		prob[i] = total
	}

	return &AliasTable{
		Prob:    prob,
		Aliases: aliases,
		Size:    n,
		Total:   total,
	}, nil
}

// isSafeMultiply 檢查 a*b 是否會超過 math.MaxInt64。
func isSafeMultiply(a, b int) bool {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return hi == 0 && (lo <= math.MaxInt64)
}

// Pick 從 AliasTable 中抽取一個索引，若表為空則回傳 -1。
//
// 先以 IntN(Size) 選欄位，再以 IntN(Total) < Prob[idx] 決定選自己或別名。
func (at *AliasTable) Pick(c *core.Core) int {
	if at == nil || at.Size == 0 {
		return -1
	}
	idx := c.IntN(at.Size)
	if c.IntN(at.Total) < at.Prob[idx] {
		return idx
	}
	return at.Aliases[idx]
}

// Tickets 回傳票數總和
func (at *AliasTable) Tickets() uint64 {
	if at == nil {
		return 0
	}
	return uint64(at.Total)
}
