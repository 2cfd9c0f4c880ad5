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

// Package sampler 提供票池 (ticket pool) 加權抽樣。
//
// 權重一律視為「票數」：權重 150 的獎項就是 150 張票，
// 中獎機率 = 自己的票數 / 所有可抽獎項票數總和，不做百分比正規化。
package sampler

import (
	"math"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/sdk/core"
)

// Integers 定義所有底層實現為整數型別的集合
type Integers interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Pool 是已建好的票池，Pick 回傳中獎的原始索引。
type Pool interface {
	Pick(c *core.Core) int
	Tickets() uint64
}

// 權重總和在 lutThreshold 以下使用 LUT，超過則改用 AliasTable。
const lutThreshold uint64 = 100_000

var (
	ErrNegativeWeight = errs.NewFatal("sampler: negative weight")
	ErrNoTickets      = errs.NewWarn("sampler: all weights are zero")
	ErrTooManyTickets = errs.NewFatal("sampler: total weight overflow")
)

// NewPool 依票數總和自動選擇 LUT 或 AliasTable。
func NewPool[T Integers](weights []T) (Pool, error) {
	total, err := sumTickets(weights)
	if err != nil {
		return nil, err
	}
	if total <= lutThreshold {
		lut, err := BuildLUT(weights)
		if err != nil {
			return nil, err
		}
		return lut, nil
	}
	at, err := BuildAliasTable(weights)
	if err != nil {
		return nil, err
	}
	return at, nil
}

// sumTickets 累加權重並檢查負值、全零與溢位。
func sumTickets[T Integers](weights []T) (uint64, error) {
	acc := uint64(0)
	for _, v := range weights {
		if v < 0 {
			return 0, ErrNegativeWeight
		}
		uv := uint64(v)
		if acc > math.MaxInt64-uv {
			return 0, ErrTooManyTickets
		}
		acc += uv
	}
	if acc == 0 {
		return 0, ErrNoTickets
	}
	return acc, nil
}
