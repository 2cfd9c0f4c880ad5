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

// Package core 提供轉盤抽獎使用的亂數來源。
//
// 抽獎不要求可重現，也不是可稽核的公平系統；但測試與離線模擬需要固定 seed，
// 所以 Core 仍保留「指定 seed 建立」的入口。
package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"
)

// RAND 定義核心亂數取樣能力。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// Core 封裝 RAND，並提供常用取樣與工具方法。
//
// Core 本身以 mutex 保護：Spin 迴圈與模擬器可能共用同一個 Core。
type Core struct {
	mu  sync.Mutex
	rng RAND
}

// New 允許使用外部自實現的 RAND 建立 Core。
func New(rng RAND) *Core {
	return &Core{rng: rng}
}

// NewWithSeed 以指定 seed 建立 PCG64 Core（測試、模擬器使用）。
func NewWithSeed(seed int64) *Core {
	return New(newPCG64WithSeed(seed))
}

// NewDefault 以 crypto/rand 取得 seed 建立 PCG64 Core。
func NewDefault() *Core {
	return NewWithSeed(NewSeed())
}

// NewSeed 以 crypto/rand 產生 seed；讀取失敗時退回固定 seed（抽獎不要求密碼學強度）。
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0x5eed
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1)
}

func (c *Core) Uint64() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Uint64()
}

func (c *Core) Float64() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64()
}

// IntN 回傳 [0,n) 的均勻整數，n <= 0 回傳 -1。
func (c *Core) IntN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	idx := c.IntN(len(src))
	return src[idx]
}

// NumericID 回傳 [0,limit) 的十進位字串，用於參與編號。
func (c *Core) NumericID(limit int) string {
	if limit <= 0 {
		limit = 10000
	}
	return strconv.Itoa(c.IntN(limit))
}
