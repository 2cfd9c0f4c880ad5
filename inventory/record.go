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

package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
)

// 持久化紀錄的固定名稱。
const (
	// KeyProducts 保存已提交的庫存。
	KeyProducts = "products"
	// KeyPending 保存尚未提交的暫定庫存 (TentativeDelta)，只用於中斷後補救。
	KeyPending = "updatedProducts"
)

// recordItem 是紀錄中單一獎項的欄位：{name, quantity, img}。
type recordItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Img      string `json:"img,omitempty"`
}

// Encode 把庫存編成 prize id → {name, quantity, img} 的 JSON 物件。
func Encode(inv prize.Inventory) ([]byte, error) {
	rec := make(map[prize.ID]recordItem, inv.Len())
	for _, p := range inv.Prizes() {
		rec[p.ID] = recordItem{Name: p.Name, Quantity: p.Quantity, Img: p.Image}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, errs.Wrap(err, "encode inventory record")
	}
	return b, nil
}

// Decode 把紀錄套用到 base (獎項表) 上：
//   - 紀錄中有的獎項：採用紀錄的數量。
//   - 紀錄中沒有的獎項：保留 base 的數量。
//   - 紀錄中多出來、獎項表沒有的 id：忽略。
//
// 順序、名稱、票數、NoWin 一律以 base 為準；回傳被忽略的 id 供呼叫端記錄。
func Decode(base prize.Inventory, raw []byte) (prize.Inventory, []prize.ID, error) {
	var rec map[prize.ID]recordItem
	if err := json.Unmarshal(raw, &rec); err != nil {
		return base.Clone(), nil, errs.With(errs.ErrPersistenceUnavailable, "malformed record", err)
	}
	if rec == nil {
		return base.Clone(), nil, errs.With(errs.ErrPersistenceUnavailable, "empty record", nil)
	}
	out := base.Clone()
	for _, p := range base.Prizes() {
		item, ok := rec[p.ID]
		if !ok {
			continue
		}
		if item.Quantity < 0 {
			return base.Clone(), nil, errs.With(errs.ErrPersistenceUnavailable, fmt.Sprintf("negative quantity for %s", p.ID), nil)
		}
		next, err := out.WithQuantity(p.ID, item.Quantity)
		if err != nil {
			return base.Clone(), nil, err
		}
		out = next
	}
	var ignored []prize.ID
	for id := range rec {
		if _, _, ok := base.Get(id); !ok {
			ignored = append(ignored, id)
		}
	}
	return out, ignored, nil
}
