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

// Package inventory 是庫存的唯一寫入點。
//
// 兩段式提交：
//   - Stage：只在記憶體中算出「扣掉一件」後的新庫存，不寫入任何東西。
//   - Commit：唯一會改變持久化庫存的操作。
//
// Reset 把庫存還原為預設值並寫入。
package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/storage"
)

// Store 持有目前庫存與其持久化副本。
//
// 寫入 (Commit / Reset / *Pending) 只會由 Spin 迴圈單一呼叫者執行；
// Current 可以從任意 goroutine 讀取。
type Store struct {
	kv       storage.Store
	defaults prize.Inventory
	log      *slog.Logger

	mu      sync.RWMutex
	current prize.Inventory
}

// New 建立 Store。defaults 是硬編碼 (或設定檔) 的預設庫存，Reset 與讀取失敗時使用。
func New(kv storage.Store, defaults prize.Inventory, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		kv:       kv,
		defaults: defaults.Clone(),
		current:  defaults.Clone(),
		log:      log,
	}
}

// Load 讀取持久化庫存並設為目前庫存。
//
// 永不失敗：紀錄不存在是正常情況；紀錄損毀或無法讀取時記錄 log 並退回預設庫存。
func (s *Store) Load(ctx context.Context) prize.Inventory {
	inv, err := s.read(ctx, KeyProducts)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.log.Info("no persisted inventory, using defaults")
		inv = s.defaults.Clone()
	case err != nil:
		s.log.Warn("persisted inventory unavailable, using defaults", slog.Any("err", err))
		inv = s.defaults.Clone()
	}
	s.setCurrent(inv)
	return inv.Clone()
}

// Current 回傳目前 (已提交) 庫存的複本。
func (s *Store) Current() prize.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Defaults 回傳預設庫存的複本。
func (s *Store) Defaults() prize.Inventory { return s.defaults.Clone() }

// Stage 回傳以目前庫存為基礎、指定獎項數量減一的新庫存，不做任何寫入。
//
// 未知獎項或數量已為 0 時回傳未變動的複本與錯誤；呼叫端不應 stage 抽不到的獎項。
func (s *Store) Stage(id prize.ID) (prize.Inventory, error) {
	return StageFrom(s.Current(), id)
}

// StageFrom 是不依賴 Store 的 Stage，模擬器直接使用。
func StageFrom(inv prize.Inventory, id prize.ID) (prize.Inventory, error) {
	p, _, ok := inv.Get(id)
	if !ok {
		return inv.Clone(), errs.With(errs.ErrUnknownPrize, string(id), nil)
	}
	if p.Quantity <= 0 {
		return inv.Clone(), errs.With(errs.ErrOutOfStock, string(id), nil)
	}
	return inv.WithQuantity(id, p.Quantity-1)
}

// Commit 將 inv 寫入持久化紀錄，成功後才成為目前庫存。
//
// 寫入失敗時目前庫存不變，回傳錯誤。
func (s *Store) Commit(ctx context.Context, inv prize.Inventory) error {
	if !sameShape(s.defaults, inv) {
		return errs.NewFatal("commit: inventory does not match the prize table")
	}
	if err := s.write(ctx, KeyProducts, inv); err != nil {
		return errs.Wrap(err, "commit inventory")
	}
	s.setCurrent(inv)
	s.log.Info("inventory committed", slog.String("inventory", inv.String()))
	return nil
}

// Reset 還原預設庫存並寫入，同時丟棄暫定庫存紀錄。
func (s *Store) Reset(ctx context.Context) (prize.Inventory, error) {
	def := s.defaults.Clone()
	if err := s.write(ctx, KeyProducts, def); err != nil {
		return s.Current(), errs.Wrap(err, "reset inventory")
	}
	s.setCurrent(def)
	if err := s.ClearPending(ctx); err != nil {
		s.log.Warn("reset: clear pending record failed", slog.Any("err", err))
	}
	s.log.Info("inventory reset to defaults", slog.String("inventory", def.String()))
	return def, nil
}

// SavePending 保存暫定庫存，讓中斷的抽獎不會無聲消失。盡力而為，不具交易性。
func (s *Store) SavePending(ctx context.Context, inv prize.Inventory) error {
	return s.write(ctx, KeyPending, inv)
}

// Pending 讀取暫定庫存紀錄；不存在或損毀時回傳 false。
func (s *Store) Pending(ctx context.Context) (prize.Inventory, bool) {
	inv, err := s.read(ctx, KeyPending)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("pending inventory unreadable, ignoring", slog.Any("err", err))
		}
		return prize.Inventory{}, false
	}
	return inv, true
}

func (s *Store) ClearPending(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyPending)
}

func (s *Store) read(ctx context.Context, key string) (prize.Inventory, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return prize.Inventory{}, err
	}
	inv, ignored, err := Decode(s.defaults, raw)
	if err != nil {
		return prize.Inventory{}, err
	}
	if len(ignored) > 0 {
		s.log.Warn("record has unknown prize ids", slog.String("key", key), slog.Any("ids", ignored))
	}
	return inv, nil
}

func (s *Store) write(ctx context.Context, key string, inv prize.Inventory) error {
	raw, err := Encode(inv)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, key, raw)
}

func (s *Store) setCurrent(inv prize.Inventory) {
	s.mu.Lock()
	s.current = inv.Clone()
	s.mu.Unlock()
}

// sameShape 確認兩份庫存的獎項 id 與順序一致。
func sameShape(a, b prize.Inventory) bool {
	ids := func(inv prize.Inventory) []prize.ID {
		out := make([]prize.ID, 0, inv.Len())
		for _, p := range inv.Prizes() {
			out = append(out, p.ID)
		}
		return out
	}
	return slices.Equal(ids(a), ids(b))
}
