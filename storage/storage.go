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

// Package storage 提供以固定名稱為 key 的持久化紀錄 (record)。
//
// 每筆紀錄都是整筆覆寫：Put 回傳前資料已落地，且讀取端只會看到舊值或新值，
// 不會看到寫到一半的內容。
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/zintix-labs/prizewheel/errs"
)

// Store 是紀錄的存取介面。
type Store interface {
	// Get 讀取紀錄；不存在時回傳 ErrNotFound。
	Get(ctx context.Context, key string) ([]byte, error)
	// Put 以原子方式整筆覆寫紀錄。
	Put(ctx context.Context, key string, value []byte) error
	// Delete 刪除紀錄；不存在不算錯誤。
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrNotFound = errs.NewLog("storage: record not found")

// Driver 名稱
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open 依 driver 建立 Store。file 的 path 是目錄；sqlite 的 path 是資料庫檔案。
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverFile, "":
		return NewFileStore(path)
	case DriverSQLite:
		return NewSQLiteStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errs.Configf("unknown storage driver %q (want file|sqlite|memory)", driver)
	}
}

// validKey 限制 key 為單純檔名，避免 file driver 寫到目錄外。
func validKey(key string) error {
	if key == "" {
		return errs.NewFatal("storage: empty key")
	}
	if strings.ContainsAny(key, `/\:`) || strings.HasPrefix(key, ".") {
		return errs.NewFatal(fmt.Sprintf("storage: invalid key %q", key))
	}
	return nil
}
