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

package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zintix-labs/prizewheel/errs"
)

// FileStore 以目錄保存紀錄，每個 key 一個 <key>.json 檔。
//
// 寫入流程：暫存檔 → fsync → rename 覆蓋。rename 在同一檔案系統上是原子的，
// 當機時只會留下舊檔或新檔。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "storage: create dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errs.WrapWithExtra(err, "storage: read", key)
	}
	return b, nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return errs.WrapWithExtra(err, "storage: create temp", key)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return errs.WrapWithExtra(err, "storage: write temp", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errs.WrapWithExtra(err, "storage: sync temp", key)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errs.WrapWithExtra(err, "storage: close temp", key)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		cleanup()
		return errs.WrapWithExtra(err, "storage: rename", key)
	}
	syncDir(s.dir)
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errs.WrapWithExtra(err, "storage: delete", key)
	}
	syncDir(s.dir)
	return nil
}

func (s *FileStore) Close() error { return nil }

// syncDir 讓 rename 本身也落地；部分平台不支援對目錄 fsync，失敗就略過。
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
