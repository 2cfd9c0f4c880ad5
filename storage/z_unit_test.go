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
	"os"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "products"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
	if err := s.Put(ctx, "products", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "products", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, "products")
	if err != nil || string(got) != `{"a":2}` {
		t.Fatalf("get after overwrite: %q %v", got, err)
	}
	if err := s.Delete(ctx, "products"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "products"); err != nil {
		t.Fatalf("delete of missing key must not fail: %v", err)
	}
	if _, err := s.Get(ctx, "products"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Put(ctx, "../escape", []byte("x")); err == nil {
		t.Fatalf("path-like key must be rejected")
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	exerciseStore(t, s)

	// 覆寫後不應留下暫存檔
	if err := s.Put(context.Background(), "updatedProducts", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "updatedProducts.json")); err != nil {
		t.Fatalf("record file missing: %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseStore(t, s)

	// 重新開啟後資料仍在
	if err := s.Put(context.Background(), "products", []byte("persist")); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()
	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Get(context.Background(), "products")
	if err != nil || string(got) != "persist" {
		t.Fatalf("reopen: %q %v", got, err)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	exerciseStore(t, m)
	boom := errors.New("disk full")
	m.FailPut = boom
	if err := m.Put(context.Background(), "products", nil); !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}
}

func TestOpenDrivers(t *testing.T) {
	if _, err := Open("postgres", ""); err == nil {
		t.Fatalf("unknown driver must fail")
	}
	s, err := Open("memory", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("unexpected store type %T", s)
	}
}
