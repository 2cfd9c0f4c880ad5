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

package app

import (
	"context"
	"errors"
	"sync"
)

// Component 是可啟動、可關閉的長期元件。
//   - Run 阻塞到元件停止。
//   - Shutdown 要求停止，須尊重 ctx 期限。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Func 把「執行到 ctx 結束」形式的函式包成 Component。
type Func struct {
	run    func(ctx context.Context) error
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewFunc(run func(ctx context.Context) error) *Func {
	ctx, cancel := context.WithCancel(context.Background())
	return &Func{run: run, ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// Run 執行 run；因 Shutdown 而結束時回傳 nil。
func (f *Func) Run() error {
	defer f.once.Do(func() { close(f.done) })
	err := f.run(f.ctx)
	if errors.Is(err, context.Canceled) && f.ctx.Err() != nil {
		return nil
	}
	return err
}

func (f *Func) Shutdown(ctx context.Context) error {
	f.cancel()
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
