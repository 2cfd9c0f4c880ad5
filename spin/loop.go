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

package spin

import (
	"context"
	"io"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/zintix-labs/prizewheel/errs"
)

// Scheduler 排程延遲回呼。回呼一律在控制器所在的 goroutine 執行。
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

var ErrLoopClosed = errs.NewWarn("spin loop closed")

// Loop 是單一 goroutine 的序列執行器。
//
// 控制器的所有方法都必須經由 Loop 執行：HTTP handler、主控台按鍵、排程工作與計時器
// 只會 Post 閉包進來，因此控制器本身不需要任何鎖。
type Loop struct {
	ch   chan func()
	done chan struct{}
	log  *slog.Logger
}

func NewLoop(buf int, log *slog.Logger) *Loop {
	if buf <= 0 {
		buf = 64
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{ch: make(chan func(), buf), done: make(chan struct{}), log: log}
}

// Post 把 fn 排入佇列，不等待執行。Loop 已結束時回傳 false。
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case <-l.done:
		return false
	case l.ch <- fn:
		return true
	}
}

// Do 在 Loop 上執行 fn 並等待完成。
//
// 回傳 ctx.Err() 時 fn 保證沒有執行；fn 一旦開始執行就等它完成並回傳 nil，
// 呼叫端不會收到逾時卻發現操作其實已生效。
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var claimed atomic.Bool
	finished := make(chan struct{})
	if !l.Post(func() {
		if !claimed.CompareAndSwap(false, true) {
			return
		}
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		if claimed.CompareAndSwap(false, true) {
			return ctx.Err()
		}
		<-finished
		return nil
	case <-l.done:
		if claimed.CompareAndSwap(false, true) {
			return ErrLoopClosed
		}
		<-finished
		return nil
	}
}

// AfterFunc 以真實時間計時，到期後把 fn 投回 Loop。
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Run 持續執行佇列中的閉包直到 ctx 結束。
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.ch:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			l.log.Error("spin loop panic", slog.Any("panic", rec), slog.String("stack", string(debug.Stack())))
		}
	}()
	fn()
}
