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

// Package jobs 放排程工作。目前只有定時補貨 (重置庫存)。
package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zintix-labs/prizewheel/errs"
)

// jobTimeout 單次工作最長執行時間
const jobTimeout = 30 * time.Second

// Restock 依 cron 表達式定時執行 reset。reset 由呼叫端提供，
// 通常是透過 spin.Client 在抽獎迴圈上執行的 Reset；抽獎進行中時回傳 busy，這一輪就跳過。
type Restock struct {
	c     *cron.Cron
	spec  string
	reset func(ctx context.Context) error
	log   *slog.Logger

	stop chan struct{}
	once sync.Once
}

// NewRestock 檢查 spec (標準五欄位 cron) 並註冊工作。loc 為 nil 時用本地時區。
func NewRestock(spec string, loc *time.Location, reset func(ctx context.Context) error, log *slog.Logger) (*Restock, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if loc == nil {
		loc = time.Local
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, errs.Configf("restock cron %q: %v", spec, err)
	}
	r := &Restock{
		c:     cron.New(cron.WithLocation(loc)),
		spec:  spec,
		reset: reset,
		log:   log,
		stop:  make(chan struct{}),
	}
	if _, err := r.c.AddFunc(spec, r.Fire); err != nil {
		return nil, errs.Configf("restock cron %q: %v", spec, err)
	}
	return r, nil
}

// Fire 立即執行一次補貨。
func (r *Restock) Fire() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	switch err := r.reset(ctx); {
	case err == nil:
		r.log.Info("scheduled restock done", slog.String("cron", r.spec))
	case errs.Is(err, errs.KindBusy):
		r.log.Warn("scheduled restock skipped, spin in progress", slog.String("cron", r.spec))
	default:
		r.log.Error("scheduled restock failed", slog.String("cron", r.spec), slog.Any("err", err))
	}
}

// Next 回傳下一次執行時間，未啟動時為零值。
func (r *Restock) Next() time.Time {
	entries := r.c.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Run 啟動排程並阻塞到 Shutdown。
func (r *Restock) Run() error {
	r.c.Start()
	r.log.Info("restock scheduler started", slog.String("cron", r.spec))
	<-r.stop
	return nil
}

// Shutdown 停止排程並等待執行中的工作結束。
func (r *Restock) Shutdown(ctx context.Context) error {
	r.once.Do(func() { close(r.stop) })
	done := r.c.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
