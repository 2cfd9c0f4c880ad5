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

// Package telemetry 在每次抽獎結果揭曉時送出一筆參與紀錄。
//
// 送出是 fire-and-forget：不重試、不影響本地狀態，成功與失敗都只寫 log。
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zintix-labs/prizewheel/errs"
)

// Record 是一筆參與紀錄。Stocks 依獎項名次排列，取自尚未提交的暫定庫存。
type Record struct {
	ParticipationID   string
	ParticipationTime time.Time
	Prize             string
	Stocks            []int
}

var stockFields = [...]string{"firstStock", "secondStock", "thirdStock", "fourthStock", "fifthStock", "sixthStock"}

// Form 把紀錄編成表單欄位。超過六個獎項時以 stock7, stock8... 延伸。
func (r Record) Form(layout string, loc *time.Location) url.Values {
	v := url.Values{}
	v.Set("participationId", r.ParticipationID)
	v.Set("participationTime", FormatTime(r.ParticipationTime, layout, loc))
	v.Set("prize", r.Prize)
	for i, q := range r.Stocks {
		name := "stock" + strconv.Itoa(i+1)
		if i < len(stockFields) {
			name = stockFields[i]
		}
		v.Set(name, strconv.Itoa(q))
	}
	return v
}

// FormatTime 依 layout 格式化時間；layout 為空時輸出韓文語系的在地格式，
// 例如 "2024. 11. 5. 오후 3:04:05"。
func FormatTime(t time.Time, layout string, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	if layout != "" {
		return t.Format(layout)
	}
	ampm := "오전"
	h := t.Hour()
	if h >= 12 {
		ampm = "오후"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d", t.Year(), int(t.Month()), t.Day(), ampm, h, t.Minute(), t.Second())
}

// Reporter 接收參與紀錄。Report 不得阻塞呼叫端。
type Reporter interface {
	Report(ctx context.Context, rec Record)
}

// Nop 丟棄所有紀錄，未設定 URL 時使用。
type Nop struct{}

func (Nop) Report(context.Context, Record) {}

// HTTPReporter 以 application/x-www-form-urlencoded POST 送出紀錄。
type HTTPReporter struct {
	url    string
	client *http.Client
	layout string
	loc    *time.Location
	log    *slog.Logger
	wg     sync.WaitGroup
}

type Option func(*HTTPReporter)

func WithClient(c *http.Client) Option { return func(h *HTTPReporter) { h.client = c } }
func WithTimeLayout(layout string) Option { return func(h *HTTPReporter) { h.layout = layout } }
func WithLocation(loc *time.Location) Option { return func(h *HTTPReporter) { h.loc = loc } }

func NewHTTPReporter(endpoint string, log *slog.Logger, opts ...Option) *HTTPReporter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &HTTPReporter{
		url:    endpoint,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Report 在背景 goroutine 送出紀錄後立即返回。
//
// 送出時使用獨立的 context：呼叫端的 ctx 只用來帶 log 屬性，
// 抽獎流程結束不應該取消已經排出的紀錄。
func (h *HTTPReporter) Report(ctx context.Context, rec Record) {
	body := rec.Form(h.layout, h.loc).Encode()
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.send(context.WithoutCancel(ctx), body); err != nil {
			h.log.Warn("telemetry failed",
				slog.String("participation_id", rec.ParticipationID),
				slog.Any("err", err),
			)
		}
	}()
}

func (h *HTTPReporter) send(ctx context.Context, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, strings.NewReader(body))
	if err != nil {
		return errs.With(errs.ErrTelemetryFailure, "build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	resp, err := h.client.Do(req)
	if err != nil {
		return errs.With(errs.ErrTelemetryFailure, "post", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.With(errs.ErrTelemetryFailure, "status "+resp.Status, nil)
	}
	h.log.Info("telemetry sent", slog.Int("status", resp.StatusCode))
	return nil
}

// Wait 等待所有已排出的紀錄送完（成功或失敗），關機與測試使用。
func (h *HTTPReporter) Wait() { h.wg.Wait() }
