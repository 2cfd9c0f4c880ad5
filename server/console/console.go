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

// Package console 以文字行模擬現場按鍵：
//
//	F9 / spin   開始抽獎
//	F4 / reset  重置庫存
//	空行 / close 關閉結果
//	status      印出目前狀態
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/spin"
)

// cmdTimeout 單一指令等待抽獎迴圈的時限
const cmdTimeout = 5 * time.Second

// Console 是 app.Component。輸入結束 (EOF) 後仍阻塞到 Shutdown，
// 避免在背景執行時因 stdin 關閉而讓整個服務停止。
type Console struct {
	in     io.Reader
	out    io.Writer
	client *spin.Client
	log    *slog.Logger

	stop chan struct{}
	once sync.Once
}

func New(in io.Reader, out io.Writer, client *spin.Client, log *slog.Logger) *Console {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Console{in: in, out: out, client: client, log: log, stop: make(chan struct{})}
}

func (c *Console) Run() error {
	go func() {
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case <-c.stop:
				return
			default:
			}
			c.Handle(sc.Text())
		}
		if err := sc.Err(); err != nil {
			c.log.Warn("console input closed", slog.Any("err", err))
		}
	}()
	<-c.stop
	return nil
}

func (c *Console) Shutdown(context.Context) error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// Handle 執行一行指令。
func (c *Console) Handle(line string) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	var err error
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "f9", "spin":
		err = c.client.Trigger(ctx)
	case "f4", "reset":
		err = c.client.Reset(ctx)
	case "", "close":
		err = c.client.Dismiss(ctx)
	case "status":
		var st spin.State
		if st, err = c.client.Snapshot(ctx); err == nil {
			c.printState(st)
		}
	default:
		fmt.Fprintf(c.out, "unknown command %q (F9|spin, F4|reset, close, status)\n", line)
		return
	}
	// 沒有結果時按 Enter 不算錯誤
	if cmd == "" && errs.Is(err, errs.KindNoResult) {
		return
	}
	if err != nil {
		fmt.Fprintf(c.out, "! %v\n", err)
	}
}

func (c *Console) printState(st spin.State) {
	fmt.Fprintf(c.out, "phase=%s input=%t", st.Phase, st.InputEnabled)
	if st.SessionID != "" {
		fmt.Fprintf(c.out, " session=%s prize=%s", st.SessionID, st.PrizeID)
	}
	if st.Result != nil {
		fmt.Fprintf(c.out, " result=%q", st.Result.Message)
	}
	fmt.Fprintln(c.out)
}
