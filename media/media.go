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

// Package media 提供轉盤的音效播放與無畫面動畫器。
//
// 兩者都不會回報錯誤給呼叫端：播放失敗只記 log，流程照計時器繼續。
package media

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/zintix-labs/prizewheel/errs"
)

// Cue 是音效代號。
type Cue string

const (
	CueWheel Cue = "wheel"
	CueWin1  Cue = "win1"
	CueWin   Cue = "win"
)

// Player 播放音效，不得阻塞呼叫端。
type Player interface {
	Play(ctx context.Context, cue Cue)
}

func discard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}

// LogPlayer 只把音效寫進 log，給無喇叭的環境與測試使用。
type LogPlayer struct {
	log *slog.Logger
}

func NewLogPlayer(log *slog.Logger) *LogPlayer {
	return &LogPlayer{log: discard(log)}
}

func (p *LogPlayer) Play(_ context.Context, cue Cue) {
	p.log.Info("audio cue", slog.String("cue", string(cue)))
}

// CommandPlayer 以外部指令播放音效檔，例如 `afplay` 或 `paplay`。
// 每個 cue 一個 goroutine，指令失敗記為 PlaybackFailure。
type CommandPlayer struct {
	bin   string
	args  []string
	files map[Cue]string
	log   *slog.Logger
	wg    sync.WaitGroup
}

func NewCommandPlayer(bin string, args []string, files map[Cue]string, log *slog.Logger) *CommandPlayer {
	f := make(map[Cue]string, len(files))
	for k, v := range files {
		f[k] = v
	}
	return &CommandPlayer{bin: bin, args: append([]string(nil), args...), files: f, log: discard(log)}
}

func (p *CommandPlayer) Play(ctx context.Context, cue Cue) {
	file, ok := p.files[cue]
	if !ok {
		p.log.Warn("audio cue failed", slog.Any("err", errs.With(errs.ErrPlaybackFailure, string(cue), nil)))
		return
	}
	argv := append(append([]string(nil), p.args...), file)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		cmd := exec.CommandContext(context.WithoutCancel(ctx), p.bin, argv...)
		if err := cmd.Run(); err != nil {
			p.log.Warn("audio cue failed", slog.Any("err", errs.With(errs.ErrPlaybackFailure, string(cue), err)))
		}
	}()
}

// Wait 等待所有播放中的指令結束。
func (p *CommandPlayer) Wait() { p.wg.Wait() }

// Timer 排程延遲回呼。spin.Scheduler 滿足此介面。
type Timer interface {
	AfterFunc(d time.Duration, fn func())
}

// TimedAnimator 以固定長度模擬轉盤動畫：Start 後經過 duration 呼叫 onDone。
type TimedAnimator struct {
	timer    Timer
	duration time.Duration
	log      *slog.Logger
}

func NewTimedAnimator(timer Timer, duration time.Duration, log *slog.Logger) *TimedAnimator {
	return &TimedAnimator{timer: timer, duration: duration, log: discard(log)}
}

func (a *TimedAnimator) Duration() time.Duration { return a.duration }

func (a *TimedAnimator) Start(rank int, onDone func()) {
	a.log.Info("wheel spinning", slog.Int("target_rank", rank), slog.Duration("duration", a.duration))
	a.timer.AfterFunc(a.duration, onDone)
}
