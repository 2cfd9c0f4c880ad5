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

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/config"
	"github.com/zintix-labs/prizewheel/inventory"
	"github.com/zintix-labs/prizewheel/jobs"
	"github.com/zintix-labs/prizewheel/media"
	"github.com/zintix-labs/prizewheel/sdk/core"
	"github.com/zintix-labs/prizewheel/server"
	"github.com/zintix-labs/prizewheel/server/app"
	"github.com/zintix-labs/prizewheel/server/console"
	"github.com/zintix-labs/prizewheel/server/svrcfg"
	"github.com/zintix-labs/prizewheel/spin"
	"github.com/zintix-labs/prizewheel/storage"
	"github.com/zintix-labs/prizewheel/telemetry"
)

// run 依設定組裝所有元件並阻塞到服務結束。
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer kv.Close()

	defaults, err := cfg.Inventory()
	if err != nil {
		return err
	}
	store := inventory.New(kv, defaults, log.With(slog.String("component", "inventory")))
	store.Load(ctx)

	rng := core.NewDefault()
	if cfg.Draw.Seed > 0 {
		rng = core.NewWithSeed(cfg.Draw.Seed)
	}
	alloc := allocator.New(rng, cfg.Weighting())

	loop := spin.NewLoop(64, log)
	spinLog := log.With(slog.String("component", "spin"))
	reporter, waitReports := buildReporter(cfg, log)
	defer waitReports()
	player, waitCues := buildPlayer(cfg, log)
	defer waitCues()

	ctl := spin.NewController(spin.Deps{
		Store:     store,
		Allocator: alloc,
		Scheduler: loop,
		Animator:  media.NewTimedAnimator(loop, cfg.Timing.Animation, spinLog),
		Player:    player,
		View:      spin.NewLogView(spinLog),
		Reporter:  reporter,
		Log:       spinLog,
	}, cfg.SpinTiming())

	// 迴圈尚未啟動，這裡直接在本 goroutine 上處理遺留的暫定庫存
	if err := ctl.Recover(ctx, cfg.RecoverPolicy()); err != nil {
		log.Warn("recover pending inventory failed", slog.Any("err", err))
	}
	client := spin.NewClient(loop, ctl)

	var comps []app.Component
	if cfg.Console {
		comps = append(comps, console.New(os.Stdin, os.Stdout, client, log))
	}
	if cfg.RestockCron != "" {
		r, err := jobs.NewRestock(cfg.RestockCron, cfg.TelemetryLocation(), client.Reset, log.With(slog.String("component", "jobs")))
		if err != nil {
			return err
		}
		comps = append(comps, r)
	}
	// 抽獎迴圈最後關閉
	comps = append(comps, app.NewFunc(loop.Run))

	sCfg := &svrcfg.SvrCfg{
		Log:         log,
		Addr:        cfg.Addr,
		Client:      client,
		Store:       store,
		Allocator:   alloc,
		CORSOrigins: cfg.CORSOrigins,
	}
	return server.Run(ctx, sCfg, comps...)
}

func buildPlayer(cfg config.Config, log *slog.Logger) (media.Player, func()) {
	if cfg.Audio.Command == "" {
		return media.NewLogPlayer(log), func() {}
	}
	cues := make(map[media.Cue]string, len(cfg.Audio.Cues))
	for k, v := range cfg.Audio.Cues {
		cues[media.Cue(k)] = v
	}
	p := media.NewCommandPlayer(cfg.Audio.Command, cfg.Audio.Args, cues, log.With(slog.String("component", "media")))
	return p, p.Wait
}

// buildReporter 回傳 reporter 與關機時等待送出中紀錄的函式。
func buildReporter(cfg config.Config, log *slog.Logger) (telemetry.Reporter, func()) {
	if cfg.Telemetry.URL == "" {
		return telemetry.Nop{}, func() {}
	}
	h := telemetry.NewHTTPReporter(cfg.Telemetry.URL, log.With(slog.String("component", "telemetry")),
		telemetry.WithClient(&http.Client{Timeout: cfg.Telemetry.Timeout}),
		telemetry.WithTimeLayout(cfg.Telemetry.TimeLayout),
		telemetry.WithLocation(cfg.TelemetryLocation()),
	)
	return h, h.Wait
}
