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
	"crypto/rand"
	"flag"
	"log"
	"math"
	"math/big"
	"os"
	"os/signal"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/config"
	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/sdk/core"
	"github.com/zintix-labs/prizewheel/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *simConfig = new(simConfig)

type simConfig struct {
	configPath string
	rounds     int
	deplete    bool
	seed       int64
	format     string
	weighting  string
	noBar      bool
	pprofmode  string
}

func bindVar() {
	flag.StringVar(&cfg.configPath, "config", "", "path to yaml config (optional)")
	flag.IntVar(&cfg.rounds, "rounds", 1000000, "number of draws")
	flag.BoolVar(&cfg.deplete, "deplete", false, "deduct stock after every draw")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.StringVar(&cfg.format, "format", "table", "output: table | json | yaml")
	flag.StringVar(&cfg.weighting, "weighting", "", "override weighting: stock | table")
	flag.BoolVar(&cfg.noBar, "q", false, "hide progress bar")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illegal -> random seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

func executeSimulator() error {
	if cfg.format == "" {
		cfg.format = "table"
	}
	render, ok := stats.RenderFor(cfg.format)
	if !ok {
		return errs.Warnf("unknown format %q (want table|json|yaml)", cfg.format)
	}
	c, err := config.Load(cfg.configPath)
	if err != nil {
		return err
	}
	inv, err := c.Inventory()
	if err != nil {
		return err
	}
	mode := c.Weighting()
	if cfg.weighting != "" {
		if mode, err = prize.ParseWeighting(cfg.weighting); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	alloc := allocator.New(core.NewWithSeed(cfg.seed), mode)
	var bar *pb.ProgressBar
	if !cfg.noBar {
		bar = pb.New(cfg.rounds)
		bar.SetWriter(os.Stderr)
		bar.Start()
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	if cfg.format == "table" {
		p.Printf("%s[WEIGHTING:%s] [DEPLETE:%t] [ROUNDS:%d] [SEED:%d]%s\n", green, mode, cfg.deplete, cfg.rounds, cfg.seed, reset)
	}

	rep, used, err := stats.Simulate(ctx, alloc, inv, cfg.rounds, cfg.deplete, bar)
	if err != nil {
		return err
	}
	rep.Seed = cfg.seed
	if cfg.format == "table" {
		rep.StdOut(os.Stdout, used)
		return nil
	}
	return rep.WriteWith(os.Stdout, render)
}
