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
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/prizewheel/config"
	"github.com/zintix-labs/prizewheel/server/logger"
)

// 現場轉盤服務：操作 API + 主控台按鍵 + 定時補貨。
func main() {
	opts := bindFlags()
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if opts.logMode != "" {
		cfg.LogMode = opts.logMode
	}
	if opts.console {
		cfg.Console = true
	}

	log, ah := logger.NewAsync(4096, logger.ParseLogMode(cfg.LogMode))
	err = run(context.Background(), cfg, log)
	if err != nil {
		log.Error("prizewheel stopped", slog.Any("err", err))
	}
	ah.Close()
	if err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	logMode    string
	console    bool
}

func bindFlags() flags {
	f := flags{}
	flag.StringVar(&f.configPath, "config", "", "path to yaml config (optional)")
	flag.StringVar(&f.logMode, "log-mode", "", "log mode override: dev|prod|silence")
	flag.BoolVar(&f.console, "console", false, "read F9/F4/close commands from stdin")
	flag.Parse()
	return f
}
