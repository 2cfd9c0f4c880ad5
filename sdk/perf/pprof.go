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

// Package perf 以 pprof 包住一段執行，給模擬器做效能分析。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/prizewheel/errs"
)

// DefaultDir 預設的 profile 輸出目錄
const DefaultDir = "build/profiling"

// Run 依 mode 執行 exe 並寫出 profile：
//   - ""：只執行
//   - cpu：執行期間的 CPU profile
//   - heap：執行後 GC 再寫 in-use heap
//   - allocs：執行後寫累積配置
//
// 回傳 exe 的錯誤；profile 寫入失敗也會回傳錯誤。
func Run(exe func() error, mode string, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	switch mode {
	case "":
		return exe()
	case "cpu", "heap", "allocs":
	default:
		return errs.Warnf("unknown pprof mode %q (want cpu|heap|allocs)", mode)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create profiling dir")
	}
	f, err := os.Create(filepath.Join(dir, mode+".pprof"))
	if err != nil {
		return errs.Wrap(err, "create profile")
	}
	defer f.Close()

	if mode == "cpu" {
		if err := pprof.StartCPUProfile(f); err != nil {
			return errs.Wrap(err, "start cpu profile")
		}
		defer pprof.StopCPUProfile()
		return exe()
	}

	runErr := exe()
	if mode == "heap" {
		// 讓快照貼近存活物件
		runtime.GC()
	}
	if prof := pprof.Lookup(mode); prof != nil {
		if err := prof.WriteTo(f, 0); err != nil {
			return errs.Wrap(err, "write "+mode+" profile")
		}
	}
	return runErr
}
