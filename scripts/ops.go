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
	"fmt"
	"os"
	"sort"
)

// task 是一個開發指令：依序執行 steps，filter 決定輸出哪些行。
type task struct {
	desc   string
	steps  [][]string
	filter lineFilter
}

var tasks = map[string]task{
	"test": {
		desc:   "go test ./... (summary only)",
		steps:  [][]string{{"go", "clean", "-testcache"}, {"go", "test", "./...", "-cover", "-count=1"}},
		filter: summaryOnly,
	},
	"test-detail": {
		desc:   "go test ./... -v",
		steps:  [][]string{{"go", "clean", "-testcache"}, {"go", "test", "./...", "-v", "-count=1"}},
		filter: skipNoTestFiles,
	},
	"race": {
		desc:   "go test -race on the spin loop and server",
		steps:  [][]string{{"go", "test", "-race", "-count=1", "./spin/...", "./server/...", "./telemetry/..."}},
		filter: summaryOnly,
	},
	"sim": {
		desc:  "one million draws against the built-in prize table",
		steps: [][]string{{"go", "run", "./cmd/sim", "-rounds", "1000000"}},
	},
	"sim-deplete": {
		desc:  "run a whole event until every prize is gone",
		steps: [][]string{{"go", "run", "./cmd/sim", "-deplete", "-rounds", "100000"}},
	},
	"serve": {
		desc:  "start the wheel with the key console",
		steps: [][]string{{"go", "run", "./cmd/wheel", "-console", "-log-mode", "dev"}},
	},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		printYellow(fmt.Sprintf("Unknown task: %s", os.Args[1]))
		usage()
		os.Exit(1)
	}
	if err := t.run(); err != nil {
		printRed(fmt.Sprintf("\n%s finished with errors: %v", os.Args[1], err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: go run ./scripts [task]")
	names := make([]string, 0, len(tasks))
	for n := range tasks {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].desc)
	}
}
