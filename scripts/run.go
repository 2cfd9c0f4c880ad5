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
	"bufio"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
)

var (
	printGreen  = color.New(color.FgGreen).PrintlnFunc()
	printRed    = color.New(color.FgRed).PrintlnFunc()
	printYellow = color.New(color.FgYellow).PrintlnFunc()
)

// lineFilter 回傳 false 的行不輸出。
type lineFilter func(line string) bool

// summaryOnly 只留 ok / FAIL 與編譯失敗。
func summaryOnly(line string) bool {
	return strings.HasPrefix(line, "ok") || strings.HasPrefix(line, "FAIL") ||
		strings.Contains(line, "build failed") || strings.Contains(line, "setup failed")
}

func skipNoTestFiles(line string) bool { return !strings.Contains(line, "[no test files]") }

func (t task) run() error {
	for _, argv := range t.steps {
		printGreen(strings.Join(argv, " "))
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = os.Stdin
		if t.filter == nil {
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if err := cmd.Run(); err != nil {
				return err
			}
			continue
		}
		if err := runFiltered(cmd, t.filter); err != nil {
			return err
		}
	}
	return nil
}

// runFiltered 合併 stdout/stderr，逐行上色輸出。
func runFiltered(cmd *exec.Cmd, keep lineFilter) error {
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		if !keep(line) {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ok"):
			printGreen(line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "failed"):
			printRed(line)
		default:
			os.Stdout.WriteString(line + "\n")
		}
	}
	if err := sc.Err(); err != nil {
		printRed(err.Error())
	}
	return cmd.Wait()
}
