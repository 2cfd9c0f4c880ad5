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

// Package stats 以大量模擬抽獎驗證獎項機率，並輸出報表。
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// confidence 報表信賴水準
const confidence = 0.95

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// Report 模擬報告
type Report struct {
	Title     string      `json:"Title" yaml:"Title"`
	Weighting string      `json:"Weighting" yaml:"Weighting"`
	Deplete   bool        `json:"Deplete" yaml:"Deplete"`
	Rounds    int         `json:"Rounds" yaml:"Rounds"`
	Drawn     int         `json:"Drawn" yaml:"Drawn"`
	Exhausted bool        `json:"Exhausted" yaml:"Exhausted"`
	Seed      int64       `json:"Seed" yaml:"Seed"`
	Prizes    []PrizeStat `json:"Prizes" yaml:"Prizes"`
	isDone    bool
}

// PrizeStat 單一獎項統計
//
// Expected 只在固定庫存模擬時有意義 (票數 / 總票數)；耗盡模擬時為 0。
type PrizeStat struct {
	ID        string  `json:"ID" yaml:"ID"`
	Name      string  `json:"Name" yaml:"Name"`
	Rank      int     `json:"Rank" yaml:"Rank"`
	Tickets   int     `json:"Tickets" yaml:"Tickets"`
	Hits      int     `json:"Hits" yaml:"Hits"`
	Remaining int     `json:"Remaining" yaml:"Remaining"`
	Expected  float64 `json:"Expected" yaml:"Expected"`
	Rate      float64 `json:"Rate" yaml:"Rate"`
	RateCI    CI      `json:"RateCI" yaml:"RateCI"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 由命中次數計算中獎率與信賴區間。重複呼叫無作用。
func (r *Report) Done() {
	if r.isDone {
		return
	}
	for i := range r.Prizes {
		p := &r.Prizes[i]
		p.Rate, p.RateCI = proportionCICP(p.Hits, r.Drawn, confidence)
	}
	r.isDone = true
}

// Within 回傳每個獎項的期望機率是否落在 95% 信賴區間內 (只檢查固定庫存模擬)。
func (r *Report) Within() bool {
	r.Done()
	if r.Deplete {
		return true
	}
	for _, p := range r.Prizes {
		if p.Expected < p.RateCI.Lo || p.Expected > p.RateCI.Hi {
			return false
		}
	}
	return true
}

func (r *Report) WriteWith(w io.Writer, rep Render) error {
	r.Done()
	return rep.Write(w, r)
}

// StdOut 輸出耗時與表格
func (r *Report) StdOut(w io.Writer, used time.Duration) {
	r.Done()
	fmt.Fprint(w, formatDuration(used, r.Drawn))
	keys, msg := r.fmtBasic()
	fmt.Fprint(w, fmtTable(r.Title, keys, msg))
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, draws int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	dps := int(float64(draws) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\ndps : %d draws/sec\n", sec, dps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\ndps : %d draws/sec\n", m, s, dps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\ndps : %d draws/sec\n", h, m, s, dps)
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	keys := []string{"Weighting", "Deplete", "Rounds", "Drawn", "Exhausted"}
	basic := map[string]string{
		"Weighting": r.Weighting,
		"Deplete":   fmt.Sprintf("%t", r.Deplete),
		"Rounds":    p.Sprintf("%d", r.Rounds),
		"Drawn":     p.Sprintf("%d", r.Drawn),
		"Exhausted": fmt.Sprintf("%t", r.Exhausted),
	}
	for _, ps := range r.Prizes {
		k := fmt.Sprintf("#%d %s", ps.Rank+1, ps.Name)
		v := p.Sprintf("%d hits  %.3f%% [%.3f%%,%.3f%%]", ps.Hits, 100*ps.Rate, 100*ps.RateCI.Lo, 100*ps.RateCI.Hi)
		if !r.Deplete {
			v += p.Sprintf("  exp %.3f%%", 100*ps.Expected)
		} else {
			v += p.Sprintf("  left %d", ps.Remaining)
		}
		keys = append(keys, k)
		basic[k] = v
	}
	return keys, basic
}

// fmtTable 以顯示寬度對齊 (韓文/中文字元佔兩格)。
func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2
	if tw := runewidth.StringWidth(title); tw > maxKeyLen+maxValLen+1 {
		maxValLen = tw - maxKeyLen - 1
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
