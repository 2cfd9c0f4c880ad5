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

package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Render 定義報表輸出格式
type Render interface {
	Write(w io.Writer, r *Report) error
}

// JSONRender 單行 JSON
type JSONRender struct{}

func (JSONRender) Write(w io.Writer, r *Report) error {
	return json.NewEncoder(w).Encode(r)
}

// YAMLRender 最內層陣列以 flow style 輸出
type YAMLRender struct{}

func (YAMLRender) Write(w io.Writer, r *Report) error {
	var node yaml.Node
	if err := node.Encode(r); err != nil {
		return err
	}
	flowLeaves(&node)
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

// TableRender 主控台表格 (不含耗時)
type TableRender struct{}

func (TableRender) Write(w io.Writer, r *Report) error {
	keys, msg := r.fmtBasic()
	_, err := io.WriteString(w, fmtTable(r.Title, keys, msg))
	return err
}

// RenderFor 依名稱取得輸出格式：table | json | yaml
func RenderFor(name string) (Render, bool) {
	switch name {
	case "", "table":
		return TableRender{}, true
	case "json":
		return JSONRender{}, true
	case "yaml":
		return YAMLRender{}, true
	}
	return nil, false
}

// flowLeaves 把不含子序列的序列改成 [a, b] 形式；mapping 序列 (例如 Prizes) 保持展開。
func flowLeaves(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			flowLeaves(c)
		}
	case yaml.SequenceNode:
		scalarOnly := true
		for _, c := range n.Content {
			if c != nil && c.Kind != yaml.ScalarNode {
				scalarOnly = false
			}
			flowLeaves(c)
		}
		if scalarOnly {
			n.Style = yaml.FlowStyle
		}
	}
}
