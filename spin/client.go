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

package spin

import "context"

// Client 讓其他 goroutine (HTTP、主控台、排程) 透過 Loop 操作控制器。
//
// 每個操作恰好生效一次或完全不生效：回傳 ctx 錯誤代表操作沒有執行；
// 操作開始後即使 ctx 結束也會執行完畢，寫入不受 ctx 取消影響。
type Client struct {
	loop *Loop
	ctl  *Controller
}

func NewClient(loop *Loop, ctl *Controller) *Client {
	return &Client{loop: loop, ctl: ctl}
}

func (c *Client) do(ctx context.Context, fn func() error) error {
	var err error
	if lerr := c.loop.Do(ctx, func() { err = fn() }); lerr != nil {
		return lerr
	}
	return err
}

func (c *Client) Trigger(ctx context.Context) error {
	return c.do(ctx, func() error { return c.ctl.Trigger(ctx) })
}

func (c *Client) Dismiss(ctx context.Context) error {
	return c.do(ctx, func() error { return c.ctl.Dismiss(ctx) })
}

func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, func() error { return c.ctl.Reset(ctx) })
}

func (c *Client) Recover(ctx context.Context, policy RecoverPolicy) error {
	return c.do(ctx, func() error { return c.ctl.Recover(ctx, policy) })
}

// AnimationDone 轉交外部動畫器的完成通知。
func (c *Client) AnimationDone(ctx context.Context) error {
	return c.do(ctx, func() error { c.ctl.AnimationDone(); return nil })
}

func (c *Client) Snapshot(ctx context.Context) (State, error) {
	var st State
	err := c.do(ctx, func() error { st = c.ctl.Snapshot(); return nil })
	return st, err
}
