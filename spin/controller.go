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

// Package spin 實作一輪抽獎的狀態機。
//
//	Idle → Drawing → Animating → RevealPending → ResultShown → Idle
//
// Drawing 階段抽出獎項並算出暫定庫存，之後直到使用者關閉結果前都不寫入正式庫存。
// 控制器不持有鎖：所有方法與回呼都必須在同一個 Loop 上執行。
package spin

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/inventory"
	"github.com/zintix-labs/prizewheel/media"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/result"
	"github.com/zintix-labs/prizewheel/sdk/core"
	"github.com/zintix-labs/prizewheel/telemetry"
)

// ExhaustedMessage 是所有獎項抽完時提示使用者的訊息。
const ExhaustedMessage = "모든 상품이 소진되었습니다! 😭"

// participationIDLimit 參與編號範圍 [0, 10000)。
const participationIDLimit = 10000

// Timing 是流程中的固定等待時間。
type Timing struct {
	RevealDelay     time.Duration // 開始轉動到進入揭曉
	OverlayDuration time.Duration // 頭獎慶祝畫面
	CueDuration     time.Duration // 第一段結果音效長度，之後接第二段
}

func DefaultTiming() Timing {
	return Timing{
		RevealDelay:     3 * time.Second,
		OverlayDuration: 4 * time.Second,
		CueDuration:     3 * time.Second,
	}
}

// RecoverPolicy 決定啟動時遺留的暫定庫存怎麼處理。
type RecoverPolicy uint8

const (
	RecoverCommit RecoverPolicy = iota
	RecoverDiscard
)

func (p RecoverPolicy) String() string {
	if p == RecoverDiscard {
		return "discard"
	}
	return "commit"
}

func ParseRecoverPolicy(s string) (RecoverPolicy, error) {
	switch s {
	case "", "commit":
		return RecoverCommit, nil
	case "discard":
		return RecoverDiscard, nil
	}
	return RecoverCommit, errs.Configf("unknown recover policy %q", s)
}

// Deps 是控制器的協作者。Store、Allocator、Scheduler、Animator 必填，其餘可為 nil。
type Deps struct {
	Store     *inventory.Store
	Allocator *allocator.Allocator
	Scheduler Scheduler
	Animator  Animator
	Player    media.Player
	View      View
	Reporter  telemetry.Reporter
	IDs       *core.Core
	Now       func() time.Time
	Log       *slog.Logger
}

// Session 是進行中的一輪抽獎，抽獎時建立，關閉結果或重置時銷毀。
type Session struct {
	ID        string
	Pick      allocator.Pick
	Tentative prize.Inventory
	// HasDelta 為 false 代表抽中的是已無庫存的「沒中獎」，關閉時不需提交。
	HasDelta  bool
	StartedAt time.Time

	animationDone bool
	revealDone    bool
}

// Controller 是抽獎狀態機。
type Controller struct {
	store   *inventory.Store
	alloc   *allocator.Allocator
	sched   Scheduler
	anim    Animator
	player  media.Player
	view    View
	report  telemetry.Reporter
	ids     *core.Core
	now     func() time.Time
	log     *slog.Logger
	timing  Timing
	baseCtx context.Context

	phase     Phase
	input     bool
	sess      *Session
	last      *result.View
	overlay   bool
	// unsettled 是已交出獎品但提交失敗的庫存，成功寫入前作為下一輪抽獎的基準。
	unsettled *prize.Inventory
}

func NewController(d Deps, t Timing) *Controller {
	c := &Controller{
		store:   d.Store,
		alloc:   d.Allocator,
		sched:   d.Scheduler,
		anim:    d.Animator,
		player:  d.Player,
		view:    d.View,
		report:  d.Reporter,
		ids:     d.IDs,
		now:     d.Now,
		log:     d.Log,
		timing:  t,
		baseCtx: context.Background(),
		phase:   Idle,
		input:   true,
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.player == nil {
		c.player = media.NewLogPlayer(c.log)
	}
	if c.view == nil {
		c.view = NewLogView(c.log)
	}
	if c.report == nil {
		c.report = telemetry.Nop{}
	}
	if c.ids == nil {
		c.ids = core.NewDefault()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if a, ok := c.anim.(interface{ Duration() time.Duration }); ok && a.Duration() != t.RevealDelay {
		c.log.Warn("reveal delay differs from animation duration",
			slog.Duration("reveal_delay", t.RevealDelay),
			slog.Duration("animation", a.Duration()),
		)
	}
	return c
}

// Phase 回傳目前階段。
func (c *Controller) Phase() Phase { return c.phase }

// Session 回傳進行中的抽獎，沒有時為 nil。
func (c *Controller) Session() *Session { return c.sess }

// InputEnabled 回傳抽獎按鈕目前是否可按。
func (c *Controller) InputEnabled() bool { return c.input }

// Trigger 開始新的一輪抽獎。
//
// 非 Idle 時忽略並回傳 ErrBusy。所有獎項都抽不到時提示使用者、重新開放按鈕、
// 回到 Idle 並回傳 ErrExhaustedInventory，不產生暫定庫存也不寫入任何紀錄。
func (c *Controller) Trigger(ctx context.Context) error {
	if c.phase != Idle {
		c.log.Debug("spin trigger ignored", slog.String("phase", c.phase.String()))
		return errs.With(errs.ErrBusy, c.phase.String(), nil)
	}
	c.setPhase(Drawing)
	c.setInput(false)
	// 已排入 Loop 的操作不可中途取消，否則會留下畫面與庫存不一致的狀態
	wctx := context.WithoutCancel(ctx)

	inv := c.base()
	pick, err := c.alloc.Draw(inv)
	if err != nil {
		c.abort(err)
		return err
	}

	tentative, err := inventory.StageFrom(inv, pick.PrizeID)
	hasDelta := true
	if err != nil {
		// 沒中獎的獎項數量為 0 時仍可被抽中，只是沒有庫存可扣
		if !pick.NoWin || !errs.Is(err, errs.KindOutOfStock) {
			c.abort(err)
			return err
		}
		hasDelta = false
	}

	s := &Session{
		ID:        uuid.NewString(),
		Pick:      pick,
		Tentative: tentative,
		HasDelta:  hasDelta,
		StartedAt: c.now(),
	}
	c.sess = s
	c.last = nil
	if hasDelta {
		if err := c.store.SavePending(wctx, tentative); err != nil {
			c.log.Warn("save pending inventory failed", slog.String("session", s.ID), slog.Any("err", err))
		}
	}
	c.log.Info("prize drawn",
		slog.String("session", s.ID),
		slog.String("prize", string(pick.PrizeID)),
		slog.Int("rank", pick.Rank),
		slog.Int("tickets", pick.Tickets),
		slog.Uint64("total", pick.Total),
	)

	c.setPhase(Animating)
	c.anim.Start(pick.Rank, func() { c.animationFinished(s) })
	c.player.Play(c.baseCtx, media.CueWheel)
	c.sched.AfterFunc(c.timing.RevealDelay, func() { c.reveal(s) })
	return nil
}

func (c *Controller) abort(cause error) {
	c.setPhase(Aborted)
	if errs.Is(cause, errs.KindExhaustedInventory) {
		c.view.Alert(ExhaustedMessage)
	}
	c.log.Warn("spin aborted", slog.Any("err", cause))
	c.setPhase(Idle)
	c.setInput(true)
}

// AnimationDone 由外部動畫器通知目前這輪動畫已停止。
func (c *Controller) AnimationDone() {
	if c.sess != nil {
		c.animationFinished(c.sess)
	}
}

func (c *Controller) animationFinished(s *Session) {
	if c.sess != s || s.animationDone {
		return
	}
	s.animationDone = true
	c.maybeShowResult(s)
}

func (c *Controller) reveal(s *Session) {
	if c.sess != s || c.phase != Animating {
		return
	}
	c.setPhase(RevealPending)

	c.player.Play(c.baseCtx, media.CueWin1)
	c.sched.AfterFunc(c.timing.CueDuration, func() { c.player.Play(c.baseCtx, media.CueWin) })

	if !result.IsTopTier(s.Pick.Rank) {
		s.revealDone = true
		c.maybeShowResult(s)
		return
	}
	c.setOverlay(true)
	c.sched.AfterFunc(c.timing.OverlayDuration, func() {
		c.setOverlay(false)
		if c.sess == s {
			s.revealDone = true
			c.maybeShowResult(s)
		}
	})
}

func (c *Controller) maybeShowResult(s *Session) {
	if c.phase != RevealPending || !s.revealDone || !s.animationDone {
		return
	}
	c.setPhase(ResultShown)
	v := result.NewView(s.Pick.Rank, s.Tentative)
	c.last = &v
	c.view.ShowResult(v)

	c.report.Report(c.baseCtx, telemetry.Record{
		ParticipationID:   c.ids.NumericID(participationIDLimit),
		ParticipationTime: c.now(),
		Prize:             s.Pick.Name,
		Stocks:            s.Tentative.Quantities(),
	})
}

// Dismiss 關閉結果：提交暫定庫存、清除暫存紀錄、重新開放按鈕並回到 Idle。
//
// 只有在 ResultShown 有效，其他階段回傳 ErrNoResult。提交失敗時仍回到 Idle，
// 暫存紀錄保留給下次啟動復原，正式庫存維持上次成功寫入的狀態；
// 之後的抽獎以未寫入的庫存為基準，下一次關閉結果時一併重試寫入。
func (c *Controller) Dismiss(ctx context.Context) error {
	if c.phase != ResultShown || c.sess == nil {
		return errs.With(errs.ErrNoResult, c.phase.String(), nil)
	}
	s := c.sess
	var commitErr error
	switch {
	case s.HasDelta:
		commitErr = c.settle(ctx, s.ID, s.Tentative)
	case c.unsettled != nil:
		commitErr = c.settle(ctx, s.ID, *c.unsettled)
	}
	c.sess = nil
	c.setOverlay(false)
	c.view.ShowInventory(c.store.Current())
	c.setPhase(Idle)
	c.setInput(true)
	return commitErr
}

// Reset 還原預設庫存。
//
// 只允許在 Idle 與 ResultShown；顯示中的結果會被丟棄而不提交。抽獎進行中回傳 ErrBusy。
func (c *Controller) Reset(ctx context.Context) error {
	if c.phase != Idle && c.phase != ResultShown {
		return errs.With(errs.ErrBusy, c.phase.String(), nil)
	}
	inv, err := c.store.Reset(context.WithoutCancel(ctx))
	if err != nil {
		c.log.Error("reset failed", slog.Any("err", err))
		return err
	}
	c.unsettled = nil
	if c.sess != nil {
		c.log.Info("result dropped by reset", slog.String("session", c.sess.ID))
	}
	c.sess = nil
	c.last = nil
	c.setOverlay(false)
	c.view.ShowInventory(inv)
	c.setPhase(Idle)
	c.setInput(true)
	return nil
}

// settle 寫入已交出的庫存並清除暫存紀錄。
//
// 失敗時保留 inv 作為下一輪抽獎的基準，暫存紀錄也不清除，直到某次寫入成功。
func (c *Controller) settle(ctx context.Context, sessID string, inv prize.Inventory) error {
	wctx := context.WithoutCancel(ctx)
	if err := c.store.Commit(wctx, inv); err != nil {
		kept := inv.Clone()
		c.unsettled = &kept
		c.log.Error("commit on dismiss failed, pending record kept",
			slog.String("session", sessID),
			slog.Any("err", err),
		)
		return err
	}
	c.unsettled = nil
	if err := c.store.ClearPending(wctx); err != nil {
		c.log.Warn("clear pending inventory failed", slog.String("session", sessID), slog.Any("err", err))
	}
	return nil
}

// base 回傳下一輪抽獎的基準庫存：有尚未寫入的庫存時以它為準。
func (c *Controller) base() prize.Inventory {
	if c.unsettled != nil {
		return c.unsettled.Clone()
	}
	return c.store.Current()
}

// Recover 處理上次執行遺留的暫定庫存，只在 Idle 時有效。
func (c *Controller) Recover(ctx context.Context, policy RecoverPolicy) error {
	if c.phase != Idle {
		return errs.With(errs.ErrBusy, c.phase.String(), nil)
	}
	pending, ok := c.store.Pending(ctx)
	if !ok {
		return nil
	}
	c.log.Warn("pending inventory found",
		slog.String("policy", policy.String()),
		slog.String("pending", pending.String()),
	)
	wctx := context.WithoutCancel(ctx)
	if policy == RecoverCommit {
		if err := c.store.Commit(wctx, pending); err != nil {
			return err
		}
	}
	c.unsettled = nil
	if err := c.store.ClearPending(wctx); err != nil {
		c.log.Warn("clear pending inventory failed", slog.Any("err", err))
	}
	c.view.ShowInventory(c.store.Current())
	return nil
}

// State 是控制器對外的快照。
type State struct {
	Phase        Phase            `json:"phase"`
	SessionID    string           `json:"session_id,omitempty"`
	PrizeID      prize.ID         `json:"prize_id,omitempty"`
	Rank         *int             `json:"rank,omitempty"`
	InputEnabled bool             `json:"input_enabled"`
	Overlay      bool             `json:"overlay"`
	Result       *result.View     `json:"result,omitempty"`
	Tentative    map[prize.ID]int `json:"tentative,omitempty"`
	// Unsettled 為 true 代表有已交出的獎品尚未成功寫入。
	Unsettled    bool             `json:"unsettled,omitempty"`
}

// Snapshot 回傳目前狀態；必須在 Loop 上呼叫。
func (c *Controller) Snapshot() State {
	st := State{Phase: c.phase, InputEnabled: c.input, Overlay: c.overlay, Unsettled: c.unsettled != nil}
	if s := c.sess; s != nil {
		rank := s.Pick.Rank
		st.SessionID = s.ID
		st.PrizeID = s.Pick.PrizeID
		st.Rank = &rank
		st.Tentative = make(map[prize.ID]int, s.Tentative.Len())
		for _, p := range s.Tentative.Prizes() {
			st.Tentative[p.ID] = p.Quantity
		}
	}
	if c.phase == ResultShown && c.last != nil {
		v := *c.last
		st.Result = &v
	}
	return st
}

func (c *Controller) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	c.log.Debug("phase", slog.String("from", c.phase.String()), slog.String("to", p.String()))
	c.phase = p
}

func (c *Controller) setInput(enabled bool) {
	c.input = enabled
	c.view.SetInputEnabled(enabled)
}

func (c *Controller) setOverlay(visible bool) {
	if c.overlay == visible {
		return
	}
	c.overlay = visible
	c.view.ShowOverlay(visible)
}
