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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// Kind 標示錯誤在轉盤流程中的類別。
//
// 嚴重度 (ErrLevel) 決定上層要不要中止；Kind 決定上層「該怎麼補救」：
//   - ExhaustedInventory：提示使用者、不寫入任何狀態、重新開放按鈕。
//   - PersistenceUnavailable：退回預設庫存，不對外回報。
//   - PlaybackFailure / TelemetryFailure：只記錄 log，流程照計時器繼續。
type Kind uint8

const (
	KindUnknown Kind = iota
	KindExhaustedInventory
	KindPersistenceUnavailable
	KindPlaybackFailure
	KindTelemetryFailure
	KindOutOfStock
	KindUnknownPrize
	KindBusy
	KindNoResult
	KindConfig
)

var kindMap = map[Kind]string{
	KindUnknown:                "",
	KindExhaustedInventory:     "exhausted_inventory",
	KindPersistenceUnavailable: "persistence_unavailable",
	KindPlaybackFailure:        "playback_failure",
	KindTelemetryFailure:       "telemetry_failure",
	KindOutOfStock:             "out_of_stock",
	KindUnknownPrize:           "unknown_prize",
	KindBusy:                   "busy",
	KindNoResult:               "no_result",
	KindConfig:                 "config",
}

func (k Kind) String() string {
	if str, ok := kindMap[k]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤（wrap）；ErrLv 為嚴重度；Kind 為流程上的錯誤類別。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
	Kind    Kind
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Kind != KindUnknown {
		base = fmt.Sprintf("errlv=%s kind=%s %s", ErrLv(e.ErrLv), e.Kind, e.Message)
	}
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// Is 讓 errors.Is(err, sentinel) 以 Kind 比對，而不是以指標比對。
// 這樣包裝過、帶不同 Extra 的錯誤仍可與下方的哨兵錯誤相等。
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok || t.Kind == KindUnknown {
		return false
	}
	return e.Kind == t.Kind
}

// 流程哨兵錯誤，給 errors.Is 使用。
var (
	ErrExhaustedInventory     = &E{Message: "all prizes exhausted", ErrLv: Warn, Kind: KindExhaustedInventory}
	ErrPersistenceUnavailable = &E{Message: "persisted inventory unavailable", ErrLv: Log, Kind: KindPersistenceUnavailable}
	ErrPlaybackFailure        = &E{Message: "audio cue playback failed", ErrLv: Log, Kind: KindPlaybackFailure}
	ErrTelemetryFailure       = &E{Message: "telemetry delivery failed", ErrLv: Log, Kind: KindTelemetryFailure}
	ErrOutOfStock             = &E{Message: "prize out of stock", ErrLv: Warn, Kind: KindOutOfStock}
	ErrUnknownPrize           = &E{Message: "unknown prize id", ErrLv: Warn, Kind: KindUnknownPrize}
	ErrBusy                   = &E{Message: "spin in progress", ErrLv: Warn, Kind: KindBusy}
	ErrNoResult               = &E{Message: "no result to dismiss", ErrLv: Warn, Kind: KindNoResult}
)

// New 依錯誤等級與訊息建立錯誤
func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func NewLog(msg string) *E {
	return &E{Message: msg, ErrLv: Log}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

func Logf(format string, a ...any) *E {
	return NewLog(fmt.Sprintf(format, a...))
}

// Configf 建立設定檔錯誤，一律視為 Fatal（只會發生在啟動階段）。
func Configf(format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), ErrLv: Fatal, Kind: KindConfig}
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// With 以哨兵錯誤為樣板，複製一份並附加上下文與下層錯誤。
// 回傳值仍滿足 errors.Is(err, sentinel)。
func With(sentinel *E, extra string, cause error) *E {
	return &E{
		Message: sentinel.Message,
		Extra:   extra,
		Cause:   cause,
		ErrLv:   sentinel.ErrLv,
		Kind:    sentinel.Kind,
	}
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// ErrLevel / Kind 規則：
//   - 若 cause 已經是 *E，則沿用其 ErrLv 與 Kind（保持原本嚴重度）。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則 ErrLv 一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	var e *E
	errLv := Fatal
	kind := KindUnknown
	if errors.As(cause, &e) {
		errLv = e.ErrLv
		kind = e.Kind
	}
	r := New(errLv, msg)
	r.Kind = kind
	r.Cause = cause
	return r
}

// WrapWithExtra 與 Wrap 相同，另附加上下文。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := Wrap(cause, msg)
	r.Extra = extra
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// KindOf 回傳錯誤鏈中第一個 *E 的 Kind，找不到則回傳 KindUnknown。
func KindOf(err error) Kind {
	if e, ok := AsErr(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is 回報錯誤鏈中是否有指定 Kind 的 *E。
func Is(err error, kind Kind) bool {
	return kind != KindUnknown && KindOf(err) == kind
}
