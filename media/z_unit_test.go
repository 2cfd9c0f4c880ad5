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

package media

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeTimer struct {
	d  time.Duration
	fn func()
}

func (f *fakeTimer) AfterFunc(d time.Duration, fn func()) {
	f.d = d
	f.fn = fn
}

func TestTimedAnimatorSchedulesDone(t *testing.T) {
	ft := &fakeTimer{}
	a := NewTimedAnimator(ft, 5*time.Second, nil)
	done := false
	a.Start(2, func() { done = true })
	if ft.d != 5*time.Second || ft.fn == nil {
		t.Fatalf("animator did not schedule: %+v", ft)
	}
	if done {
		t.Fatalf("done fired before timer")
	}
	ft.fn()
	if !done {
		t.Fatalf("done not fired")
	}
}

func TestLogPlayerWritesCue(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPlayer(slog.New(slog.NewTextHandler(&buf, nil)))
	p.Play(context.Background(), CueWin1)
	if !strings.Contains(buf.String(), "cue=win1") {
		t.Fatalf("cue not logged: %s", buf.String())
	}
}

func TestCommandPlayerFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	p := NewCommandPlayer("/nonexistent/player-binary", nil, map[Cue]string{CueWheel: "wheel.mp3"}, log)
	p.Play(context.Background(), CueWheel)
	p.Wait()
	p.Play(context.Background(), CueWin)
	if got := buf.String(); strings.Count(got, "playback_failure") != 2 {
		t.Fatalf("expected two playback failures, got: %s", got)
	}
}
