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

// Package netsvr 包裝 HTTP 伺服器：路由註冊與啟停分成兩個介面，
// handler 端只拿得到 NetRouter。
package netsvr

import (
	"net/http"

	"github.com/zintix-labs/prizewheel/server/app"
)

// NetSvr 同時是路由與 app.Component，交給 app.App 管理生命週期。
type NetSvr interface {
	NetRouter
	app.Component
	Handler() http.Handler
	Address() string
}

// NetRouter 只有路由行為，沒有 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
