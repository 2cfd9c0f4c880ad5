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

package prize

// 預設獎項表 (現場活動的初始庫存)。
//
// 名次即轉盤格位：prize_1 為 1 等獎，prize_6 為參加獎 (NoWin)，固定 150 張票。
var defaultPrizes = []Prize{
	{ID: "prize_1", Name: "로지텍 MX Master 3s 마우스", Quantity: 2, Weight: 3, Image: "prize1.png"},
	{ID: "prize_2", Name: "아트뮤 PB310 보조배터리", Quantity: 3, Weight: 7, Image: "prize2.png"},
	{ID: "prize_3", Name: "로지텍 R500s 포인터", Quantity: 5, Weight: 15, Image: "prize3.png"},
	{ID: "prize_4", Name: "필릭스 LED 에디슨 데스크 램프", Quantity: 10, Weight: 25, Image: "prize4.png"},
	{ID: "prize_5", Name: "농심 굿즈", Quantity: 30, Weight: 35, Image: "prize5.png"},
	{ID: "prize_6", Name: "농심 제품 + DT FAIR 다회용백", Quantity: 150, Weight: 150, NoWin: true, Image: "prize6.png"},
}

// Default 回傳內建預設庫存的新複本。
func Default() Inventory {
	return MustNew(defaultPrizes...)
}
