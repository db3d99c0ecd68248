package fivech

import "github.com/esuna/esuna-api/internal/model"

// popularBoards は提供する主要な板の静的カタログ。
// 完全な板一覧の取得は複雑なため、カテゴリ別の主要板のみ提供する。
// プロセス起動時に一度だけ定義されるイミュータブルなデータ。
var popularBoards = []model.FivechBoard{
	{Title: "ニュース速報+", URL: "https://asahi.5ch.net/newsplus/", Category: "ニュース"},
	{Title: "ニュース速報", URL: "https://hayabusa9.5ch.net/news/", Category: "ニュース"},
	{Title: "芸スポ速報+", URL: "https://hayabusa9.5ch.net/mnewsplus/", Category: "芸能"},
	{Title: "なんでも実況J", URL: "https://eagle.5ch.net/livejupiter/", Category: "実況"},
	{Title: "プログラマー", URL: "https://mevius.5ch.net/tech/", Category: "PC・技術"},
	{Title: "プログラム", URL: "https://mevius.5ch.net/prog/", Category: "PC・技術"},
}

// Boards は板の静的カタログを返す。ネットワーク呼び出しは行わない。
func (c *Client) Boards() []model.FivechBoard {
	boards := make([]model.FivechBoard, len(popularBoards))
	copy(boards, popularBoards)
	return boards
}
