package sns

import (
	"fmt"
	"time"
)

// FormatRelativeTime はタイムスタンプ文字列を相対時刻表記に変換する。
// 投稿自身のタイムゾーンで現在時刻との差分を計算し、
// 1日以上は「N日前」、1時間以上は「N時間前」、1分以上は「N分前」、
// それ未満は「たった今」と表記する。
// パースに失敗した場合は元の文字列をそのまま返す。
func FormatRelativeTime(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}

	delta := now.In(t.Location()).Sub(t)

	switch {
	case delta >= 24*time.Hour:
		return fmt.Sprintf("%d日前", int(delta.Hours())/24)
	case delta >= time.Hour:
		return fmt.Sprintf("%d時間前", int(delta.Hours()))
	case delta >= time.Minute:
		return fmt.Sprintf("%d分前", int(delta.Minutes()))
	default:
		return "たった今"
	}
}
