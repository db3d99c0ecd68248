package podcast

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration は再生時間文字列を秒数に変換する。
// 受け付ける形式: "HH:MM:SS"、"MM:SS"、秒数のみ。
// パースできない値はエラーにせず0を返す。
func ParseDuration(durationStr string) int {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return 0
	}

	// 秒数のみの場合
	if !strings.Contains(durationStr, ":") {
		f, err := strconv.ParseFloat(durationStr, 64)
		if err != nil || f < 0 {
			return 0
		}
		return int(f)
	}

	// HH:MM:SS または MM:SS形式
	parts := strings.Split(durationStr, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		nums[i] = n
	}

	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	default:
		return 0
	}
}

// FormatDuration は秒数を読み上げやすい日本語表記に変換する。
// 例: 3665 -> "1時間1分5秒"、90 -> "1分30秒"、45 -> "45秒"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d秒", seconds)
	}

	minutes := seconds / 60
	secs := seconds % 60

	if minutes < 60 {
		if secs > 0 {
			return fmt.Sprintf("%d分%d秒", minutes, secs)
		}
		return fmt.Sprintf("%d分", minutes)
	}

	hours := minutes / 60
	mins := minutes % 60

	switch {
	case mins > 0 && secs > 0:
		return fmt.Sprintf("%d時間%d分%d秒", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%d時間%d分", hours, mins)
	default:
		return fmt.Sprintf("%d時間", hours)
	}
}
