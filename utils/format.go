// utils/format.go - display helpers shared by handlers and services
package utils

import (
	"fmt"
	"math"
	"time"
)

// RankSuffix returns the ordinal suffix for a rank: 1 -> "st", 2 -> "nd",
// 3 -> "rd", everything else "th". 11, 12 and 13 take "th".
func RankSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// RankLabel renders a rank with its suffix, e.g. 1 -> "1st", 22 -> "22nd".
func RankLabel(n int) string {
	return fmt.Sprintf("%d%s", n, RankSuffix(n))
}

// Accuracy returns the rounded percentage of correct predictions. Zero total
// yields zero.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// RelativeTime renders t against now in coarse buckets ("just now",
// "5m ago", "3h ago", "2d ago").
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
