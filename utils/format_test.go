package utils

import (
	"testing"
	"time"
)

func TestRankSuffix(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 10: "th",
		11: "th", 12: "th", 13: "th", 14: "th",
		21: "st", 22: "nd", 23: "rd",
		101: "st", 111: "th", 112: "th", 113: "th", 121: "st",
		200: "th",
	}
	for n, want := range cases {
		if got := RankSuffix(n); got != want {
			t.Errorf("RankSuffix(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRankSuffixFullRange(t *testing.T) {
	// Spot-check the rule over [1,200]: st/nd/rd only when the last digit is
	// 1/2/3 and the last two digits are not 11/12/13.
	for n := 1; n <= 200; n++ {
		got := RankSuffix(n)
		mod100 := n % 100
		special := mod100 == 11 || mod100 == 12 || mod100 == 13
		switch n % 10 {
		case 1:
			if !special && got != "st" {
				t.Fatalf("RankSuffix(%d) = %q, want st", n, got)
			}
		case 2:
			if !special && got != "nd" {
				t.Fatalf("RankSuffix(%d) = %q, want nd", n, got)
			}
		case 3:
			if !special && got != "rd" {
				t.Fatalf("RankSuffix(%d) = %q, want rd", n, got)
			}
		default:
			special = true
		}
		if special && got != "th" {
			t.Fatalf("RankSuffix(%d) = %q, want th", n, got)
		}
	}
}

func TestAccuracy(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
		{1, 8, 13},
	}
	for _, c := range cases {
		if got := Accuracy(c.correct, c.total); got != c.want {
			t.Errorf("Accuracy(%d, %d) = %d, want %d", c.correct, c.total, got, c.want)
		}
	}
}

func TestAccuracyBounds(t *testing.T) {
	for total := 1; total <= 50; total++ {
		for correct := 0; correct <= total; correct++ {
			got := Accuracy(correct, total)
			if got < 0 || got > 100 {
				t.Fatalf("Accuracy(%d, %d) = %d, out of [0,100]", correct, total, got)
			}
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{48 * time.Hour, "2d ago"},
	}
	for _, c := range cases {
		if got := RelativeTime(now.Add(-c.ago), now); got != c.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", c.ago, got, c.want)
		}
	}
}
