package middleware

import (
	"testing"
	"time"
)

func TestTokenBucketExhausts(t *testing.T) {
	tb := NewTokenBucket(3, 0.0001) // effectively no refill within the test
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
	if tb.Allow() {
		t.Fatal("bucket should be empty after maxTokens requests")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(1, 1000) // 1000 tokens/sec
	if !tb.Allow() {
		t.Fatal("first request should pass")
	}
	time.Sleep(10 * time.Millisecond)
	if !tb.Allow() {
		t.Fatal("bucket should have refilled")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, 3600)
	if !rl.Allow("1.1.1.1") {
		t.Fatal("first request for key A should pass")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatal("second request for key A should be limited")
	}
	if !rl.Allow("2.2.2.2") {
		t.Fatal("key B has its own bucket and should pass")
	}
}
