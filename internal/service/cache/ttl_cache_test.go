package cache

import (
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := NewTTLCacheWithClock(func() time.Time { return now })

	c.Set("k", "v", time.Minute)
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected hit before expiry, got %v ok=%v", v, ok)
	}

	now = now.Add(61 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := NewTTLCacheWithClock(func() time.Time { return now })

	c.Set("k", 42, 0)
	now = now.Add(24 * time.Hour)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("expected permanent entry, got %v ok=%v", v, ok)
	}
}

func TestTTLCacheBytes(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("b", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, ok, err := c.GetBytes("b")
	if err != nil || !ok || string(b) != "payload" {
		t.Fatalf("get: %q ok=%v err=%v", b, ok, err)
	}
	if _, ok, _ := c.GetBytes("missing"); ok {
		t.Fatalf("expected miss")
	}
}
