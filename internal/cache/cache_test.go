package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_DeterministicAndPrefixed(t *testing.T) {
	k1 := Key("https://example.com/release")
	k2 := Key("https://example.com/release")
	k3 := Key("https://example.com/other")

	if k1 != k2 {
		t.Error("Expected identical URLs to produce identical keys")
	}
	if k1 == k3 {
		t.Error("Expected different URLs to produce different keys")
	}
	if !strings.HasPrefix(k1, "factcheck:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", k1)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("source text"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("Expected key to be found")
	}
	if string(val) != "source text" {
		t.Errorf("Unexpected value %q", val)
	}

	if _, found := c.Get("absent"); found {
		t.Error("Expected missing key not to be found")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected deleted key to be gone")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected cleared cache to be empty")
	}
}
