package store

import (
	"errors"
	"testing"
	"time"
)

func TestCache_LoaderCalledOnceWithinTTL(t *testing.T) {
	c := NewCache[string](time.Second)
	calls := 0
	loader := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 5; i++ {
		got, err := c.GetOrLoad("key", loader)
		if err != nil {
			t.Fatalf("GetOrLoad() failed: %v", err)
		}
		if got != "value" {
			t.Errorf("GetOrLoad() = %q, want %q", got, "value")
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times within TTL, want 1", calls)
	}
}

func TestCache_ExpiryReloads(t *testing.T) {
	c := NewCache[string](time.Second)
	current := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	calls := 0
	loader := func() (string, error) {
		calls++
		return "value", nil
	}

	if _, err := c.GetOrLoad("key", loader); err != nil {
		t.Fatalf("GetOrLoad() failed: %v", err)
	}
	current = current.Add(500 * time.Millisecond)
	if _, err := c.GetOrLoad("key", loader); err != nil {
		t.Fatalf("GetOrLoad() failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("loader called %d times before expiry, want 1", calls)
	}

	current = current.Add(time.Second)
	if _, err := c.GetOrLoad("key", loader); err != nil {
		t.Fatalf("GetOrLoad() failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times after expiry, want 2", calls)
	}
}

func TestCache_KeysAreIndependent(t *testing.T) {
	c := NewCache[int](time.Minute)

	a, err := c.GetOrLoad("a", func() (int, error) { return 1, nil })
	if err != nil {
		t.Fatalf("GetOrLoad(a) failed: %v", err)
	}
	b, err := c.GetOrLoad("b", func() (int, error) { return 2, nil })
	if err != nil {
		t.Fatalf("GetOrLoad(b) failed: %v", err)
	}
	if a != 1 || b != 2 {
		t.Errorf("got a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestCache_LoaderErrorNotCached(t *testing.T) {
	c := NewCache[string](time.Minute)
	boom := errors.New("tier unavailable")
	calls := 0

	_, err := c.GetOrLoad("key", func() (string, error) {
		calls++
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("GetOrLoad() error = %v, want %v", err, boom)
	}

	got, err := c.GetOrLoad("key", func() (string, error) {
		calls++
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad() retry failed: %v", err)
	}
	if got != "recovered" {
		t.Errorf("GetOrLoad() = %q, want %q", got, "recovered")
	}
	if calls != 2 {
		t.Errorf("loader called %d times, want 2 (failure must not be cached)", calls)
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache[string](time.Minute)
	calls := 0
	loader := func() (string, error) {
		calls++
		return "value", nil
	}

	if _, err := c.GetOrLoad("key", loader); err != nil {
		t.Fatalf("GetOrLoad() failed: %v", err)
	}
	c.Invalidate("key")
	if _, err := c.GetOrLoad("key", loader); err != nil {
		t.Fatalf("GetOrLoad() failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times, want 2 after Invalidate", calls)
	}
}

func TestNewCache_NonPositiveTTL(t *testing.T) {
	c := NewCache[string](0)
	if c.ttl != DefaultCacheTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultCacheTTL)
	}
}
