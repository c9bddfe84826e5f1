package rtype_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/reoring/rtype"
)

func TestCache_GetOrInsertBuildsOnce(t *testing.T) {
	c := rtype.NewCache()
	var calls int32
	build := func() (rtype.Type, error) {
		atomic.AddInt32(&calls, 1)
		return rtype.Must(rtype.ArrayOf(rtype.Integer)), nil
	}
	var wg sync.WaitGroup
	results := make([]rtype.Type, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrInsert("integer[]", build)
		}(i)
	}
	wg.Wait()
	if calls != 1 {
		t.Fatalf("build ran %d times", calls)
	}
	for _, r := range results {
		if r != results[0] {
			t.Fatalf("all callers must share one node")
		}
	}
	if c.Len() != 1 {
		t.Fatalf("len: %d", c.Len())
	}
}

func TestCache_FailuresAreNotStored(t *testing.T) {
	c := rtype.NewCache()
	boom := errors.New("boom")
	if _, err := c.GetOrInsert("x", func() (rtype.Type, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
	if _, ok := c.Get("x"); ok || c.Len() != 0 {
		t.Fatalf("failure must not be cached")
	}
}

func TestCache_DisableAndClear(t *testing.T) {
	c := &rtype.Cache{}
	mk := func() (rtype.Type, error) { return rtype.Must(rtype.Enum("a")), nil }
	first, _ := c.GetOrInsert("k", mk)

	c.Disable()
	if c.Enabled() {
		t.Fatalf("cache should report disabled")
	}
	second, _ := c.GetOrInsert("k", mk)
	if first == second {
		t.Fatalf("a disabled cache must not serve entries")
	}
	if _, ok := c.Get("k"); ok {
		t.Fatalf("a disabled cache has no visible entries")
	}

	c.Enable()
	if got, ok := c.Get("k"); !ok || got != first {
		t.Fatalf("entries survive a disable/enable cycle")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("clear must drop entries")
	}
}

func TestParser_UsesInjectedCache(t *testing.T) {
	c := rtype.NewCache()
	p := rtype.NewParser(rtype.WithCache(c))
	a, err := p.Parse("string[]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, _ := p.Parse("string[]")
	if a != b {
		t.Fatalf("cached parse must return the same node")
	}
	if got, ok := c.Get("string[]"); !ok || got != a {
		t.Fatalf("entry missing from the injected cache")
	}
	if _, err := p.Parse("nope"); err == nil || c.Len() != 1 {
		t.Fatalf("failed parses are not cached: len=%d err=%v", c.Len(), err)
	}
}

func TestParser_WithoutCache(t *testing.T) {
	p := rtype.NewParser(rtype.WithCache(nil))
	if p.Cache() != nil {
		t.Fatalf("cache should be off")
	}
	a, _ := p.Parse("string[]")
	b, _ := p.Parse("string[]")
	if a == b || !rtype.Compare(a, b) {
		t.Fatalf("uncached parses build distinct but equal nodes")
	}
}

func TestFromString_DefaultCacheSwitch(t *testing.T) {
	rtype.ClearCache()
	t.Cleanup(func() {
		rtype.EnableCache()
		rtype.ClearCache()
	})
	a, _ := rtype.FromString("float[]")
	b, _ := rtype.FromString("float[]")
	if a != b {
		t.Fatalf("default parser caches")
	}
	rtype.DisableCache()
	c, _ := rtype.FromString("float[]")
	if c == a {
		t.Fatalf("disabled cache must build a fresh node")
	}
	if rtype.DefaultCache().Enabled() {
		t.Fatalf("default cache should report disabled")
	}
}
