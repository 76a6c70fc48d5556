package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	if err := c.Set("k", 42, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := c.Get("k")
	if !ok || v.(int) != 42 {
		t.Errorf("Get = %v %v, want 42 true", v, ok)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("entry survived Delete")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", 1, time.Minute)
	_ = c.Set("b", 2, time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry a survived Clear")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("entry b survived Clear")
	}
}

func TestTableKey_ChangesWithFileIdentity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")

	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	info1, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	key1 := TableKey(path, info1)

	if key2 := TableKey(path, info1); key2 != key1 {
		t.Error("TableKey not deterministic for identical file state")
	}

	// A rewrite with different content changes size and therefore the key.
	if err := os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	info2, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if key3 := TableKey(path, info2); key3 == key1 {
		t.Error("TableKey unchanged after the file was rewritten")
	}

	other := filepath.Join(dir, "other.csv")
	if err := os.WriteFile(other, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	infoOther, err := os.Stat(other)
	if err != nil {
		t.Fatal(err)
	}
	if TableKey(other, infoOther) == key1 {
		t.Error("TableKey identical for different paths")
	}
}
