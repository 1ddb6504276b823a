package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry returned")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl missing")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	path := fc.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want a miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheForeignKey(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	if err := c.Set(ctx, "a", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	// Move a's entry to where b would live.
	if err := os.MkdirAll(filepath.Dir(fc.path("b")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(fc.path("a"), fc.path("b")); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("entry stored for another key returned")
	}
}

func TestFileCacheClock(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	now = now.Add(30 * time.Second)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry missing before ttl")
	}
	now = now.Add(time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry returned after ttl")
	}
	if _, err := os.Stat(fc.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheNoTempLeftovers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "*", ".tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "c")
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}

	if err := Clear(ctx, c); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("key %s survived Clear", k)
		}
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir should still exist: %v", err)
	}

	// Clear on a backend without Clearer is a no-op
	if err := Clear(ctx, NewNullCache()); err != nil {
		t.Errorf("Clear(NullCache) error: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		url  string
		want string
	}{
		{"", "null"},
		{"none", "null"},
		{filepath.Join(dir, "plain"), "file"},
		{"file://" + filepath.Join(dir, "url"), "file"},
	}
	for _, tt := range tests {
		c, err := Open(ctx, tt.url)
		if err != nil {
			t.Fatalf("Open(%q) error: %v", tt.url, err)
		}
		var got string
		switch c.(type) {
		case *NullCache:
			got = "null"
		case *FileCache:
			got = "file"
		}
		if got != tt.want {
			t.Errorf("Open(%q) = %T, want %s", tt.url, c, tt.want)
		}
		_ = c.Close()
	}

	fc, _ := Open(ctx, "file://"+filepath.Join(dir, "url"))
	if got := fc.(*FileCache).Dir(); got != filepath.Join(dir, "url") {
		t.Errorf("file url dir = %s", got)
	}

	if _, err := Open(ctx, "ftp://host/cache"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Open(ftp) error = %v, want ErrUnsupported", err)
	}
	if _, err := Open(ctx, "redis://localhost:notaport"); err == nil {
		t.Error("Open with malformed redis url should fail")
	}
}

func TestMongoDatabase(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017", DefaultMongoDatabase},
		{"mongodb://localhost:27017/", DefaultMongoDatabase},
		{"mongodb://localhost:27017/trees", "trees"},
		{"mongodb+srv://user:pw@cluster.example.net/trees?retryWrites=true", "trees"},
	}
	for _, tt := range tests {
		got, err := mongoDatabase(tt.uri)
		if err != nil {
			t.Fatalf("mongoDatabase(%q) error: %v", tt.uri, err)
		}
		if got != tt.want {
			t.Errorf("mongoDatabase(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
