package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gradeguard/config"
)

func localConfig(dir string) config.StorageConfig {
	return config.StorageConfig{
		PublicHost: "storage.googleapis.com",
		UploadDir:  dir,
	}
}

func TestLocalSinkStore(t *testing.T) {
	dir := t.TempDir()
	sink := NewLocalSink(dir, "http://127.0.0.1:8000")

	url := sink.Store(context.Background(), []byte("scan-bytes"), "DESCRIPTIVE_abc.png")
	if url != "http://127.0.0.1:8000/uploads/DESCRIPTIVE_abc.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "DESCRIPTIVE_abc.png"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "scan-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestLocalSinkFailureFallsBack(t *testing.T) {
	// Point the sink at a path occupied by a regular file so the
	// directory cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	sink := NewLocalSink(filepath.Join(blocker, "uploads"), "http://127.0.0.1:8000")
	if url := sink.Store(context.Background(), []byte("scan"), "a.png"); url != FallbackURL {
		t.Fatalf("expected fallback url, got %q", url)
	}
}

func TestNewSinkSelection(t *testing.T) {
	local := NewSink(localConfig(t.TempDir()), "http://127.0.0.1:8000")
	if _, ok := local.(*LocalSink); !ok {
		t.Fatalf("expected LocalSink without a bucket, got %T", local)
	}

	cfg := localConfig(t.TempDir())
	cfg.Bucket = "gradeguard-scans"
	remote := NewSink(cfg, "http://127.0.0.1:8000")
	if _, ok := remote.(*GCSSink); !ok {
		t.Fatalf("expected GCSSink with a bucket, got %T", remote)
	}
}
