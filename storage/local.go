package storage

import (
	"context"
	"log"
	"os"
	"path/filepath"
)

// LocalSink writes uploads to a directory served statically by the
// router, mirroring how stored scans are viewed in the demo frontend.
type LocalSink struct {
	dir     string
	baseURL string
}

func NewLocalSink(dir, baseURL string) *LocalSink {
	return &LocalSink{dir: dir, baseURL: baseURL}
}

func (s *LocalSink) Store(ctx context.Context, data []byte, name string) string {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		log.Printf("❌ Failed to create uploads directory: %v", err)
		return FallbackURL
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("❌ Failed to save upload %s: %v", name, err)
		return FallbackURL
	}

	return s.baseURL + "/uploads/" + name
}
