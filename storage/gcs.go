package storage

import (
	"context"
	"log"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"gradeguard/config"
)

// GCSSink uploads scans to a Google Cloud Storage bucket as public-read
// objects. All settings come from the config struct passed at
// construction; nothing is read from process-wide state.
type GCSSink struct {
	cfg config.StorageConfig
}

func NewGCSSink(cfg config.StorageConfig) *GCSSink {
	return &GCSSink{cfg: cfg}
}

// client prefers ADC (service account / GOOGLE_APPLICATION_CREDENTIALS);
// explicit JSON credentials from config take precedence when set.
func (s *GCSSink) client(ctx context.Context) (*storage.Client, error) {
	if credJSON := strings.TrimSpace(s.cfg.CredentialsJSON); credJSON != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return storage.NewClient(ctx)
}

func (s *GCSSink) Store(ctx context.Context, data []byte, name string) string {
	client, err := s.client(ctx)
	if err != nil {
		log.Printf("❌ Failed to create GCS client: %v", err)
		return FallbackURL
	}
	defer client.Close()

	wc := client.Bucket(s.cfg.Bucket).Object(name).NewWriter(ctx)
	wc.ContentType = http.DetectContentType(data)
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}

	if _, err := wc.Write(data); err != nil {
		log.Printf("❌ Failed to upload %s to GCS: %v", name, err)
		wc.Close()
		return FallbackURL
	}
	if err := wc.Close(); err != nil {
		log.Printf("❌ Failed to close GCS writer for %s: %v", name, err)
		return FallbackURL
	}

	return "https://" + s.cfg.PublicHost + "/" + s.cfg.Bucket + "/" + name
}
