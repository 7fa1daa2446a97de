package imagehost

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// LocalHost stores photos in a directory and returns URLs under /uploads/,
// which the web server serves from the same directory. Used when no hosting
// API key is configured, and in tests.
type LocalHost struct {
	Dir string
}

// NewLocalHost creates the upload directory if needed.
func NewLocalHost(dir string) (*LocalHost, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalHost{Dir: dir}, nil
}

// Upload writes the photo to the directory under a random name.
func (h *LocalHost) Upload(ctx context.Context, data []byte, mime string) (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: generating filename: %v", ErrUpload, err)
	}
	name := hex.EncodeToString(buf) + extFor(mime)

	if err := os.WriteFile(filepath.Join(h.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing file: %v", ErrUpload, err)
	}
	return "/uploads/" + name, nil
}

func extFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
