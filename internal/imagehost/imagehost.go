// Package imagehost uploads photo bytes to a durable location and returns
// a URL. The rest of the application depends only on this narrow contract;
// retry policy is the host's concern.
package imagehost

import (
	"context"
	"errors"
)

// ErrUpload is returned when the hosting service rejects or fails an upload.
var ErrUpload = errors.New("image upload failed")

// Uploader stores a photo and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, data []byte, mime string) (string, error)
}
