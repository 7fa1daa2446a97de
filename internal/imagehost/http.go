package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// HTTPHost uploads photos to a hosting API (imgbb-compatible): a multipart
// POST with the API key as a query parameter, answered with a JSON envelope
// carrying the display URL.
type HTTPHost struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewHTTPHost creates an uploader for the given hosting endpoint and key.
func NewHTTPHost(endpoint, apiKey string) *HTTPHost {
	return &HTTPHost{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// uploadResponse is the subset of the hosting API response we care about.
type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends the photo bytes to the hosting service and returns the
// durable URL. Failures of any kind wrap ErrUpload.
func (h *HTTPHost) Upload(ctx context.Context, data []byte, mime string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("image", "upload.jpg")
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUpload, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUpload, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUpload, err)
	}

	url := h.Endpoint + "?key=" + h.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUpload, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: host returned %d: %s", ErrUpload, resp.StatusCode, respBody)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUpload, err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", fmt.Errorf("%w: host reported failure", ErrUpload)
	}

	return parsed.Data.URL, nil
}
