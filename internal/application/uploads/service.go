package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Uploader is the photo upload collaborator consumed by the creation
// wizard: it takes a binary file and resolves to a public URL.
type Uploader interface {
	Upload(ctx context.Context, fileName string, content []byte) (string, error)
}

// HTTPClient is an Uploader backed by the storage service's HTTP API.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *HTTPClient) Upload(ctx context.Context, fileName string, content []byte) (string, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.BaseURL == "" {
		return "", fmt.Errorf("uploads: UPLOAD_BASE_URL is not set")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/api/v1/uploads/listing-photo"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload error: status %d body: %s", resp.StatusCode, string(respBody))
	}
	var data uploadResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("upload response decode: %w", err)
	}
	if data.URL == "" {
		return "", fmt.Errorf("upload returned no URL, body: %s", string(respBody))
	}
	return data.URL, nil
}
