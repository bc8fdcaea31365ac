package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
)

// Asset is what the media host hands back for a stored file.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader is the media-host collaborator. It is constructed once in the
// container and injected into the features that move files; nothing reads
// host configuration at call time.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (Asset, error)
	Remove(ctx context.Context, publicID string) error
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retries int
}

type httpUploader struct {
	cfg    Config
	client *http.Client
}

func NewHTTPUploader(cfg Config) Uploader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &httpUploader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (u *httpUploader) Upload(ctx context.Context, filename string, content []byte) (Asset, error) {
	log := config.WithContext(ctx)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Asset{}, apperr.Upstream("media upload failed", err)
	}
	if _, err := part.Write(content); err != nil {
		return Asset{}, apperr.Upstream("media upload failed", err)
	}
	if err := mw.Close(); err != nil {
		return Asset{}, apperr.Upstream("media upload failed", err)
	}

	var asset Asset
	err = u.do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.BaseURL+"/upload", bytes.NewReader(body.Bytes()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+u.cfg.APIKey)

		resp, err := u.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("media host returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&asset)
	})
	if err != nil {
		log.WithError(err).Error("Failed to upload file to media host")
		return Asset{}, apperr.Upstream("media upload failed", err)
	}

	log.WithField("public_id", asset.PublicID).Info("File uploaded to media host")
	return asset, nil
}

// Remove releases a stored file. Removing an already-released id is treated
// as success so cascade deletes stay retryable.
func (u *httpUploader) Remove(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	log := config.WithContext(ctx)

	err := u.do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u.cfg.BaseURL+"/files/"+publicID, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+u.cfg.APIKey)

		resp, err := u.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
			return fmt.Errorf("media host returned status %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("public_id", publicID).Error("Failed to remove file from media host")
		return apperr.Upstream("media removal failed", err)
	}
	return nil
}

// do runs fn with bounded retries and a backoff between attempts. Context
// cancellation stops the loop.
func (u *httpUploader) do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= u.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		if err = fn(ctx); err == nil {
			return nil
		}
	}
	return err
}
