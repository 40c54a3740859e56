package apod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrMaxSizeExceeded is returned when an asset is larger than the configured
// download bound.
var ErrMaxSizeExceeded = errors.New("asset exceeds maximum size")

type downloadOptions struct {
	maxBytes int64
}

type DownloadOption func(o *downloadOptions)

// WithMaxBytes bounds the number of bytes Download will accept. Zero means
// unbounded.
func WithMaxBytes(maxBytes int64) DownloadOption {
	return func(o *downloadOptions) {
		o.maxBytes = maxBytes
	}
}

// Download fetches the raw bytes of the asset at assetURL.
func (c *Client) Download(ctx context.Context, assetURL string, opts ...DownloadOption) ([]byte, error) {
	o := downloadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	c.logger.Debug().Str("url", assetURL).Msg("downloading asset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not download asset: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset download returned status %d", resp.StatusCode)
	}

	if o.maxBytes > 0 {
		if resp.ContentLength > o.maxBytes {
			return nil, fmt.Errorf("%w: announced %d, maximum %d", ErrMaxSizeExceeded, resp.ContentLength, o.maxBytes)
		}

		// One extra byte so a truncated-at-limit body is distinguishable
		// from one that fit exactly.
		data, err := io.ReadAll(io.LimitReader(resp.Body, o.maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("could not read asset body: %w", err)
		}
		if int64(len(data)) > o.maxBytes {
			return nil, fmt.Errorf("%w: maximum %d", ErrMaxSizeExceeded, o.maxBytes)
		}
		return data, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read asset body: %w", err)
	}

	c.logger.Debug().Str("url", assetURL).Int("size", len(data)).Msg("downloaded asset")
	return data, nil
}
