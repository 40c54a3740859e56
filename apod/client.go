package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.nasa.gov"

// Metadata is the picture-of-the-day record returned by the APOD API.
type Metadata struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl,omitempty"`
}

func (m Metadata) MarshalZerologObject(e *zerolog.Event) {
	e.Str("date", m.Date)
	e.Str("title", m.Title)
	e.Str("media_type", m.MediaType)
	e.Str("url", m.URL)
	if m.HDURL != "" {
		e.Str("hdurl", m.HDURL)
	}
}

// IsImage reports whether the record points at downloadable image bytes.
// Some days the APOD is a video embed, which has nothing to cache.
func (m Metadata) IsImage() bool {
	return m.MediaType == "image"
}

// ImageURL returns the asset URL to download, preferring the HD variant when
// hd is set and the API provided one.
func (m Metadata) ImageURL(hd bool) string {
	if hd && m.HDURL != "" {
		return m.HDURL
	}
	return m.URL
}

type ClientParams struct {
	// APIKey authenticates against the APOD API. Comes from flag, env or
	// config; never embedded in source.
	APIKey string
	Logger zerolog.Logger
}

type ClientOption func(c *Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpCli *http.Client) ClientOption {
	return func(c *Client) {
		c.httpCli = httpCli
	}
}

func NewClient(params ClientParams, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  params.APIKey,
		httpCli: &http.Client{Timeout: 60 * time.Second},
		logger:  params.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Client struct {
	baseURL string
	apiKey  string
	httpCli *http.Client
	logger  zerolog.Logger
}

// GetMetadata fetches the APOD record for date (YYYY-MM-DD).
func (c *Client) GetMetadata(ctx context.Context, date string) (*Metadata, error) {
	endpoint, err := url.Parse(c.baseURL + "/planetary/apod")
	if err != nil {
		return nil, fmt.Errorf("could not build request url: %w", err)
	}

	query := endpoint.Query()
	query.Set("api_key", c.apiKey)
	query.Set("date", date)
	endpoint.RawQuery = query.Encode()

	c.logger.Debug().Str("date", date).Msg("requesting picture metadata")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach APOD API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APOD API returned status %d", resp.StatusCode)
	}

	meta := Metadata{}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("could not decode APOD response: %w", err)
	}

	c.logger.Debug().Object("metadata", meta).Msg("got picture metadata")
	return &meta, nil
}
