package apod_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/skypaper/skypaper/apod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 1024)
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})

	data, err := client.Download(context.Background(), server.URL+"/image.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownload_Empty(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	data, err := client.Download(context.Background(), server.URL+"/empty.jpg")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDownload_MaxSizeExceeded(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 2048)
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})

	_, err := client.Download(context.Background(), server.URL+"/big.jpg", apod.WithMaxBytes(1024))
	assert.ErrorIs(t, err, apod.ErrMaxSizeExceeded)
}

func TestDownload_MaxSizeExactFit(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 1024)
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})

	data, err := client.Download(context.Background(), server.URL+"/fits.jpg", apod.WithMaxBytes(1024))
	require.NoError(t, err)
	assert.Len(t, data, 1024)
}

func TestDownload_HTTPError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})

	_, err := client.Download(context.Background(), server.URL+"/gone.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "410")
}
