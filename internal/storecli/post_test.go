package storecli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

func TestPostVideo(t *testing.T) {
	var gotKey, gotSignature, gotFilename, gotContent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotKey = r.FormValue("key")
		gotSignature = r.FormValue("x-amz-signature")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(data)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	presigned := models.PresignedPost{
		URL: ts.URL,
		Fields: map[string]string{
			"key":             "videos/abc",
			"x-amz-signature": "sig",
		},
	}
	err := PostVideo(context.Background(), nil, presigned, "serve.mp4", strings.NewReader("fake video bytes"))
	require.NoError(t, err)

	assert.Equal(t, "videos/abc", gotKey)
	assert.Equal(t, "sig", gotSignature)
	assert.Equal(t, "serve.mp4", gotFilename)
	assert.Equal(t, "fake video bytes", gotContent)
}

func TestPostVideoRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	err := PostVideo(context.Background(), nil, models.PresignedPost{URL: ts.URL}, "serve.mp4", strings.NewReader("x"))
	require.Error(t, err)
	var srv *api.ServerError
	require.True(t, errors.As(err, &srv))
	assert.Equal(t, http.StatusForbidden, srv.StatusCode)
}

func TestPostVideoUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	err := PostVideo(context.Background(), nil, models.PresignedPost{URL: ts.URL}, "serve.mp4", strings.NewReader("x"))
	require.Error(t, err)
	var netErr *api.NetworkError
	assert.True(t, errors.As(err, &netErr))
}
