// Package storecli performs the direct upload of video bytes to object
// storage. The server hands the client a presigned POST (URL plus signed
// form fields); the client replays those fields in a browser-style
// multipart/form-data request and never holds storage credentials of its
// own.
package storecli

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

// PostVideo uploads content under the server-issued presigned POST. The
// signed fields go first and the file part last, as the POST-policy protocol
// requires. Failures use the gateway's error taxonomy so callers can treat
// storage and API errors uniformly.
func PostVideo(ctx context.Context, httpClient *http.Client, presigned models.PresignedPost, filename string, content io.Reader) error {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for field, value := range presigned.Fields {
		if err := form.WriteField(field, value); err != nil {
			return &api.EncodeError{Err: err}
		}
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return &api.EncodeError{Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &api.EncodeError{Err: err}
	}
	if err := form.Close(); err != nil {
		return &api.EncodeError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, presigned.URL, &body)
	if err != nil {
		return &api.EncodeError{Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return &api.NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &api.ServerError{StatusCode: resp.StatusCode, Message: "storage upload rejected"}
	}
	return nil
}
