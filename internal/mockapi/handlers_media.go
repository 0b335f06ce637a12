package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

func (h *handler) handleListBuckets(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.RLock()
	buckets := []models.Bucket{}
	for _, id := range sortedIDs(h.store.buckets) {
		b := h.store.buckets[id]
		if b.OwnerID == viewer.ID {
			buckets = append(buckets, h.store.renderBucketLocked(b))
		}
	}
	h.store.mu.RUnlock()
	h.writeJSON(w, http.StatusOK, map[string]any{"buckets": buckets})
}

func (h *handler) handleCreateBucket(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		h.writeError(w, http.StatusBadRequest, "bucket name required")
		return
	}

	h.store.mu.Lock()
	b := &bucketRec{
		ID:           h.store.nextIDLocked(),
		OwnerID:      viewer.ID,
		Name:         payload.Name,
		LastModified: time.Now().UTC(),
	}
	h.store.buckets[b.ID] = b
	out := h.store.renderBucketLocked(b)
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusCreated, out)
}

func (h *handler) handleRenameBucket(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		h.writeError(w, http.StatusBadRequest, "bucket name required")
		return
	}

	h.store.mu.Lock()
	b, ok := h.store.buckets[pathID(r)]
	if !ok || b.OwnerID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "bucket not found")
		return
	}
	b.Name = payload.Name
	b.LastModified = time.Now().UTC()
	out := h.store.renderBucketLocked(b)
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleDeleteBucket(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	b, ok := h.store.buckets[pathID(r)]
	if !ok || b.OwnerID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "bucket not found")
		return
	}
	delete(h.store.buckets, b.ID)
	for _, up := range h.store.uploads {
		if up.BucketID == b.ID {
			up.BucketID = models.UnknownID
		}
	}
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListUploads(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.RLock()
	uploads := []models.Upload{}
	for _, id := range sortedIDs(h.store.uploads) {
		up := h.store.uploads[id]
		if up.OwnerID == viewer.ID {
			uploads = append(uploads, renderUpload(up))
		}
	}
	h.store.mu.RUnlock()
	h.writeJSON(w, http.StatusOK, map[string]any{"uploads": uploads})
}

func (h *handler) handleCreateUpload(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		Filename     string            `json:"filename"`
		DisplayTitle string            `json:"display_title"`
		BucketID     int               `json:"bucket_id"`
		Visibility   models.Visibility `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Filename == "" {
		h.writeError(w, http.StatusBadRequest, "filename required")
		return
	}
	if payload.Visibility.Default == "" {
		payload.Visibility.Default = models.VisibilityPrivate
	}

	h.store.mu.Lock()
	up := &uploadRec{
		ID:         h.store.nextIDLocked(),
		OwnerID:    viewer.ID,
		Created:    time.Now().UTC(),
		Title:      payload.DisplayTitle,
		Filename:   payload.Filename,
		BucketID:   payload.BucketID,
		Visibility: payload.Visibility,
		Key:        uuid.NewString(),
	}
	h.store.uploads[up.ID] = up
	out := renderUpload(up)
	key := up.Key
	h.store.mu.Unlock()

	// The presigned POST points back at this server's storage stub; the
	// field set mirrors what S3 policy uploads carry.
	resp := models.NewUploadResponse{
		Upload: out,
		Presigned: models.PresignedPost{
			URL: "http://" + r.Host + "/storage/",
			Fields: map[string]string{
				"key":              key,
				"policy":           "bW9jay1wb2xpY3k=",
				"x-amz-algorithm":  "AWS4-HMAC-SHA256",
				"x-amz-credential": "MOCKACCESSKEY/request",
				"x-amz-signature":  "mock-signature",
			},
		},
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) handleGetUpload(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.RLock()
	up, ok := h.store.uploads[pathID(r)]
	if ok && !h.store.canViewLocked(viewer.ID, up) {
		ok = false
	}
	var out models.Upload
	if ok {
		out = renderUpload(up)
	}
	h.store.mu.RUnlock()

	if !ok {
		h.writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleUpdateUpload(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		DisplayTitle *string            `json:"display_title"`
		BucketID     *int               `json:"bucket_id"`
		Visibility   *models.Visibility `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed upload payload")
		return
	}

	h.store.mu.Lock()
	up, ok := h.store.uploads[pathID(r)]
	if !ok || up.OwnerID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	if payload.BucketID != nil {
		if _, ok := h.store.buckets[*payload.BucketID]; !ok {
			h.store.mu.Unlock()
			h.writeError(w, http.StatusBadRequest, "bucket does not exist")
			return
		}
		up.BucketID = *payload.BucketID
	}
	if payload.DisplayTitle != nil {
		up.Title = *payload.DisplayTitle
	}
	if payload.Visibility != nil {
		up.Visibility = *payload.Visibility
	}
	out := renderUpload(up)
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleDeleteUpload(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	id := pathID(r)
	up, ok := h.store.uploads[id]
	if !ok || up.OwnerID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	h.store.deleteUploadLocked(id, up)
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// handleConvertUpload flips stream_ready once the bytes have been posted.
// The real backend does this asynchronously; the mock completes instantly so
// clients polling for readiness terminate fast.
func (h *handler) handleConvertUpload(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	up, ok := h.store.uploads[pathID(r)]
	if !ok || up.OwnerID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	if !up.Posted {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusBadRequest, "video has not been posted to storage")
		return
	}
	up.StreamReady = true
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// handleStoragePost is the stub presigned-POST target.
func (h *handler) handleStoragePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}
	key := r.FormValue("key")
	if key == "" {
		h.writeError(w, http.StatusBadRequest, "missing key field")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()
	content, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unreadable file field")
		return
	}

	h.store.mu.Lock()
	h.store.blobs[key] = content
	for _, up := range h.store.uploads {
		if up.Key == key {
			up.Posted = true
		}
	}
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListComments(w http.ResponseWriter, r *http.Request, viewer *account) {
	uploadID, err := strconv.Atoi(r.URL.Query().Get("upload"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "upload query parameter required")
		return
	}

	h.store.mu.RLock()
	up, ok := h.store.uploads[uploadID]
	if ok && !h.store.canViewLocked(viewer.ID, up) {
		ok = false
	}
	comments := []models.Comment{}
	if ok {
		for _, id := range sortedIDs(h.store.comments) {
			if c := h.store.comments[id]; c.UploadID == uploadID {
				comments = append(comments, h.store.renderCommentLocked(c))
			}
		}
	}
	h.store.mu.RUnlock()

	if !ok {
		h.writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (h *handler) handleCreateComment(w http.ResponseWriter, r *http.Request, viewer *account) {
	var payload struct {
		UploadID int    `json:"upload_id"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Text == "" {
		h.writeError(w, http.StatusBadRequest, "comment text required")
		return
	}

	h.store.mu.Lock()
	up, ok := h.store.uploads[payload.UploadID]
	if !ok || !h.store.canViewLocked(viewer.ID, up) {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	c := &commentRec{
		ID:       h.store.nextIDLocked(),
		UploadID: payload.UploadID,
		AuthorID: viewer.ID,
		Created:  time.Now().UTC(),
		Text:     payload.Text,
	}
	h.store.comments[c.ID] = c
	out := h.store.renderCommentLocked(c)
	h.store.mu.Unlock()

	h.writeJSON(w, http.StatusCreated, out)
}

func (h *handler) handleDeleteComment(w http.ResponseWriter, r *http.Request, viewer *account) {
	h.store.mu.Lock()
	c, ok := h.store.comments[pathID(r)]
	if !ok || c.AuthorID != viewer.ID {
		h.store.mu.Unlock()
		h.writeError(w, http.StatusNotFound, "comment not found")
		return
	}
	delete(h.store.comments, c.ID)
	h.store.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
