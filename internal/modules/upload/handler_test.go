package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brandlink/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items []domain.Upload
}

func (m *memRepo) Create(_ context.Context, u *domain.Upload) error {
	m.items = append(m.items, *u)
	return nil
}

func (m *memRepo) ListByUserID(_ context.Context, userID int64) ([]domain.Upload, error) {
	var out []domain.Upload
	for _, u := range m.items {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func setupRouter(t *testing.T) (*gin.Engine, *memRepo, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	repo := &memRepo{}
	h := NewHandler(NewService(repo, dir, "/static/uploads"))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Next()
	})
	r.POST("/api/upload", h.Upload)
	r.GET("/api/upload", h.ListMy)
	return r, repo, dir
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpload_PNG(t *testing.T) {
	r, repo, dir := setupRouter(t)

	body, ct := multipartBody(t, "my logo.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			URL      string `json:"url"`
			PublicID string `json:"publicId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.PublicID)
	assert.True(t, strings.HasPrefix(resp.Data.URL, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(resp.Data.URL, "_my_logo.png"))

	require.Len(t, repo.items, 1)
	assert.Equal(t, "image/png", repo.items[0].MimeType)
	assert.Equal(t, int64(7), repo.items[0].UserID)

	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(repo.items[0].FilePath)))
	assert.NoError(t, err)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	r, repo, _ := setupRouter(t)

	body, ct := multipartBody(t, "notes.png", []byte("just some text, not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FILE_TYPE")
	assert.Empty(t, repo.items)
}

func TestUpload_RejectsLargeFile(t *testing.T) {
	r, _, _ := setupRouter(t)

	big := make([]byte, MaxFileSize+10)
	copy(big, pngHeader)
	body, ct := multipartBody(t, "big.png", big)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
}

func TestUpload_OversizedBodyIsTooLarge(t *testing.T) {
	r, repo, _ := setupRouter(t)

	big := make([]byte, maxRequestBody+1024)
	copy(big, pngHeader)

	// Declared length over the cap.
	body, ct := multipartBody(t, "huge.png", big)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")

	// Unknown length: the MaxBytesReader trips while parsing the form.
	body, ct = multipartBody(t, "huge.png", big)
	req = httptest.NewRequest(http.MethodPost, "/api/upload", io.NopCloser(body))
	req.ContentLength = -1
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")

	assert.Empty(t, repo.items)
}

func TestUpload_MissingFile(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILE")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my_photo", sanitizeName("../../my photo.jpg"))
	assert.Equal(t, "image", sanitizeName(".png"))
}
