package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/shared/storage/object/memory"
)

func newUploadsRouter(store *memory.Store, userID string) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(store)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("authToken", "test-token")
		c.Next()
	})
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router, handler
}

func multipartBody(t *testing.T, field, fileName, content, title string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if title != "" {
		if err := writer.WriteField("title", title); err != nil {
			t.Fatalf("write title field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v: %s", err, resp.Body.String())
	}
	return env
}

func TestUploadDocumentAndList(t *testing.T) {
	store := memory.New()
	router, handler := newUploadsRouter(store, "user-1")
	handler.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	body, contentType := multipartBody(t, "document", "report.pdf", "pdf-bytes", "")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	if !env.Success {
		t.Fatalf("expected success envelope: %s", resp.Body.String())
	}

	var created item
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created item: %v", err)
	}
	if created.Name != "2025-03-14_09-26-53_report.pdf" {
		t.Fatalf("unexpected stored name %q", created.Name)
	}
	if created.SizeFormatted == "" {
		t.Fatalf("expected formatted size")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/uploads/documents", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	env = decodeEnvelope(t, resp)
	if env.Count != 1 {
		t.Fatalf("expected count 1, got %d", env.Count)
	}
	var listed []item
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != created.Name {
		t.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestUploadTitleOverridesFileName(t *testing.T) {
	store := memory.New()
	router, handler := newUploadsRouter(store, "user-1")
	handler.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	body, contentType := multipartBody(t, "photo", "IMG_0001.jpg", "jpeg-bytes", "Beach Day")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/photos", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	var created item
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created item: %v", err)
	}
	if created.Name != "2025-03-14_09-26-53_Beach_Day.jpg" {
		t.Fatalf("unexpected stored name %q", created.Name)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	store := memory.New()
	router, _ := newUploadsRouter(store, "user-1")

	body, contentType := multipartBody(t, "photo", "malware.exe", "bytes", "")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/photos", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	// Nothing reaches the store when the extension gate rejects.
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d objects", store.Len())
	}
}

func TestUploadOversizeRejectedBeforeStore(t *testing.T) {
	store := memory.New()
	router, _ := newUploadsRouter(store, "user-1")

	// One byte past the 50 MiB cap.
	oversize := strings.Repeat("a", 50<<20+1)
	body, contentType := multipartBody(t, "document", "huge.pdf", oversize, "")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "50 MB limit") {
		t.Fatalf("expected size-limit message, got %s", resp.Body.String())
	}
	if store.Len() != 0 {
		t.Fatalf("expected no store write, got %d objects", store.Len())
	}
}

func TestUploadRequiresFile(t *testing.T) {
	store := memory.New()
	router, _ := newUploadsRouter(store, "user-1")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("title", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUploadSameSecondCollisionFails(t *testing.T) {
	store := memory.New()
	router, handler := newUploadsRouter(store, "user-1")
	handler.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	for i, wantStatus := range []int{http.StatusCreated, http.StatusInternalServerError} {
		body, contentType := multipartBody(t, "document", "notes.txt", "text", "")
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != wantStatus {
			t.Fatalf("upload %d: expected status %d, got %d: %s", i, wantStatus, resp.Code, resp.Body.String())
		}
	}
	if store.Len() != 1 {
		t.Fatalf("expected exactly one stored object, got %d", store.Len())
	}
}

func TestListEmptyCategory(t *testing.T) {
	store := memory.New()
	router, _ := newUploadsRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/uploads/photos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	env := decodeEnvelope(t, resp)
	if !env.Success || env.Count != 0 {
		t.Fatalf("unexpected envelope: %s", resp.Body.String())
	}
	if string(env.Data) != "[]" {
		t.Fatalf("expected empty array data, got %s", env.Data)
	}
}

func TestGetFileNotFound(t *testing.T) {
	store := memory.New()
	router, _ := newUploadsRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/uploads/documents/missing.pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	store := memory.New()
	router, handler := newUploadsRouter(store, "user-1")

	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	handler.now = func() time.Time { return at }

	names := make([]string, 0, 2)
	for _, file := range []string{"one.txt", "two.txt"} {
		body, contentType := multipartBody(t, "document", file, "text", "")
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("upload %s: status %d", file, resp.Code)
		}
		env := decodeEnvelope(t, resp)
		var created item
		if err := json.Unmarshal(env.Data, &created); err != nil {
			t.Fatalf("decode created item: %v", err)
		}
		names = append(names, created.Name)
		at = at.Add(time.Second)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/documents/"+names[0], nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if store.Len() != 1 {
		t.Fatalf("expected one object left, got %d", store.Len())
	}

	// The survivor is still listed.
	req = httptest.NewRequest(http.MethodGet, "/api/uploads/documents/"+names[1], nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected surviving file, got %d", resp.Code)
	}
}

func TestDeleteMissingFile(t *testing.T) {
	store := memory.New()
	router, _ := newUploadsRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/photos/missing.jpg", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCategoriesAreIsolated(t *testing.T) {
	store := memory.New()
	router, handler := newUploadsRouter(store, "user-1")
	handler.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	body, contentType := multipartBody(t, "document", "notes.txt", "text", "")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: status %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/uploads/photos", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	env := decodeEnvelope(t, resp)
	if env.Count != 0 {
		t.Fatalf("document leaked into photos listing: %s", resp.Body.String())
	}
}
