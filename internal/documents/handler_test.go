package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/shared/config"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		LogLevel:        "error",
		ObjectStoreType: "local",
		MaxUploadBytes:  1 << 20,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func uploadRequest(t *testing.T, name, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	return req
}

func TestDocumentsUploadCurrentAndText(t *testing.T) {
	router := newRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "hello.txt", "hello world"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		DocumentID string `json:"documentId"`
		FileName   string `json:"fileName"`
		MimeType   string `json:"mimeType"`
		SizeBytes  int64  `json:"sizeBytes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatalf("expected documentId, got empty")
	}
	if created.MimeType != "text/plain" || created.SizeBytes != 11 {
		t.Fatalf("unexpected document: %+v", created)
	}
	if loc := resp.Header().Get("Location"); loc != "/api/v1/documents/"+created.DocumentID {
		t.Fatalf("unexpected Location %q", loc)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
	addGuestHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var current struct {
		DocumentID string `json:"documentId"`
		FileName   string `json:"fileName"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&current); err != nil {
		t.Fatalf("decode current response: %v", err)
	}
	if current.FileName != "hello.txt" || current.DocumentID != created.DocumentID {
		t.Fatalf("unexpected current document: %+v", current)
	}

	reqText := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID+"/text", nil)
	addGuestHeader(reqText)
	respText := httptest.NewRecorder()
	router.ServeHTTP(respText, reqText)
	if respText.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respText.Code, respText.Body.String())
	}
	var text struct {
		Text       string `json:"text"`
		Characters int    `json:"characters"`
	}
	if err := json.NewDecoder(respText.Body).Decode(&text); err != nil {
		t.Fatalf("decode text response: %v", err)
	}
	if text.Text != "hello world" || text.Characters != 11 {
		t.Fatalf("unexpected text response: %+v", text)
	}
}

func TestDocumentsRequireIdentity(t *testing.T) {
	router := newRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestDocumentsNotFound(t *testing.T) {
	router := newRouter(t)
	for _, path := range []string{"/api/v1/documents/current", "/api/v1/documents/missing", "/api/v1/documents/missing/text"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		addGuestHeader(req)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.Code)
		}
	}
}

func TestDocumentsUnsupportedTextIs422(t *testing.T) {
	router := newRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "photo.png", "\x89PNG\r\n\x1a\n0000"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created struct {
		DocumentID string `json:"documentId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&created)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID+"/text", nil)
	addGuestHeader(req)
	respText := httptest.NewRecorder()
	router.ServeHTTP(respText, req)
	if respText.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", respText.Code)
	}
}

func TestDocumentsListNewestFirst(t *testing.T) {
	router := newRouter(t)
	for _, name := range []string{"a.txt", "b.txt"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, uploadRequest(t, name, "content of "+name))
		if resp.Code != http.StatusCreated {
			t.Fatalf("upload %s: %d", name, resp.Code)
		}
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=10", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var docs []struct {
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 2 || docs[0].FileName != "b.txt" {
		t.Fatalf("unexpected list: %+v", docs)
	}
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}
