package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cvscreen-backend/internal/extract"
	localstore "cvscreen-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{Store: localstore.New(t.TempDir()), Repo: repo}
	router := gin.New()
	api := router.Group("/api")
	NewHandler(svc).RegisterRoutes(api)
	return router, repo
}

func uploadFile(t *testing.T, router *gin.Engine, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload-cv/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadEndpointStoresUnsupportedFileWithMarker(t *testing.T) {
	router, repo := newTestRouter(t)

	resp := uploadFile(t, router, "resume.txt", []byte("plain text resume"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", resp.Code, resp.Body)
	}

	var body UploadedCVResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID == "" {
		t.Fatal("missing id")
	}
	if !strings.HasPrefix(body.File, "/files/uploads/cvs/") {
		t.Fatalf("file = %q, want /files/uploads/cvs/ prefix", body.File)
	}
	if body.ExtractedText != extract.UnsupportedFormat {
		t.Fatalf("extracted_text = %q, want marker", body.ExtractedText)
	}

	stored, err := repo.GetByID(context.Background(), body.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ExtractedText != extract.UnsupportedFormat {
		t.Fatalf("stored text = %q, want marker", stored.ExtractedText)
	}
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-cv/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestUploadThenSearchRoundtrip(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := uploadFile(t, router, "cv.docx", buildDocx(t, "Jane Doe", "Python engineer"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload status = %d; body %s", resp.Code, resp.Body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search-cv/?q=python", nil)
	searchResp := httptest.NewRecorder()
	router.ServeHTTP(searchResp, req)
	if searchResp.Code != http.StatusOK {
		t.Fatalf("search status = %d; body %s", searchResp.Code, searchResp.Body)
	}

	var results []UploadedCVResponse
	if err := json.Unmarshal(searchResp.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	if results[0].ExtractedText != "Jane Doe\nPython engineer" {
		t.Fatalf("extracted_text = %q", results[0].ExtractedText)
	}
}

func TestReextractEndpointOverwritesStaleText(t *testing.T) {
	router, repo := newTestRouter(t)

	resp := uploadFile(t, router, "cv.docx", buildDocx(t, "Jane Doe", "jane@x.com"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload status = %d; body %s", resp.Code, resp.Body)
	}
	var uploaded UploadedCVResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode upload body: %v", err)
	}

	// Simulate a stale extraction result for the stored file.
	if err := repo.UpdateExtractedText(context.Background(), uploaded.ID, "stale text"); err != nil {
		t.Fatalf("seed stale text: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/reextract-cv/", strings.NewReader(`{"cv_id":"`+uploaded.ID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	reResp := httptest.NewRecorder()
	router.ServeHTTP(reResp, req)
	if reResp.Code != http.StatusOK {
		t.Fatalf("reextract status = %d; body %s", reResp.Code, reResp.Body)
	}

	var body UploadedCVResponse
	if err := json.Unmarshal(reResp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode reextract body: %v", err)
	}
	if body.ExtractedText != "Jane Doe\njane@x.com" {
		t.Fatalf("extracted_text = %q, want re-extracted content", body.ExtractedText)
	}

	stored, err := repo.GetByID(context.Background(), uploaded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ExtractedText != "Jane Doe\njane@x.com" {
		t.Fatalf("stored text = %q, want overwritten", stored.ExtractedText)
	}
}

func TestReextractEndpointUnknownCV(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reextract-cv/", strings.NewReader(`{"cv_id":"missing"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestSearchEndpointRequiresKeyword(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/search-cv/", "/api/search-cv/?q=%20%20"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("path %q: status = %d, want 400", path, resp.Code)
		}
	}
}

func TestSearchEndpointNoMatches(t *testing.T) {
	router, repo := newTestRouter(t)
	err := repo.Create(context.Background(), UploadedCV{
		ID:            "cv-1",
		FileName:      "resume.pdf",
		ExtractedText: "Go engineer",
		UploadedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed cv: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search-cv/?q=haskell", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "No matching CVs found." {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestSearchEndpointNewestFirst(t *testing.T) {
	router, repo := newTestRouter(t)
	base := time.Now().UTC()
	for i, id := range []string{"cv-old", "cv-new"} {
		err := repo.Create(context.Background(), UploadedCV{
			ID:            id,
			FileName:      id + ".pdf",
			ExtractedText: "Python engineer",
			UploadedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed cv: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search-cv/?q=Python", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", resp.Code, resp.Body)
	}

	var results []UploadedCVResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 2 || results[0].ID != "cv-new" {
		t.Fatalf("unexpected order: %+v", results)
	}
}

// buildDocx assembles a minimal docx container with one paragraph per string.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>`)
		doc.WriteString(p)
		doc.WriteString(`</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write(doc.Bytes()); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
