package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/starterhq/backoffice-backend/api/middleware"
	filesvc "github.com/starterhq/backoffice-backend/internal/files"
	"github.com/starterhq/backoffice-backend/pkg/config"
	"github.com/starterhq/backoffice-backend/pkg/db/models"
)

type stubFileService struct {
	stored    *filesvc.FileDTO
	file      *models.File
	lastActor uuid.UUID
	lastInput filesvc.StoreFileInput
	err       error
}

func (s *stubFileService) StoreFile(_ context.Context, actorID uuid.UUID, input filesvc.StoreFileInput) (*filesvc.FileDTO, error) {
	s.lastActor = actorID
	s.lastInput = input
	return s.stored, s.err
}

func (s *stubFileService) GetFile(_ context.Context, _ uuid.UUID) (*models.File, error) {
	return s.file, s.err
}

func (s *stubFileService) ListFiles(_ context.Context) ([]filesvc.FileDTO, error) {
	return nil, s.err
}

func (s *stubFileService) DeleteFile(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, writer.FormDataContentType()
}

func TestUploadFileStoresBlob(t *testing.T) {
	svc := &stubFileService{stored: &filesvc.FileDTO{ID: uuid.New(), Name: "report.pdf"}}
	handler := UploadFile(svc, config.UploadConfig{MaxUploadMB: 1}, nil)

	body, contentType := multipartUpload(t, "file", "report.pdf", []byte("pdf-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	actorID := uuid.New()
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastActor != actorID {
		t.Fatalf("expected actor threaded, got %s", svc.lastActor)
	}
	if svc.lastInput.Name != "report.pdf" || !bytes.Equal(svc.lastInput.Content, []byte("pdf-bytes")) {
		t.Fatalf("unexpected input: %+v", svc.lastInput)
	}
}

func TestUploadFileRequiresFileField(t *testing.T) {
	handler := UploadFile(&stubFileService{}, config.UploadConfig{MaxUploadMB: 1}, nil)

	body, contentType := multipartUpload(t, "attachment", "report.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDownloadFileStreamsAttachment(t *testing.T) {
	file := &models.File{
		ID:      uuid.New(),
		Name:    "report.pdf",
		Type:    "application/pdf",
		Content: []byte("pdf-bytes"),
	}
	handler := DownloadFile(&stubFileService{file: file}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodGet, "/api/v1/files/download/"+file.ID.String(), file.ID.String(), ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="report.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.Equal(resp.Body.Bytes(), []byte("pdf-bytes")) {
		t.Fatal("expected raw blob body")
	}
}

func TestDownloadFileMissing(t *testing.T) {
	handler := DownloadFile(&stubFileService{}, nil)

	id := uuid.NewString()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodGet, "/api/v1/files/download/"+id, id, ""))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
