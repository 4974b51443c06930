package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/starterhq/backoffice-backend/api/middleware"
	"github.com/starterhq/backoffice-backend/api/responses"
	filesvc "github.com/starterhq/backoffice-backend/internal/files"
	"github.com/starterhq/backoffice-backend/pkg/config"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

const uploadFormField = "file"

// UploadFile stores the multipart blob owned by the acting user.
func UploadFile(svc filesvc.Service, uploadCfg config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := uploadCfg.MaxUploadBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		part, header, err := r.FormFile(uploadFormField)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer part.Close()

		content, err := io.ReadAll(part)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload"))
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		dto, err := svc.StoreFile(r.Context(), actorID, filesvc.StoreFileInput{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     content,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "File uploaded successfully", dto)
	}
}

// ListFiles returns metadata for every stored file.
func ListFiles(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListFiles(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Files retrieved successfully", rows)
	}
}

// GetFile returns one file's metadata.
func GetFile(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.GetFile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if file == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
			return
		}

		responses.WriteSuccess(w, "File retrieved successfully", filesvc.FileDTO{
			ID:        file.ID,
			Name:      file.Name,
			Path:      file.Path,
			Type:      file.Type,
			Size:      file.Size,
			UserID:    file.UserID,
			CreatedAt: file.CreatedAt,
			UpdatedAt: file.UpdatedAt,
		})
	}
}

// DownloadFile streams the stored blob as an attachment.
func DownloadFile(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.GetFile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if file == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
			return
		}

		contentType := file.Type
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		w.Write(file.Content)
	}
}

// DeleteFile removes the stored blob.
func DeleteFile(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteFile(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "File deleted successfully", nil)
	}
}
