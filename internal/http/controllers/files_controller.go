package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/http/helpers"
	"github.com/dropDatabas3/bookwookie/internal/http/middlewares"
	"github.com/dropDatabas3/bookwookie/internal/http/services"
)

// maxUploadBytes limita el multipart de subida de archivos.
const maxUploadBytes = 32 << 20 // 32MB

type FilesController struct {
	svc *services.FileService
}

// Create maneja POST /file/create: multipart con campo "file" y
// opcional "purpose".
func (c *FilesController) Create(w http.ResponseWriter, r *http.Request) {
	file, header, ok := c.readMultipart(w, r)
	if !ok {
		return
	}
	defer file.Close()

	f, err := c.svc.Upload(r.Context(), middlewares.GetAuth(r.Context()), r.FormValue("purpose"), header, file)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrFileNotFound, apperrors.ErrBadRequest))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewFileResponse(f))
}

// Get maneja GET /file/get. Con ?fileId= descarga el contenido; sin
// parámetro lista los archivos del caller.
func (c *FilesController) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("fileId")
	if raw == "" {
		files, err := c.svc.ListMine(r.Context(), middlewares.GetAuth(r.Context()))
		if err != nil {
			apperrors.WriteError(w, r, mapError(err, apperrors.ErrFileNotFound, apperrors.ErrBadRequest))
			return
		}
		helpers.WriteJSON(w, http.StatusOK, dto.NewFileResponses(files))
		return
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		apperrors.WriteError(w, r, apperrors.ErrInvalidParameter.WithDetail("fileId debe ser un entero positivo"))
		return
	}

	f, rc, err := c.svc.Get(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrFileNotFound, apperrors.ErrBadRequest))
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.FileName+`"`)
	_, _ = io.Copy(w, rc)
}

// Update maneja POST /file/update: multipart con "fileId" y "file"
// (owner-only, reemplaza el contenido).
func (c *FilesController) Update(w http.ResponseWriter, r *http.Request) {
	file, header, ok := c.readMultipart(w, r)
	if !ok {
		return
	}
	defer file.Close()

	id, err := strconv.Atoi(r.FormValue("fileId"))
	if err != nil || id <= 0 {
		apperrors.WriteError(w, r, apperrors.ErrInvalidParameter.WithDetail("fileId debe ser un entero positivo"))
		return
	}

	f, err := c.svc.Replace(r.Context(), middlewares.GetAuth(r.Context()), id, header, file)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrFileNotFound, apperrors.ErrBadRequest))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewFileResponse(f))
}

// Delete maneja DELETE /file/{fileId} (owner-only).
func (c *FilesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamInt(w, r, "fileId")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), middlewares.GetAuth(r.Context()), id); err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrFileNotFound, apperrors.ErrBadRequest))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readMultipart parsea el form y devuelve el stream + filename del campo
// "file". Devuelve ok=false si ya escribió el error HTTP.
func (c *FilesController) readMultipart(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail("se espera multipart/form-data con campo file"))
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail("falta el campo file"))
		return nil, "", false
	}
	return file, header.Filename, true
}
