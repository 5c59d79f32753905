package dto

import (
	"time"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

// FileResponse es la metadata pública de un archivo subido. El path en
// disco nunca se expone.
type FileResponse struct {
	ID       int       `json:"fileId"`
	Purpose  string    `json:"purpose,omitempty"`
	FileName string    `json:"fileName"`
	Uploaded time.Time `json:"uploaded"`
	OwnerID  int       `json:"userId"`
}

func NewFileResponse(f *domain.File) FileResponse {
	return FileResponse{
		ID:       f.ID,
		Purpose:  f.Purpose,
		FileName: f.FileName,
		Uploaded: f.Uploaded,
		OwnerID:  f.UserID,
	}
}

func NewFileResponses(files []domain.File) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for i := range files {
		out = append(out, NewFileResponse(&files[i]))
	}
	return out
}
