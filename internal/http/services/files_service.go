package services

import (
	"context"
	"io"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/metrics"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// FileService maneja los archivos subidos: bytes en disco vía Storage,
// metadata en el store. Reemplazo y borrado son owner-only.
type FileService struct {
	deps Deps
}

// Upload guarda el contenido y registra la metadata a nombre del caller.
func (s *FileService) Upload(ctx context.Context, caller token.AuthContext, purpose, fileName string, r io.Reader) (*domain.File, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Files.Upload"))

	rel, err := s.deps.Files.Save(fileName, r)
	if err != nil {
		return nil, err
	}

	f := &domain.File{
		Purpose:  purpose,
		Path:     rel,
		FileName: fileName,
		UserID:   caller.PrincipalID,
	}
	if err := s.deps.Store.Files().Create(ctx, f); err != nil {
		// metadata falló: no dejar el blob huérfano
		_ = s.deps.Files.Remove(rel)
		return nil, err
	}
	log.Info("file uploaded", logger.UserID(caller.PrincipalID))
	return f, nil
}

// Get devuelve metadata + contenido. La lectura no exige ownership; el
// gate de la ruta ya exigió View.
func (s *FileService) Get(ctx context.Context, id int) (*domain.File, io.ReadCloser, error) {
	f, err := s.deps.Store.Files().GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.deps.Files.Open(f.Path)
	if err != nil {
		return nil, nil, err
	}
	return f, rc, nil
}

// ListMine devuelve los archivos del caller.
func (s *FileService) ListMine(ctx context.Context, caller token.AuthContext) ([]domain.File, error) {
	return s.deps.Store.Files().ListByUser(ctx, caller.PrincipalID)
}

// Replace sube contenido nuevo para un archivo propio. El blob viejo se
// borra recién cuando la metadata ya apunta al nuevo.
func (s *FileService) Replace(ctx context.Context, caller token.AuthContext, id int, fileName string, r io.Reader) (*domain.File, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Files.Replace"))

	f, err := s.deps.Store.Files().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.AssertOwner(f, caller.PrincipalID); err != nil {
		metrics.AuthRejectsTotal.WithLabelValues("not_owner").Inc()
		return nil, err
	}

	rel, err := s.deps.Files.Save(fileName, r)
	if err != nil {
		return nil, err
	}
	oldPath := f.Path
	f.Path = rel
	f.FileName = fileName

	if err := s.deps.Store.Files().Update(ctx, f); err != nil {
		_ = s.deps.Files.Remove(rel)
		return nil, err
	}
	_ = s.deps.Files.Remove(oldPath)

	log.Info("file replaced", logger.UserID(caller.PrincipalID))
	return f, nil
}

// Delete borra un archivo propio (metadata y blob).
func (s *FileService) Delete(ctx context.Context, caller token.AuthContext, id int) error {
	f, err := s.deps.Store.Files().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.AssertOwner(f, caller.PrincipalID); err != nil {
		metrics.AuthRejectsTotal.WithLabelValues("not_owner").Inc()
		return err
	}
	if err := s.deps.Store.Files().Delete(ctx, id); err != nil {
		return err
	}
	_ = s.deps.Files.Remove(f.Path)
	logger.From(ctx).Info("file deleted", logger.Layer("service"), logger.Op("Files.Delete"), logger.UserID(caller.PrincipalID))
	return nil
}
