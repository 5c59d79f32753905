// Package files guarda los archivos subidos en disco local.
// La metadata (dueño, nombre original) vive en el store; acá solo bytes.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage escribe y lee archivos bajo un directorio raíz. Los nombres en
// disco son UUIDs para no confiar nunca en el filename del cliente.
type Storage struct {
	root string
}

func NewStorage(root string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("files: root dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("files: mkdir %s: %w", root, err)
	}
	return &Storage{root: root}, nil
}

// Save escribe el contenido con un nombre generado y devuelve el path
// relativo a root. Escritura atómica: tmp → Sync → Close → Rename.
func (s *Storage) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	dst := filepath.Join(s.root, name)

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("files: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("files: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("files: fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("files: close temp: %w", err)
	}
	_ = os.Chmod(tmpPath, 0o644)

	// rename con fallback remove+rename (Windows-safe)
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(dst)
		if err2 := os.Rename(tmpPath, dst); err2 != nil {
			return "", fmt.Errorf("files: rename: %v (after remove: %v)", err, err2)
		}
	}
	return name, nil
}

// Open abre un archivo guardado por su path relativo.
func (s *Storage) Open(rel string) (io.ReadCloser, error) {
	p, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Remove borra el archivo. Ignorar "no existe" lo hace idempotente.
func (s *Storage) Remove(rel string) error {
	p, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve valida que el path quede dentro de root (sin "..").
func (s *Storage) resolve(rel string) (string, error) {
	rel = filepath.Clean(rel)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("files: invalid path %q", rel)
	}
	return filepath.Join(s.root, rel), nil
}
