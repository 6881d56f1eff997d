package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EvidenciaStore maps the opaque relative paths recorded on permisos to real
// files on disk. Contents are never inspected here or anywhere else — MIME
// and size limits are the upload handler's concern.
type EvidenciaStore struct {
	dir string
}

func NewEvidenciaStore(dir string) *EvidenciaStore {
	return &EvidenciaStore{dir: dir}
}

// RutaRelativa builds a collision-free relative path for a new attachment.
func (s *EvidenciaStore) RutaRelativa(permisoID uint, originalName string) string {
	ext := filepath.Ext(originalName)
	return filepath.Join(fmt.Sprintf("permiso_%d", permisoID), uuid.NewString()+ext)
}

// RutaAbsoluta resolves a stored relative path, creating parent directories.
func (s *EvidenciaStore) RutaAbsoluta(rel string) (string, error) {
	abs := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("evidencias: create dir: %w", err)
	}
	return abs, nil
}

// Eliminar removes the file behind a relative path; missing files are not an
// error (the row may reference an attachment cleaned up earlier).
func (s *EvidenciaStore) Eliminar(rel string) error {
	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
