package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
	"github.com/tu-usuario/ofertas-pro/pkg/config"
)

// Asegura que LocalStore implementa repository.MediaStore.
var _ repository.MediaStore = (*LocalStore)(nil)

// Extensiones de imagen aceptadas.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// LocalStore guarda archivos en disco bajo UploadDir y los sirve bajo BaseURL.
// El nombre final es un UUID: nunca se confía en el nombre del cliente.
type LocalStore struct {
	uploadDir string
	baseURL   string
}

// NewLocalStore construye el store local de imágenes.
func NewLocalStore(cfg config.MediaConfig) *LocalStore {
	return &LocalStore{uploadDir: cfg.UploadDir, baseURL: strings.TrimRight(cfg.BaseURL, "/")}
}

// Store escribe el archivo y devuelve su URL pública.
func (s *LocalStore) Store(_ context.Context, data []byte, filename, folder string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("archivo vacío")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("extensión no permitida: %s", ext)
	}

	dir := filepath.Join(s.uploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de uploads: %w", err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return path.Join(s.baseURL, folder, name), nil
}
