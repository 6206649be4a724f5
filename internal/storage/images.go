package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore guarda las portadas subidas en disco. Los archivos no se
// reclaman al actualizar o borrar un libro (limpieza pendiente del
// lado del almacenamiento, fuera de este servicio).
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creando directorio de imágenes: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string { return s.dir }

// Save escribe el contenido y devuelve el nombre de archivo generado:
// nombre original sin espacios + "_" + epoch millis + extensión.
func (s *ImageStore) Save(originalName string, src io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	base = strings.ReplaceAll(base, " ", "_")

	filename := fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}
