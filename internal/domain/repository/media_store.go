package repository

import "context"

// MediaStore almacena archivos subidos (imágenes de ofertas, logos) y devuelve
// la URL pública. Es un colaborador externo: un fallo aquí debe abortar la
// operación ANTES de cualquier escritura de fila.
type MediaStore interface {
	Store(ctx context.Context, data []byte, filename, folder string) (string, error)
}
