package repository

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// JobRepository lectura completa de la colección de ventas.
// Devuelve domain.ErrCollectionUnavailable (envuelto) si la colección no se ha resuelto.
type JobRepository interface {
	FindAll(ctx context.Context) ([]entity.Job, error)
}
