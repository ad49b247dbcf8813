package repository

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// RoleRepository lectura completa de la colección agente → equipo.
type RoleRepository interface {
	FindAll(ctx context.Context) ([]entity.Role, error)
}
