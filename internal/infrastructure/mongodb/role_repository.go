package mongodb

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

// Asegura que RoleRepo implementa repository.RoleRepository.
var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo lectura completa de la colección agente → equipo.
type RoleRepo struct {
	registry *Registry
	name     string
}

// NewRoleRepository construye el adaptador sobre la colección configurada.
func NewRoleRepository(registry *Registry) *RoleRepo {
	return &RoleRepo{registry: registry, name: registry.cfg.RolesCollection}
}

// FindAll lee todas las filas de roles.
func (r *RoleRepo) FindAll(ctx context.Context) ([]entity.Role, error) {
	docs, err := findAll(ctx, r.registry, r.name)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Role, 0, len(docs))
	for _, d := range docs {
		out = append(out, toRole(d))
	}
	return out, nil
}
