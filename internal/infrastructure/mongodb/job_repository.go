package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

// Asegura que JobRepo implementa repository.JobRepository.
var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo lectura completa de la colección de jobs.
type JobRepo struct {
	registry *Registry
	name     string
}

// NewJobRepository construye el adaptador sobre la colección configurada.
func NewJobRepository(registry *Registry) *JobRepo {
	return &JobRepo{registry: registry, name: registry.cfg.JobsCollection}
}

// FindAll lee todos los documentos y los normaliza.
func (r *JobRepo) FindAll(ctx context.Context) ([]entity.Job, error) {
	docs, err := findAll(ctx, r.registry, r.name)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Job, 0, len(docs))
	for _, d := range docs {
		out = append(out, toJob(d))
	}
	return out, nil
}

// findAll Find sin filtro + cursor.All. Colección no resuelta → CollectionError.
func findAll(ctx context.Context, registry *Registry, name string) ([]bson.M, error) {
	coll, err := registry.Collection(name)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return docs, nil
}
