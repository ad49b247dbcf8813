package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// Bases internas de MongoDB que nunca contienen datos de la app.
var systemDatabases = map[string]bool{"admin": true, "local": true, "config": true}

// catalog listado de bases y colecciones del cluster.
type catalog interface {
	DatabaseNames(ctx context.Context) ([]string, error)
	CollectionNames(ctx context.Context, database string) ([]string, error)
}

type clientCatalog struct {
	client *mongo.Client
}

func (c clientCatalog) DatabaseNames(ctx context.Context) ([]string, error) {
	return c.client.ListDatabaseNames(ctx, bson.D{})
}

func (c clientCatalog) CollectionNames(ctx context.Context, database string) ([]string, error) {
	return c.client.Database(database).ListCollectionNames(ctx, bson.D{})
}

// Registry resuelve en qué base vive cada colección. Mientras una colección no
// esté resuelta, su repositorio responde CollectionError (503).
type Registry struct {
	client  *mongo.Client
	catalog catalog
	cfg     config.MongoConfig
	log     *logger.Logger

	mu       sync.RWMutex
	location map[string]string // colección → base
}

// NewRegistry construye el registro; no hace I/O hasta Discover.
func NewRegistry(client *mongo.Client, cfg config.MongoConfig, log *logger.Logger) *Registry {
	return newRegistry(client, clientCatalog{client: client}, cfg, log)
}

func newRegistry(client *mongo.Client, cat catalog, cfg config.MongoConfig, log *logger.Logger) *Registry {
	return &Registry{
		client:   client,
		catalog:  cat,
		cfg:      cfg,
		log:      log,
		location: make(map[string]string),
	}
}

func (r *Registry) wanted() []string {
	return []string{r.cfg.JobsCollection, r.cfg.RolesCollection}
}

// Discover busca las colecciones pendientes. Con MONGO_DATABASE fijo solo mira esa
// base; si no, recorre todas y toma la primera que la contenga.
// Devuelve true cuando ambas quedaron resueltas.
func (r *Registry) Discover(ctx context.Context) (bool, error) {
	pending := r.pending()
	if len(pending) == 0 {
		return true, nil
	}

	databases := []string{r.cfg.Database}
	if r.cfg.Database == "" {
		names, err := r.catalog.DatabaseNames(ctx)
		if err != nil {
			return false, fmt.Errorf("list databases: %w", err)
		}
		databases = make([]string, 0, len(names))
		for _, n := range names {
			if !systemDatabases[n] {
				databases = append(databases, n)
			}
		}
	}

	found := make(map[string]string)
	for _, db := range databases {
		names, err := r.catalog.CollectionNames(ctx, db)
		if err != nil {
			return false, fmt.Errorf("list collections in %s: %w", db, err)
		}
		for _, n := range names {
			if _, done := found[n]; done {
				continue
			}
			for _, want := range pending {
				if n == want {
					found[n] = db
				}
			}
		}
	}

	r.mu.Lock()
	for coll, db := range found {
		r.location[coll] = db
		r.log.Info().Str("collection", coll).Str("database", db).Msg("colección encontrada")
	}
	r.mu.Unlock()

	missing := r.pending()
	for _, coll := range missing {
		r.log.Warn().Str("collection", coll).Strs("databases", databases).Msg("colección no encontrada")
	}
	return len(missing) == 0, nil
}

// RunDiscovery reintenta Discover cada interval hasta resolver ambas colecciones
// o hasta que ctx termine. Con interval 0 hace un solo intento.
func (r *Registry) RunDiscovery(ctx context.Context, interval time.Duration) {
	for {
		done, err := r.Discover(ctx)
		if err != nil {
			r.log.Error().Err(err).Msg("error buscando colecciones")
		}
		if done || interval <= 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func (r *Registry) pending() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, coll := range r.wanted() {
		if _, ok := r.location[coll]; !ok {
			out = append(out, coll)
		}
	}
	return out
}

// Database base donde se resolvió la colección.
func (r *Registry) Database(collection string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db, ok := r.location[collection]
	return db, ok
}

// Collection handle listo para consultar o CollectionError si aún no se resolvió.
func (r *Registry) Collection(name string) (*mongo.Collection, error) {
	db, ok := r.Database(name)
	if !ok {
		return nil, &domain.CollectionError{Collection: name}
	}
	return r.client.Database(db).Collection(name), nil
}

// Status colección → resuelta, para el health check.
func (r *Registry) Status() map[string]bool {
	out := make(map[string]bool, 2)
	for _, coll := range r.wanted() {
		_, ok := r.Database(coll)
		out[coll] = ok
	}
	return out
}
