// seed carga los CSV de demo (jobs y roles) en MongoDB.
//
// Uso: go run ./cmd/seed -jobs data/jobs.csv -roles data/roles.csv [-latin1] [-drop]
// Usa MONGO_URI, MONGO_DATABASE y los nombres de colección de la configuración.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

const defaultSeedDatabase = "sales"

func main() {
	jobsPath := flag.String("jobs", "", "CSV de jobs: agent,timestamp,profit,status,lead")
	rolesPath := flag.String("roles", "", "CSV de roles: agent,team")
	latin1 := flag.Bool("latin1", false, "los CSV vienen en ISO-8859-1")
	drop := flag.Bool("drop", false, "vaciar las colecciones antes de insertar")
	flag.Parse()

	if *jobsPath == "" && *rolesPath == "" {
		fmt.Fprintln(os.Stderr, "indique al menos -jobs o -roles")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer client.Disconnect(ctx)

	dbName := cfg.Mongo.Database
	if dbName == "" {
		dbName = defaultSeedDatabase
	}
	db := client.Database(dbName)

	steps := []struct {
		path       string
		collection string
		parse      func(io.Reader, bool) ([]interface{}, error)
	}{
		{*jobsPath, cfg.Mongo.JobsCollection, jobDocuments},
		{*rolesPath, cfg.Mongo.RolesCollection, roleDocuments},
	}
	for _, s := range steps {
		if s.path == "" {
			continue
		}
		n, err := seedFile(ctx, db.Collection(s.collection), s.path, *latin1, *drop, s.parse)
		if err != nil {
			log.Fatal().Err(err).Str("file", s.path).Msg("seed")
		}
		log.Info().
			Str("database", dbName).
			Str("collection", s.collection).
			Int("documents", n).
			Msg("colección cargada")
	}
}

func seedFile(
	ctx context.Context,
	coll *mongo.Collection,
	path string,
	latin1, drop bool,
	parse func(io.Reader, bool) ([]interface{}, error),
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	docs, err := parse(f, latin1)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if drop {
		if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
			return 0, fmt.Errorf("clear %s: %w", coll.Name(), err)
		}
	}
	if len(docs) == 0 {
		return 0, nil
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return len(res.InsertedIDs), nil
}
