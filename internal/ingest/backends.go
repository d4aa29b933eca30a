package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vacayzen/product-recommendation/internal/config"
	"github.com/vacayzen/product-recommendation/internal/drive"
	"github.com/vacayzen/product-recommendation/internal/repository/postgres"
	"github.com/vacayzen/product-recommendation/internal/storage"
)

// NewResolver wires every remote backend that has configuration. The returned
// cleanup closes the database pool when one was opened.
func NewResolver(ctx context.Context, cfg *config.Config, allowFiles bool) (*Resolver, func(), error) {
	r := &Resolver{
		Encoding:   cfg.Ingest.Encoding,
		AllowFiles: allowFiles,
	}
	cleanup := func() {}

	if cfg.Storage.Endpoint != "" {
		client, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return nil, cleanup, fmt.Errorf("init object storage: %w", err)
		}
		r.Storage = client
		log.Info().Str("endpoint", cfg.Storage.Endpoint).Msg("s3 sources enabled")
	}

	if cfg.Drive.CredentialsJSON != "" {
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, cleanup, fmt.Errorf("init google drive: %w", err)
		}
		r.Drive = svc
		log.Info().Msg("drive sources enabled")
	}

	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, cleanup, fmt.Errorf("init database: %w", err)
		}
		r.Tables = postgres.NewTableRepository(db)
		cleanup = func() { db.Close() }
		log.Info().Str("driver", cfg.Database.Driver).Str("host", cfg.Database.Host).Msg("sql sources enabled")
	}

	return r, cleanup, nil
}
