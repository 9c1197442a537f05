package main

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

// store is the opened product table together with its lifecycle.
type store struct {
	products repository.ProductRepository
	health   db.HealthChecker
	close    func()
}

func openStore(ctx context.Context, cfg config.Store) (store, error) {
	switch cfg.Driver {
	case config.StoreDriverMySQL:
		client, err := db.NewMySQLClient(ctx, cfg.MySQL)
		if err != nil {
			return store{}, fmt.Errorf("error creating mysql client: %w", err)
		}

		return store{
			products: repository.NewMySQLProductRepository(client.DB),
			health:   client,
			close:    func() { client.Close() },
		}, nil

	default:
		pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
		if err != nil {
			return store{}, fmt.Errorf("error creating pgx pool: %w", err)
		}

		dbClient := db.NewClient(pgxPool)

		return store{
			products: repository.NewProductRepository(dbClient),
			health:   dbClient,
			close:    pgxPool.Close,
		}, nil
	}
}
