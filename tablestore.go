/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/suparena/tablestore/config"
	"github.com/suparena/tablestore/datastore"
	"github.com/suparena/tablestore/datastore/azure"
	"github.com/suparena/tablestore/datastore/ddb"
	"github.com/suparena/tablestore/datastore/mock"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tablewriter"
)

// Storage holds one entity datastore per configured table.
type Storage = TypedStorage[*storagemodels.GenericEntity]

// NewStorage builds a Storage with a datastore for every table in cfg, all
// on the configured backend. Table key schemas are registered on the way.
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, errors.NewValidationError("config", "must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger()
	writer := tablewriter.NewWriter(tablewriter.WithLogger(logger))

	storage := NewTypedStorage[*storagemodels.GenericEntity]()
	for _, table := range cfg.Tables {
		if table.KeySchema != nil {
			registry.RegisterKeySchema(table.Name, *table.KeySchema)
		}

		ds, err := newDataStore(ctx, cfg, table.Name, writer, logger)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", table.Name, err)
		}
		if err := storage.Register(table.Name, ds); err != nil {
			return nil, err
		}
		logger.Debug("datastore registered", "table", table.Name, "backend", cfg.Backend)
	}
	return storage, nil
}

func newDataStore(ctx context.Context, cfg *config.Config, table string, writer *tablewriter.Writer, logger *slog.Logger) (datastore.DataStore[*storagemodels.GenericEntity], error) {
	switch cfg.Backend {
	case config.BackendAzure:
		opts := []azure.Option{azure.WithWriter(writer), azure.WithLogger(logger)}
		if cfg.Azure.Endpoint != "" {
			endpoint, err := url.Parse(cfg.Azure.Endpoint)
			if err != nil {
				return nil, errors.NewValidationError("azure.endpoint", err.Error())
			}
			opts = append(opts, azure.WithEndpoint(endpoint))
		}
		return azure.NewTableDataStore(cfg.Azure.Account, cfg.Azure.Key, table, opts...)
	case config.BackendDynamoDB:
		store, err := ddb.NewDynamodbDataStore(ctx, cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.Region, table)
		if err != nil {
			return nil, err
		}
		return store.WithLogger(logger), nil
	case config.BackendMock:
		return mock.New().WithWriter(writer), nil
	}
	return nil, errors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", cfg.Backend))
}
