/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

type DataStore[T any] interface {
	Insert(ctx context.Context, entity T) error

	Update(ctx context.Context, entity T) error

	Merge(ctx context.Context, entity T) error

	Delete(ctx context.Context, partitionKey, rowKey string) error
}
