/*
Package datastore defines the core interface for tablestore's write path.

The main interface is DataStore[T], which writes entities of type T to a table:

	type DataStore[T any] interface {
	    Insert(ctx context.Context, entity T) error
	    Update(ctx context.Context, entity T) error
	    Merge(ctx context.Context, entity T) error
	    Delete(ctx context.Context, partitionKey, rowKey string) error
	}

Implementations:
  - azure: Atom over HTTP against a table storage account
  - ddb: DynamoDB implementation writing the same property bags as items
  - mock: In-memory mock implementation for testing

Backends store *storagemodels.GenericEntity values; the generic parameter
keeps the interface usable with the typed storage manager.
*/
package datastore
