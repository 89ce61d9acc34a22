/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore writes each GenericEntity as one item:
  - PartitionKey and RowKey go to the attribute names of the table's key
    schema (registry.RegisterKeySchema), PartitionKey/RowKey by default
  - Int32, Int64 and finite Double values become N, Boolean BOOL, Binary B
  - Guid, DateTime and URI values are stored as their EDM wire text in S
  - null values become NULL
  - properties with an unsupported type fail before any request is sent

Conditional writes give the table semantics of the Atom backend:

	store, _ := ddb.NewDynamodbDataStore(ctx, accessKey, secretKey, "us-east-1", "Players")
	err := store.Insert(ctx, entity) // errors.IsAlreadyExists when present
	err = store.Merge(ctx, patch)    // errors.IsNotFound when missing
*/
package ddb
