/*
Package azure writes entities to a table storage account over the Atom
protocol.

Each write builds an Atom entry, raises a WritingEntityEvent so the
tablewriter can fill m:properties, and sends the entry signed with the
account's SharedKeyLite key:

	store, err := azure.NewTableDataStore("myaccount", key, "Customers",
	    azure.WithLogger(logger))
	err = store.Insert(ctx, entity)  // POST /Customers
	err = store.Merge(ctx, entity)   // MERGE /Customers(PartitionKey='..',RowKey='..')

Service failures map onto the semantic errors: 404 is NotFound, 409 is
AlreadyExists and 412 is ConditionFailed. Requests are not retried.
*/
package azure
