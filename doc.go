/*
Package tablestore writes entities to table storage services as OData Atom
entries, the format Azure Table Storage accepts.

Each property of an entity is written as an element in the data services
namespace carrying an m:type attribute with its EDM type, plus m:null="true"
when the value is absent. The mapping from Go types to EDM types lives in
package registry; the encoder lives in package tablewriter.

A Storage is built from configuration and holds one datastore per table:

	cfg, err := config.Load("tablestore.yaml")
	if err != nil {
		return err
	}
	storage, err := tablestore.NewStorage(ctx, cfg)
	if err != nil {
		return err
	}

	customers, _ := storage.Get("Customers")
	entity := storagemodels.NewGenericEntity("retail", "c-001")
	entity.Set("Name", "Ada")
	entity.Set("Age", int32(36))
	err = customers.Insert(ctx, entity)

Backends are Azure Table Storage (datastore/azure), DynamoDB (datastore/ddb)
and an in-memory store for tests (datastore/mock).
*/
package tablestore
