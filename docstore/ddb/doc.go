/*
Package ddb provides a DynamoDB implementation of the DocumentStore interface.

The Store maps one host document onto a single DynamoDB table using a
single-table layout:

	PK: DOC#<documentID>
	SK: SEC#<section>#KEY#<key>   document-level values
	SK: OBJ#<objectID>#KEY#<key>  per-object values

This keeps a document's whole registry (families, definition cache keys,
per-instance values) under one partition, so listing a section is a single
Query with a begins_with condition and reloading the registry at invocation
start is one GetItem.

Construction mirrors the rest of the AWS tooling here: static credentials
plus region, or an existing client:

	store, err := ddb.NewStore(accessKey, secretKey, region, table, documentID)
	store := ddb.NewStoreWithClient(client, table, documentID)

For usage, see the env-gated tests in this package.
*/
package ddb
