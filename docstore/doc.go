/*
Package docstore defines the document metadata persistence interface for
dynblocks.

The main interface is DocumentStore, which models the string key/value
storage CAD hosts scope to a document and to each object:

	type DocumentStore interface {
	    GetValue(ctx context.Context, section, key string) (string, error)
	    SetValue(ctx context.Context, section, key, value string) error
	    DeleteValue(ctx context.Context, section, key string) error
	    ListKeys(ctx context.Context, section string) ([]string, error)
	    GetObjectValue(ctx context.Context, objectID, key string) (string, error)
	    SetObjectValue(ctx context.Context, objectID, key, value string) error
	    DeleteObject(ctx context.Context, objectID string) error
	}

Implementations:
  - ddb: DynamoDB implementation for shared document state
  - file: YAML sidecar-file implementation for standalone use and the CLI
  - mock: In-memory implementation for testing

The registry reads its snapshot from the store at startup and writes it back
after every mutating operation, so any implementation that round-trips
strings faithfully keeps re-invocations consistent.
*/
package docstore
