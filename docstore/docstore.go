/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
)

// DocumentStore is key/value string storage scoped to a host document and,
// separately, to each object in it. It mirrors the string tables CAD hosts
// attach to documents and objects, so registry state survives across script
// invocations.
//
// Reading an absent key returns an empty string, not an error; hosts make no
// distinction between unset and empty.
type DocumentStore interface {
	// GetValue reads a document-level value from a named section.
	GetValue(ctx context.Context, section, key string) (string, error)

	// SetValue writes a document-level value into a named section.
	SetValue(ctx context.Context, section, key, value string) error

	// DeleteValue removes a document-level key from a section.
	DeleteValue(ctx context.Context, section, key string) error

	// ListKeys returns the keys present in a section, in ascending order.
	ListKeys(ctx context.Context, section string) ([]string, error)

	// GetObjectValue reads a value attached to a specific object.
	GetObjectValue(ctx context.Context, objectID, key string) (string, error)

	// SetObjectValue attaches a value to a specific object.
	SetObjectValue(ctx context.Context, objectID, key, value string) error

	// DeleteObject removes all values attached to an object.
	DeleteObject(ctx context.Context, objectID string) error
}
