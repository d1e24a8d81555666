/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package host

import (
	"context"

	"github.com/suparena/dynblocks/models"
)

// Host is the geometry side of a CAD application: a table of reusable
// definitions plus the instance references placed in the document. The
// registry drives it but never owns its objects; instance identifiers are
// assigned by the host.
type Host interface {
	// AddDefinition wraps geometry as a named reusable definition and
	// returns its handle.
	AddDefinition(ctx context.Context, name string, geom models.Geometry) (models.DefinitionHandle, error)

	// PlaceInstance places a new instance reference of a definition and
	// returns the host-assigned identifier.
	PlaceInstance(ctx context.Context, def models.DefinitionHandle, placement models.Placement) (models.InstanceID, error)

	// RepointInstance makes an existing instance reference point to a
	// different definition, preserving its transform.
	RepointInstance(ctx context.Context, id models.InstanceID, def models.DefinitionHandle) error

	// InstanceExists reports whether the host still has the instance
	// (it may have been deleted by ordinary document editing).
	InstanceExists(ctx context.Context, id models.InstanceID) (bool, error)

	// InstanceDefinition returns the definition an instance currently
	// points to.
	InstanceDefinition(ctx context.Context, id models.InstanceID) (models.DefinitionHandle, error)
}
