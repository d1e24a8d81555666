/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

// Point is a 3D point in document coordinates.
type Point struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

// Geometry is host-neutral definition geometry: a set of polyline curves
// around the definition base point at the origin.
type Geometry struct {
	// Curves are polylines; a closed curve repeats its first point last.
	Curves [][]Point `json:"Curves"`
}

// Placement positions an instance reference in the document.
type Placement struct {
	// Origin is the insertion point.
	Origin Point `json:"Origin"`

	// Rotation about the Z axis at the origin, in radians.
	Rotation float64 `json:"Rotation"`
}
