package registry

import (
	"fmt"

	"github.com/suparena/dynblocks/models"
)

// BuildFunc produces host-neutral definition geometry for validated
// parameter values.
type BuildFunc func(values models.ParameterSet) (models.Geometry, error)

// shapeRegistry holds the mapping from a shape kind to its geometry build function.
var shapeRegistry = make(map[models.ShapeKind]BuildFunc)

// RegisterShape registers a geometry build function for a given shape kind.
// If a builder is already registered for the kind, it panics to prevent accidental overrides.
func RegisterShape(kind models.ShapeKind, fn BuildFunc) {
	if _, exists := shapeRegistry[kind]; exists {
		panic(fmt.Sprintf("shape registry: shape kind %q already registered", kind))
	}
	shapeRegistry[kind] = fn
}

// GetShapeBuilder returns the registered build function for the given shape kind.
// If no builder is registered, it returns an error.
func GetShapeBuilder(kind models.ShapeKind) (BuildFunc, error) {
	fn, ok := shapeRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("shape registry: no builder registered for kind %q", kind)
	}
	return fn, nil
}

// HasShape reports whether a builder is registered for the given shape kind.
func HasShape(kind models.ShapeKind) bool {
	_, ok := shapeRegistry[kind]
	return ok
}
