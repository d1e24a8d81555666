/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"math"

	"github.com/suparena/dynblocks/errors"
	"github.com/suparena/dynblocks/models"
)

// Built-in rectangle shape: a closed planar polyline from Width and Height,
// based at the origin.

func init() {
	RegisterShape(models.ShapeRectangle, buildRectangle)
	RegisterRule(models.ShapeRectangle, validateRectangle)
}

func buildRectangle(values models.ParameterSet) (models.Geometry, error) {
	if err := validateRectangle(values); err != nil {
		return models.Geometry{}, err
	}

	w := values["Width"]
	h := values["Height"]

	outline := []models.Point{
		{X: 0, Y: 0, Z: 0},
		{X: w, Y: 0, Z: 0},
		{X: w, Y: h, Z: 0},
		{X: 0, Y: h, Z: 0},
		{X: 0, Y: 0, Z: 0},
	}
	return models.Geometry{Curves: [][]models.Point{outline}}, nil
}

func validateRectangle(values models.ParameterSet) error {
	for _, name := range []string{"Width", "Height"} {
		v, ok := values[name]
		if !ok {
			return errors.NewParameterMismatchError(name, "required for rectangle")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewParameterMismatchError(name, "must be a finite number")
		}
		if v <= 0 {
			return errors.NewParameterMismatchError(name, "must be positive")
		}
	}
	return nil
}
