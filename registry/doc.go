/*
Package registry manages shape-kind registration for dynblocks.

The registry system enables:
  - Lazy geometry generation through per-kind build functions
  - Per-kind geometric validity rules applied before any side effect
  - Extension with additional shape kinds without touching the core registry

Shape Registry:
Maps shape kinds to geometry build functions:

	registry.RegisterShape("lshape", func(values models.ParameterSet) (models.Geometry, error) {
	    // produce polylines from values
	})

Rule Registry:
Associates shape kinds with parameter validity rules:

	registry.RegisterRule("lshape", func(values models.ParameterSet) error {
	    if values["Leg"] <= 0 {
	        return errors.NewParameterMismatchError("Leg", "must be positive")
	    }
	    return nil
	})

The rectangle kind is registered at init time; additional kinds should be
registered during initialization, typically in init() functions.
Registering the same shape kind twice panics.
*/
package registry
