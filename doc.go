/*
Package dynblocks implements dynamic-block behavior for CAD hosts: parametric
shape families, instances with per-instance parameter values, and a
definition cache that shares one generated geometry definition across all
instances with equivalent parameters.

The library is bookkeeping over two pluggable collaborators:
  - a document metadata store (docstore.DocumentStore) that persists registry
    state as strings attached to the document and its objects
  - a host (host.Host) that wraps geometry into reusable definitions and
    places or repoints instance references

Basic Usage:

	// Open a document's registry (loads persisted state)
	reg, _ := dynblocks.New(ctx, store, h)

	// Define a family
	reg.CreateFamily(ctx, "DoorPanel", models.ShapeRectangle, []models.ParameterSpec{
	    {Name: "Width", Default: 0.9},
	    {Name: "Height", Default: 2.1},
	})

	// Place instances; equal parameters reuse one definition
	a, _ := reg.InsertInstance(ctx, "DoorPanel", models.ParameterSet{"Width": 0.9, "Height": 2.1}, placement)
	b, _ := reg.InsertInstance(ctx, "DoorPanel", models.ParameterSet{"Width": 0.9, "Height": 2.1}, placement2)

	// Edit one instance; it is repointed to a new definition, the other keeps its own
	reg.EditInstance(ctx, b.ID, models.ParameterSet{"Width": 1.1, "Height": 2.1})

	// Re-derive geometry for every instance from its stored values
	reg.SyncFamily(ctx, "DoorPanel")

Parameter sets are canonicalized (sorted names, values rounded to
models.KeyPrecision decimals) before cache keying, so near-equal inputs do
not duplicate definitions. All state is written back to the document store
after each mutating operation and reloaded on the next invocation.
*/
package dynblocks
