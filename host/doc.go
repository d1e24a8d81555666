/*
Package host defines the geometry-side collaborator interface for dynblocks.

A Host is the CAD application's definition table and placement API: it wraps
generated geometry into reusable definitions, places instance references, and
repoints existing references while preserving their transforms. The registry
calls the host only on definition-cache misses and on actual definition
changes, so N instances sharing one canonical parameter set cost exactly one
AddDefinition call.

Implementations:
  - sim: an in-memory simulated host with build/place counters, used by the
    tests and the CLI

Real host bindings (plugin adapters over a CAD scripting API) implement the
same five methods and need no registry changes.
*/
package host
