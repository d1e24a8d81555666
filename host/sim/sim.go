/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sim provides an in-memory simulated host for testing and
// standalone use
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/suparena/dynblocks/models"
)

type definition struct {
	name string
	geom models.Geometry
}

type instance struct {
	def       models.DefinitionHandle
	placement models.Placement
}

// Host is an in-memory implementation of host.Host. It tracks every
// definition build and placement so tests can assert on host traffic.
type Host struct {
	mu          sync.RWMutex
	definitions map[models.DefinitionHandle]definition
	instances   map[models.InstanceID]instance
	defSeq      int
	buildCount  int
	placeCount  int

	addDefinitionError error
	placeError         error
	repointError       error
}

// New creates a new simulated host
func New() *Host {
	return &Host{
		definitions: make(map[models.DefinitionHandle]definition),
		instances:   make(map[models.InstanceID]instance),
	}
}

// WithAddDefinitionError makes AddDefinition return an error
func (h *Host) WithAddDefinitionError(err error) *Host {
	h.addDefinitionError = err
	return h
}

// WithPlaceError makes PlaceInstance return an error
func (h *Host) WithPlaceError(err error) *Host {
	h.placeError = err
	return h
}

// WithRepointError makes RepointInstance return an error
func (h *Host) WithRepointError(err error) *Host {
	h.repointError = err
	return h
}

// AddDefinition wraps geometry as a reusable definition
func (h *Host) AddDefinition(ctx context.Context, name string, geom models.Geometry) (models.DefinitionHandle, error) {
	if h.addDefinitionError != nil {
		return "", h.addDefinitionError
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.defSeq++
	h.buildCount++
	handle := models.DefinitionHandle(fmt.Sprintf("idef-%04d", h.defSeq))
	h.definitions[handle] = definition{name: name, geom: geom}
	return handle, nil
}

// PlaceInstance places an instance reference and assigns it an identifier
func (h *Host) PlaceInstance(ctx context.Context, def models.DefinitionHandle, placement models.Placement) (models.InstanceID, error) {
	if h.placeError != nil {
		return "", h.placeError
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.definitions[def]; !ok {
		return "", fmt.Errorf("unknown definition %q", def)
	}

	h.placeCount++
	id := models.InstanceID(uuid.NewString())
	h.instances[id] = instance{def: def, placement: placement}
	return id, nil
}

// RepointInstance points an existing instance at a different definition,
// preserving its placement
func (h *Host) RepointInstance(ctx context.Context, id models.InstanceID, def models.DefinitionHandle) error {
	if h.repointError != nil {
		return h.repointError
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	inst, ok := h.instances[id]
	if !ok {
		return fmt.Errorf("unknown instance %q", id)
	}
	if _, ok := h.definitions[def]; !ok {
		return fmt.Errorf("unknown definition %q", def)
	}

	inst.def = def
	h.instances[id] = inst
	return nil
}

// InstanceExists reports whether the instance is still in the document
func (h *Host) InstanceExists(ctx context.Context, id models.InstanceID) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.instances[id]
	return ok, nil
}

// InstanceDefinition returns the definition the instance points to
func (h *Host) InstanceDefinition(ctx context.Context, id models.InstanceID) (models.DefinitionHandle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	inst, ok := h.instances[id]
	if !ok {
		return "", fmt.Errorf("unknown instance %q", id)
	}
	return inst.def, nil
}

// Helper methods for testing

// BuildCount returns the number of AddDefinition calls
func (h *Host) BuildCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buildCount
}

// PlaceCount returns the number of PlaceInstance calls
func (h *Host) PlaceCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.placeCount
}

// DefinitionCount returns the number of definitions in the table
func (h *Host) DefinitionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.definitions)
}

// DefinitionName returns the name a definition was created under
func (h *Host) DefinitionName(handle models.DefinitionHandle) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	def, ok := h.definitions[handle]
	return def.name, ok
}

// Placement returns the placement of an instance
func (h *Host) Placement(id models.InstanceID) (models.Placement, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	inst, ok := h.instances[id]
	return inst.placement, ok
}

// DeleteInstance simulates external deletion through ordinary document editing
func (h *Host) DeleteInstance(id models.InstanceID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.instances, id)
}
