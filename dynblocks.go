/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynblocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/suparena/dynblocks/docstore"
	"github.com/suparena/dynblocks/errors"
	"github.com/suparena/dynblocks/host"
	"github.com/suparena/dynblocks/models"
)

// Document metadata addresses. StoreSection/StoreKey hold the registry
// snapshot; ObjectValuesKey is the per-instance metadata key.
const (
	StoreSection    = "DynamicBlocks"
	StoreKey        = "Registry"
	ObjectValuesKey = "dynblocks:values"
)

// Registry maintains a document's parametric block families, the definition
// cache keyed by canonical parameter tuples, and per-instance parameter
// records. State loads from the document store at construction and is
// written back after every mutating operation, so a new script invocation
// over the same store picks up where the last one ended.
//
// A Registry is single-threaded by contract: the host runs one command at a
// time, and each operation runs to completion within that command.
type Registry struct {
	store docstore.DocumentStore
	host  host.Host
	state *models.RegistryState
}

// New creates a Registry over a document store and host, loading any
// persisted state.
func New(ctx context.Context, store docstore.DocumentStore, h host.Host) (*Registry, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if h == nil {
		return nil, fmt.Errorf("host is required")
	}

	r := &Registry{store: store, host: h}
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads the registry snapshot from document metadata. An absent or
// unparsable snapshot yields an empty registry, matching host string-table
// conventions.
func (r *Registry) load(ctx context.Context) error {
	raw, err := r.store.GetValue(ctx, StoreSection, StoreKey)
	if err != nil {
		return errors.NewHostOperationError("read registry metadata", err)
	}

	state := models.NewRegistryState()
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), state); err != nil {
			state = models.NewRegistryState()
		} else {
			state.Normalize()
		}
	}
	r.state = state
	return nil
}

// save writes the registry snapshot back to document metadata.
func (r *Registry) save(ctx context.Context) error {
	raw, err := json.Marshal(r.state)
	if err != nil {
		return errors.NewHostOperationError("encode registry metadata", err)
	}
	if err := r.store.SetValue(ctx, StoreSection, StoreKey, string(raw)); err != nil {
		return errors.NewHostOperationError("write registry metadata", err)
	}
	return nil
}

// familyKey normalizes a family name for lookup; names are unique
// case-insensitively.
func familyKey(name string) string {
	return strings.ToLower(name)
}

func copyFamily(fam *models.FamilyDescriptor) *models.FamilyDescriptor {
	out := *fam
	out.Schema = append([]models.ParameterSpec(nil), fam.Schema...)
	return &out
}

func copyRecord(rec *models.InstanceRecord) models.InstanceRecord {
	out := *rec
	out.Values = rec.Values.Clone()
	return out
}

// Family returns the descriptor registered under name.
func (r *Registry) Family(name string) (*models.FamilyDescriptor, error) {
	fam, ok := r.state.Families[familyKey(name)]
	if !ok {
		return nil, errors.NewUnknownFamilyError(name)
	}
	return copyFamily(fam), nil
}

// Families returns all registered family descriptors sorted by name.
func (r *Registry) Families() []models.FamilyDescriptor {
	out := make([]models.FamilyDescriptor, 0, len(r.state.Families))
	for _, fam := range r.state.Families {
		out = append(out, *copyFamily(fam))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Instance returns the record tracked for an instance identifier.
func (r *Registry) Instance(id models.InstanceID) (*models.InstanceRecord, error) {
	rec, ok := r.state.Instances[string(id)]
	if !ok {
		return nil, errors.NewUnknownInstanceError(string(id))
	}
	out := copyRecord(rec)
	return &out, nil
}

// Instances returns a family's instance records in ascending identifier order.
func (r *Registry) Instances(family string) ([]models.InstanceRecord, error) {
	fam, ok := r.state.Families[familyKey(family)]
	if !ok {
		return nil, errors.NewUnknownFamilyError(family)
	}

	ids := r.instanceIDs(fam.Name)
	out := make([]models.InstanceRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyRecord(r.state.Instances[id]))
	}
	return out, nil
}

// instanceIDs returns the sorted instance identifiers belonging to a family.
func (r *Registry) instanceIDs(family string) []string {
	fk := familyKey(family)
	ids := make([]string, 0)
	for id, rec := range r.state.Instances {
		if familyKey(rec.Family) == fk {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// DefinitionCount returns the number of cached definitions for a family,
// which equals the number of distinct canonical parameter sets resolved.
func (r *Registry) DefinitionCount(family string) int {
	return len(r.state.Definitions[familyKey(family)])
}
