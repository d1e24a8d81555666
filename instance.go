/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynblocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/dynblocks/errors"
	"github.com/suparena/dynblocks/models"
)

// roundValues normalizes stored parameter values to key precision, so a
// record's values always canonicalize exactly to its definition's cache key.
func roundValues(values models.ParameterSet) models.ParameterSet {
	out := make(models.ParameterSet, len(values))
	for k, v := range values {
		out[k] = models.RoundValue(v)
	}
	return out
}

// writeObjectValues attaches an instance's parameter values to its host
// object, the way the host attaches user strings.
func (r *Registry) writeObjectValues(ctx context.Context, rec *models.InstanceRecord) error {
	raw, err := json.Marshal(rec.Values)
	if err != nil {
		return errors.NewHostOperationError("encode instance metadata", err)
	}
	if err := r.store.SetObjectValue(ctx, string(rec.ID), ObjectValuesKey, string(raw)); err != nil {
		return errors.NewHostOperationError("write instance metadata", err)
	}
	return nil
}

// InsertInstance validates parameter values, resolves (or builds) the
// matching definition, places a new instance reference, and registers its
// record. Validation completes before any persisting side effect, so a
// rejected insert leaves the document untouched.
func (r *Registry) InsertInstance(ctx context.Context, family string, values models.ParameterSet, placement models.Placement) (*models.InstanceRecord, error) {
	fam, ok := r.state.Families[familyKey(family)]
	if !ok {
		return nil, errors.NewUnknownFamilyError(family)
	}
	// Validate the rounded values: what is checked is exactly what gets
	// stored and keyed.
	vals := roundValues(values)
	if err := r.validateValues(fam, vals); err != nil {
		return nil, err
	}

	def, err := r.ResolveDefinition(ctx, fam.Name, vals)
	if err != nil {
		return nil, err
	}

	id, err := r.host.PlaceInstance(ctx, def, placement)
	if err != nil {
		return nil, errors.NewHostOperationError("place instance", err)
	}

	now := strfmt.DateTime(time.Now().UTC())
	rec := &models.InstanceRecord{
		ID:         id,
		Family:     fam.Name,
		Values:     vals,
		Definition: def,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}

	r.state.Instances[string(id)] = rec
	if err := r.save(ctx); err != nil {
		delete(r.state.Instances, string(id))
		return nil, err
	}
	if err := r.writeObjectValues(ctx, rec); err != nil {
		return nil, err
	}

	out := copyRecord(rec)
	return &out, nil
}

// EditInstance applies new parameter values to an existing instance. The
// instance is repointed only when the resolved definition actually changes;
// its transform is preserved by the host contract. Editing with the values
// an instance already has is a no-op on geometry, so the operation is
// idempotent.
func (r *Registry) EditInstance(ctx context.Context, id models.InstanceID, values models.ParameterSet) (*models.InstanceRecord, error) {
	rec, ok := r.state.Instances[string(id)]
	if !ok {
		return nil, errors.NewUnknownInstanceError(string(id))
	}
	fam, ok := r.state.Families[familyKey(rec.Family)]
	if !ok {
		return nil, errors.NewUnknownFamilyError(rec.Family)
	}
	vals := roundValues(values)
	if err := r.validateValues(fam, vals); err != nil {
		return nil, err
	}

	def, err := r.ResolveDefinition(ctx, fam.Name, vals)
	if err != nil {
		return nil, err
	}

	prev := copyRecord(rec)
	now := strfmt.DateTime(time.Now().UTC())
	rec.Values = vals
	rec.Definition = def
	rec.UpdatedAt = &now

	if err := r.save(ctx); err != nil {
		*rec = prev
		return nil, err
	}

	// Repoint only after the snapshot is durable. On a repoint failure the
	// record reverts so it keeps describing what the host actually shows.
	if def != prev.Definition {
		if err := r.host.RepointInstance(ctx, id, def); err != nil {
			*rec = prev
			_ = r.save(ctx)
			return nil, errors.NewHostOperationError("repoint instance", err)
		}
	}
	if err := r.writeObjectValues(ctx, rec); err != nil {
		return nil, err
	}

	out := copyRecord(rec)
	return &out, nil
}

// syncOptions configures SyncFamily.
type syncOptions struct {
	rebuild bool
}

// SyncOption is a functional option for SyncFamily.
type SyncOption func(*syncOptions)

// WithRebuild drops the family's cached definitions before syncing, so every
// instance re-derives fresh geometry for its stored parameters. Use after
// editing a shape's build routine.
func WithRebuild() SyncOption {
	return func(o *syncOptions) {
		o.rebuild = true
	}
}

// SyncFamily re-derives every instance's definition from its stored
// parameter values, repointing instances whose resolved definition differs
// from what their reference currently shows. Parameter values are never
// altered. Records whose host object was deleted by ordinary document
// editing are pruned. Instances are visited in ascending identifier order.
func (r *Registry) SyncFamily(ctx context.Context, family string, opts ...SyncOption) ([]models.InstanceRecord, error) {
	fam, ok := r.state.Families[familyKey(family)]
	if !ok {
		return nil, errors.NewUnknownFamilyError(family)
	}

	var o syncOptions
	for _, opt := range opts {
		opt(&o)
	}

	fk := familyKey(fam.Name)
	if o.rebuild {
		delete(r.state.Definitions, fk)
	}

	now := strfmt.DateTime(time.Now().UTC())
	out := make([]models.InstanceRecord, 0)
	for _, id := range r.instanceIDs(fam.Name) {
		rec := r.state.Instances[id]

		exists, err := r.host.InstanceExists(ctx, models.InstanceID(id))
		if err != nil {
			return nil, errors.NewHostOperationError("query instance", err)
		}
		if !exists {
			delete(r.state.Instances, id)
			if err := r.store.DeleteObject(ctx, id); err != nil {
				return nil, errors.NewHostOperationError("delete instance metadata", err)
			}
			continue
		}

		def, err := r.ResolveDefinition(ctx, fam.Name, rec.Values)
		if err != nil {
			return nil, err
		}

		current, err := r.host.InstanceDefinition(ctx, models.InstanceID(id))
		if err != nil {
			return nil, errors.NewHostOperationError("query instance", err)
		}
		if def != current {
			if err := r.host.RepointInstance(ctx, models.InstanceID(id), def); err != nil {
				return nil, errors.NewHostOperationError("repoint instance", err)
			}
		}
		if rec.Definition != def {
			rec.Definition = def
			rec.UpdatedAt = &now
		}

		out = append(out, copyRecord(rec))
	}

	if err := r.save(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// ForgetInstance drops the registry record for an instance the host has
// deleted. Subsequent operations on the identifier fail with an unknown
// instance error.
func (r *Registry) ForgetInstance(ctx context.Context, id models.InstanceID) error {
	rec, ok := r.state.Instances[string(id)]
	if !ok {
		return errors.NewUnknownInstanceError(string(id))
	}

	delete(r.state.Instances, string(id))
	if err := r.save(ctx); err != nil {
		r.state.Instances[string(id)] = rec
		return err
	}
	if err := r.store.DeleteObject(ctx, string(id)); err != nil {
		return errors.NewHostOperationError("delete instance metadata", err)
	}
	return nil
}
