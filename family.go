/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynblocks

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dynblocks/errors"
	"github.com/suparena/dynblocks/models"
	"github.com/suparena/dynblocks/registry"
)

// CreateFamily registers a new parametric family. The schema is validated in
// full before any metadata write; nothing is built in the host.
func (r *Registry) CreateFamily(ctx context.Context, name string, kind models.ShapeKind, schema []models.ParameterSpec) (*models.FamilyDescriptor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewInvalidSchemaError(name, "family name is empty")
	}

	fk := familyKey(name)
	if _, exists := r.state.Families[fk]; exists {
		return nil, errors.NewDuplicateFamilyError(name)
	}

	if len(schema) == 0 {
		return nil, errors.NewInvalidSchemaError(name, "schema is empty")
	}
	seen := make(map[string]bool, len(schema))
	for _, spec := range schema {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, errors.NewInvalidSchemaError(name, "parameter name is empty")
		}
		if seen[spec.Name] {
			return nil, errors.NewInvalidSchemaError(name, fmt.Sprintf("duplicate parameter %q", spec.Name))
		}
		seen[spec.Name] = true
		if math.IsNaN(spec.Default) || math.IsInf(spec.Default, 0) {
			return nil, errors.NewInvalidSchemaError(name, fmt.Sprintf("default for %q must be a finite number", spec.Name))
		}
	}

	if !registry.HasShape(kind) {
		return nil, errors.NewInvalidSchemaError(name, fmt.Sprintf("unknown shape kind %q", kind))
	}

	now := strfmt.DateTime(time.Now().UTC())
	fam := &models.FamilyDescriptor{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Schema:    append([]models.ParameterSpec(nil), schema...),
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	r.state.Families[fk] = fam
	if err := r.save(ctx); err != nil {
		delete(r.state.Families, fk)
		return nil, err
	}
	return copyFamily(fam), nil
}

// ResolveDefinition returns the geometry definition for a family and
// parameter set, building it through the host on the first request for each
// distinct canonical key. Equivalent parameter sets share one definition no
// matter how many instances use them or in what order calls arrive.
func (r *Registry) ResolveDefinition(ctx context.Context, family string, values models.ParameterSet) (models.DefinitionHandle, error) {
	fam, ok := r.state.Families[familyKey(family)]
	if !ok {
		return "", errors.NewUnknownFamilyError(family)
	}
	// Round before validating so the checked values, the built geometry, and
	// the cache key all agree.
	values = roundValues(values)
	if err := r.validateValues(fam, values); err != nil {
		return "", err
	}

	fk := familyKey(fam.Name)
	key := models.CanonicalKey(values)
	if handle, ok := r.state.Definitions[fk][key]; ok {
		return handle, nil
	}

	build, err := registry.GetShapeBuilder(fam.Kind)
	if err != nil {
		return "", errors.NewHostOperationError("build geometry", err)
	}
	geom, err := build(values)
	if err != nil {
		if errors.IsParameterMismatch(err) {
			return "", err
		}
		return "", errors.NewHostOperationError("build geometry", err)
	}

	handle, err := r.host.AddDefinition(ctx, models.DefinitionName(fam.Name, values), geom)
	if err != nil {
		return "", errors.NewHostOperationError("add definition", err)
	}

	if r.state.Definitions[fk] == nil {
		r.state.Definitions[fk] = make(map[string]models.DefinitionHandle)
	}
	r.state.Definitions[fk][key] = handle
	if err := r.save(ctx); err != nil {
		delete(r.state.Definitions[fk], key)
		return "", err
	}
	return handle, nil
}

// validateValues checks a parameter set against a family's schema: exactly
// the schema's keys, finite values, and the shape kind's geometric rule.
func (r *Registry) validateValues(fam *models.FamilyDescriptor, values models.ParameterSet) error {
	if len(values) == 0 {
		return errors.NewParameterMismatchError("", "missing values")
	}

	for _, spec := range fam.Schema {
		v, ok := values[spec.Name]
		if !ok {
			return errors.NewParameterMismatchError(spec.Name, "missing value")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewParameterMismatchError(spec.Name, "must be a finite number")
		}
	}
	if len(values) != len(fam.Schema) {
		for name := range values {
			if !schemaHas(fam.Schema, name) {
				return errors.NewParameterMismatchError(name, "not in family schema")
			}
		}
	}

	if rule, ok := registry.GetRule(fam.Kind); ok {
		if err := rule(values); err != nil {
			return err
		}
	}
	return nil
}

func schemaHas(schema []models.ParameterSpec, name string) bool {
	for _, spec := range schema {
		if spec.Name == name {
			return true
		}
	}
	return false
}
