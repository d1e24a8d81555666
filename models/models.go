/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"
)

// ShapeKind identifies a parametric shape type supported by the block system.
type ShapeKind string

const (
	// ShapeRectangle is a planar rectangle outline parameterized by Width and Height.
	ShapeRectangle ShapeKind = "rectangle"
)

// DefinitionHandle is an opaque reference to a reusable geometry definition
// held by the host's definition table.
type DefinitionHandle string

// InstanceID is an opaque host-assigned identifier of a placed instance reference.
type InstanceID string

// ParameterSpec declares a single named parameter of a family schema.
type ParameterSpec struct {
	// Name of the parameter (unique within a schema).
	Name string `json:"Name"`

	// Default value used by command surfaces when prompting.
	Default float64 `json:"Default"`
}

// FamilyDescriptor describes a parametric shape family. The schema is fixed
// once the family is created.
type FamilyDescriptor struct {
	// Unique identifier for the family.
	// Required: true
	ID string `json:"Id"`

	// Name of the family, unique within a document (case-insensitive).
	// Required: true
	Name string `json:"Name"`

	// Kind of parametric shape this family produces.
	// Required: true
	Kind ShapeKind `json:"Kind"`

	// Schema is the ordered list of parameters with their defaults.
	// Required: true
	Schema []ParameterSpec `json:"Schema"`

	// Timestamp when the family was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt,omitempty"`

	// Timestamp when the family was last updated.
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt,omitempty"`
}

// ParameterSet maps parameter names to concrete numeric values.
type ParameterSet map[string]float64

// Clone returns an independent copy of the parameter set.
func (p ParameterSet) Clone() ParameterSet {
	out := make(ParameterSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// InstanceRecord tracks a placed instance of a family together with its
// current parameter values and the definition it is bound to.
type InstanceRecord struct {
	// ID is the host-assigned identifier of the placed instance reference.
	ID InstanceID `json:"Id"`

	// Family is the owning family name.
	Family string `json:"Family"`

	// Values are the instance's current parameter values.
	Values ParameterSet `json:"Values"`

	// Definition is the geometry definition the instance currently points to.
	Definition DefinitionHandle `json:"Definition"`

	// Timestamp when the instance was inserted.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt,omitempty"`

	// Timestamp when the instance was last edited or synced.
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt,omitempty"`
}

// RegistryState is the persisted snapshot of a document's block registry.
// It is JSON-encoded into the document metadata store.
type RegistryState struct {
	// Families keyed by lower-cased family name.
	Families map[string]*FamilyDescriptor `json:"Families"`

	// Definitions keyed by lower-cased family name, then by canonical
	// parameter key.
	Definitions map[string]map[string]DefinitionHandle `json:"Definitions"`

	// Instances keyed by instance identifier.
	Instances map[string]*InstanceRecord `json:"Instances"`
}

// NewRegistryState returns an empty registry state with all maps allocated.
func NewRegistryState() *RegistryState {
	return &RegistryState{
		Families:    make(map[string]*FamilyDescriptor),
		Definitions: make(map[string]map[string]DefinitionHandle),
		Instances:   make(map[string]*InstanceRecord),
	}
}

// Normalize allocates any maps that are nil after decoding an older or
// partial snapshot.
func (s *RegistryState) Normalize() {
	if s.Families == nil {
		s.Families = make(map[string]*FamilyDescriptor)
	}
	if s.Definitions == nil {
		s.Definitions = make(map[string]map[string]DefinitionHandle)
	}
	if s.Instances == nil {
		s.Instances = make(map[string]*InstanceRecord)
	}
}
