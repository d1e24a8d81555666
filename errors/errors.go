/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrDuplicateFamily is returned when creating a family whose name is taken
	ErrDuplicateFamily = errors.New("family already exists")

	// ErrInvalidSchema is returned when a family's parameter schema is invalid
	ErrInvalidSchema = errors.New("invalid parameter schema")

	// ErrUnknownFamily is returned when an operation references an unregistered family
	ErrUnknownFamily = errors.New("unknown family")

	// ErrUnknownInstance is returned when an operation references an untracked instance
	ErrUnknownInstance = errors.New("unknown instance")

	// ErrParameterMismatch is returned when parameter values do not satisfy a family's schema
	ErrParameterMismatch = errors.New("parameter mismatch")

	// ErrHostOperation is returned when a host collaborator call fails
	ErrHostOperation = errors.New("host operation failed")
)

// DuplicateFamilyError represents an attempt to create a family under a name
// that is already registered
type DuplicateFamilyError struct {
	Name string
}

func (e *DuplicateFamilyError) Error() string {
	return fmt.Sprintf("family %q already exists", e.Name)
}

func (e *DuplicateFamilyError) Is(target error) bool {
	return target == ErrDuplicateFamily
}

// InvalidSchemaError represents an invalid family parameter schema
type InvalidSchemaError struct {
	Family string
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	if e.Family != "" {
		return fmt.Sprintf("invalid schema for family %q: %s", e.Family, e.Reason)
	}
	return fmt.Sprintf("invalid schema: %s", e.Reason)
}

func (e *InvalidSchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// UnknownFamilyError represents a reference to a family that is not registered
type UnknownFamilyError struct {
	Name string
}

func (e *UnknownFamilyError) Error() string {
	return fmt.Sprintf("family %q not found", e.Name)
}

func (e *UnknownFamilyError) Is(target error) bool {
	return target == ErrUnknownFamily
}

// UnknownInstanceError represents a reference to an instance with no registry record
type UnknownInstanceError struct {
	ID string
}

func (e *UnknownInstanceError) Error() string {
	return fmt.Sprintf("instance %q not found", e.ID)
}

func (e *UnknownInstanceError) Is(target error) bool {
	return target == ErrUnknownInstance
}

// ParameterMismatchError represents parameter values that do not satisfy a
// family's schema (missing/extra keys or out-of-range values)
type ParameterMismatchError struct {
	Parameter string
	Reason    string
}

func (e *ParameterMismatchError) Error() string {
	if e.Parameter != "" {
		return fmt.Sprintf("parameter %q mismatch: %s", e.Parameter, e.Reason)
	}
	return fmt.Sprintf("parameter mismatch: %s", e.Reason)
}

func (e *ParameterMismatchError) Is(target error) bool {
	return target == ErrParameterMismatch
}

// HostOperationError wraps a failure surfaced by a host collaborator
// (geometry build, definition table, placement, or metadata store)
type HostOperationError struct {
	Op  string
	Err error
}

func (e *HostOperationError) Error() string {
	return fmt.Sprintf("host operation %q failed: %v", e.Op, e.Err)
}

func (e *HostOperationError) Is(target error) bool {
	return target == ErrHostOperation
}

func (e *HostOperationError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewDuplicateFamilyError creates a new DuplicateFamilyError
func NewDuplicateFamilyError(name string) error {
	return &DuplicateFamilyError{Name: name}
}

// NewInvalidSchemaError creates a new InvalidSchemaError
func NewInvalidSchemaError(family, reason string) error {
	return &InvalidSchemaError{Family: family, Reason: reason}
}

// NewUnknownFamilyError creates a new UnknownFamilyError
func NewUnknownFamilyError(name string) error {
	return &UnknownFamilyError{Name: name}
}

// NewUnknownInstanceError creates a new UnknownInstanceError
func NewUnknownInstanceError(id string) error {
	return &UnknownInstanceError{ID: id}
}

// NewParameterMismatchError creates a new ParameterMismatchError
func NewParameterMismatchError(parameter, reason string) error {
	return &ParameterMismatchError{Parameter: parameter, Reason: reason}
}

// NewHostOperationError creates a new HostOperationError wrapping err
func NewHostOperationError(op string, err error) error {
	return &HostOperationError{Op: op, Err: err}
}

// IsDuplicateFamily checks if an error is a duplicate family error
func IsDuplicateFamily(err error) bool {
	return errors.Is(err, ErrDuplicateFamily)
}

// IsInvalidSchema checks if an error is an invalid schema error
func IsInvalidSchema(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// IsUnknownFamily checks if an error is an unknown family error
func IsUnknownFamily(err error) bool {
	return errors.Is(err, ErrUnknownFamily)
}

// IsUnknownInstance checks if an error is an unknown instance error
func IsUnknownInstance(err error) bool {
	return errors.Is(err, ErrUnknownInstance)
}

// IsParameterMismatch checks if an error is a parameter mismatch error
func IsParameterMismatch(err error) bool {
	return errors.Is(err, ErrParameterMismatch)
}

// IsHostOperation checks if an error is a host operation error
func IsHostOperation(err error) bool {
	return errors.Is(err, ErrHostOperation)
}
