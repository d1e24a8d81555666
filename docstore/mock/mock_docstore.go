/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the DocumentStore interface for testing
package mock

import (
	"context"
	"sort"
	"sync"
)

// Store is a mock implementation of docstore.DocumentStore for testing
type Store struct {
	mu          sync.RWMutex
	sections    map[string]map[string]string
	objects     map[string]map[string]string
	getError    error
	setError    error
	deleteError error
}

// New creates a new mock Store
func New() *Store {
	return &Store{
		sections: make(map[string]map[string]string),
		objects:  make(map[string]map[string]string),
	}
}

// WithGetError makes read operations return an error
func (m *Store) WithGetError(err error) *Store {
	m.getError = err
	return m
}

// WithSetError makes write operations return an error
func (m *Store) WithSetError(err error) *Store {
	m.setError = err
	return m
}

// WithDeleteError makes delete operations return an error
func (m *Store) WithDeleteError(err error) *Store {
	m.deleteError = err
	return m
}

// GetValue reads a document-level value; absent keys read as ""
func (m *Store) GetValue(ctx context.Context, section, key string) (string, error) {
	if m.getError != nil {
		return "", m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sections[section][key], nil
}

// SetValue writes a document-level value
func (m *Store) SetValue(ctx context.Context, section, key, value string) error {
	if m.setError != nil {
		return m.setError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sections[section] == nil {
		m.sections[section] = make(map[string]string)
	}
	m.sections[section][key] = value
	return nil
}

// DeleteValue removes a document-level key
func (m *Store) DeleteValue(ctx context.Context, section, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sections[section], key)
	return nil
}

// ListKeys returns the keys of a section in ascending order
func (m *Store) ListKeys(ctx context.Context, section string) ([]string, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.sections[section]))
	for k := range m.sections[section] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetObjectValue reads a value attached to an object; absent keys read as ""
func (m *Store) GetObjectValue(ctx context.Context, objectID, key string) (string, error) {
	if m.getError != nil {
		return "", m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.objects[objectID][key], nil
}

// SetObjectValue attaches a value to an object
func (m *Store) SetObjectValue(ctx context.Context, objectID, key, value string) error {
	if m.setError != nil {
		return m.setError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.objects[objectID] == nil {
		m.objects[objectID] = make(map[string]string)
	}
	m.objects[objectID][key] = value
	return nil
}

// DeleteObject removes all values attached to an object
func (m *Store) DeleteObject(ctx context.Context, objectID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, objectID)
	return nil
}

// Helper methods for testing

// SectionCount returns the number of keys stored in a section
func (m *Store) SectionCount(section string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sections[section])
}

// ObjectCount returns the number of objects carrying metadata
func (m *Store) ObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// SectionData returns a copy of a section's key/value map (for testing)
func (m *Store) SectionData(section string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.sections[section]))
	for k, v := range m.sections[section] {
		result[k] = v
	}
	return result
}

// Clear removes all data
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sections = make(map[string]map[string]string)
	m.objects = make(map[string]map[string]string)
}
