/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package file provides a YAML sidecar-file implementation of the
// DocumentStore interface, used when no live host document is available
// (standalone runs and the CLI inspector).
package file

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// fileData is the on-disk layout of the sidecar file.
type fileData struct {
	Sections map[string]map[string]string `yaml:"sections"`
	Objects  map[string]map[string]string `yaml:"objects"`
}

// Store persists document metadata to a YAML file. The file is read lazily
// on first access and rewritten in full after every mutation.
type Store struct {
	mu     sync.Mutex
	path   string
	loaded bool
	data   fileData
}

// New creates a Store backed by the YAML file at path. The file does not
// need to exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the sidecar file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	s.data = fileData{
		Sections: make(map[string]map[string]string),
		Objects:  make(map[string]map[string]string),
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store file %q: %w", s.path, err)
	}

	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return fmt.Errorf("failed to parse store file %q: %w", s.path, err)
	}
	if s.data.Sections == nil {
		s.data.Sections = make(map[string]map[string]string)
	}
	if s.data.Objects == nil {
		s.data.Objects = make(map[string]map[string]string)
	}
	s.loaded = true
	return nil
}

func (s *Store) flush() error {
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write store file %q: %w", s.path, err)
	}
	return nil
}

// GetValue reads a document-level value; absent keys read as "".
func (s *Store) GetValue(ctx context.Context, section, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", err
	}
	return s.data.Sections[section][key], nil
}

// SetValue writes a document-level value and flushes the file.
func (s *Store) SetValue(ctx context.Context, section, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	if s.data.Sections[section] == nil {
		s.data.Sections[section] = make(map[string]string)
	}
	s.data.Sections[section][key] = value
	return s.flush()
}

// DeleteValue removes a document-level key and flushes the file.
func (s *Store) DeleteValue(ctx context.Context, section, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	delete(s.data.Sections[section], key)
	return s.flush()
}

// ListKeys returns the keys of a section in ascending order.
func (s *Store) ListKeys(ctx context.Context, section string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.data.Sections[section]))
	for k := range s.data.Sections[section] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetObjectValue reads a value attached to an object; absent keys read as "".
func (s *Store) GetObjectValue(ctx context.Context, objectID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", err
	}
	return s.data.Objects[objectID][key], nil
}

// SetObjectValue attaches a value to an object and flushes the file.
func (s *Store) SetObjectValue(ctx context.Context, objectID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	if s.data.Objects[objectID] == nil {
		s.data.Objects[objectID] = make(map[string]string)
	}
	s.data.Objects[objectID][key] = value
	return s.flush()
}

// DeleteObject removes all values attached to an object and flushes the file.
func (s *Store) DeleteObject(ctx context.Context, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	delete(s.data.Objects, objectID)
	return s.flush()
}
