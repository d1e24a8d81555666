/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynblocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/dynblocks/docstore"
	"github.com/suparena/dynblocks/host"
)

// Workspace manages one Registry per open document. Hosts open and close
// documents from different command contexts, so the map itself is guarded;
// each Registry remains single-threaded by contract.
type Workspace struct {
	mu         sync.RWMutex
	registries map[string]*Registry
}

// NewWorkspace creates an empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		registries: make(map[string]*Registry),
	}
}

// Open loads a document's registry and tracks it under the given key.
func (w *Workspace) Open(ctx context.Context, docID string, store docstore.DocumentStore, h host.Host) (*Registry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.registries[docID]; exists {
		return nil, fmt.Errorf("document %q already open", docID)
	}

	reg, err := New(ctx, store, h)
	if err != nil {
		return nil, err
	}
	w.registries[docID] = reg
	return reg, nil
}

// Get retrieves the registry of an open document.
func (w *Workspace) Get(docID string) (*Registry, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	reg, exists := w.registries[docID]
	if !exists {
		return nil, fmt.Errorf("document %q not open", docID)
	}
	return reg, nil
}

// Close drops a document's registry. State is already persisted after every
// mutation, so closing loses nothing.
func (w *Workspace) Close(docID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.registries[docID]; !exists {
		return fmt.Errorf("document %q not open", docID)
	}
	delete(w.registries, docID)
	return nil
}

// List returns the keys of all open documents.
func (w *Workspace) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	keys := make([]string, 0, len(w.registries))
	for k := range w.registries {
		keys = append(keys, k)
	}
	return keys
}
