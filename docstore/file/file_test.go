/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package file

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.dynblocks.yaml")

	store := New(path)

	if err := store.SetValue(ctx, "DynamicBlocks", "Registry", `{"Families":{}}`); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := store.SetObjectValue(ctx, "obj-1", "dynblocks:values", `{"Width":2}`); err != nil {
		t.Fatalf("SetObjectValue failed: %v", err)
	}

	// A fresh store over the same path sees the persisted data.
	reopened := New(path)

	v, err := reopened.GetValue(ctx, "DynamicBlocks", "Registry")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if v != `{"Families":{}}` {
		t.Errorf("unexpected registry value %q", v)
	}

	ov, err := reopened.GetObjectValue(ctx, "obj-1", "dynblocks:values")
	if err != nil {
		t.Fatalf("GetObjectValue failed: %v", err)
	}
	if ov != `{"Width":2}` {
		t.Errorf("unexpected object value %q", ov)
	}
}

func TestFileStoreMissingFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "absent.yaml"))

	v, err := store.GetValue(ctx, "DynamicBlocks", "Registry")
	if err != nil {
		t.Fatalf("GetValue on missing file failed: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty value, got %q", v)
	}

	keys, err := store.ListKeys(ctx, "DynamicBlocks")
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	store := New(path)

	store.SetValue(ctx, "S", "a", "1")
	store.SetValue(ctx, "S", "b", "2")
	store.SetObjectValue(ctx, "obj-1", "k", "v")

	if err := store.DeleteValue(ctx, "S", "a"); err != nil {
		t.Fatalf("DeleteValue failed: %v", err)
	}
	if err := store.DeleteObject(ctx, "obj-1"); err != nil {
		t.Fatalf("DeleteObject failed: %v", err)
	}

	reopened := New(path)
	keys, err := reopened.ListKeys(ctx, "S")
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("expected [b], got %v", keys)
	}
	ov, _ := reopened.GetObjectValue(ctx, "obj-1", "k")
	if ov != "" {
		t.Errorf("expected deleted object metadata to be gone, got %q", ov)
	}
}
