/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynblocks

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/dynblocks/docstore/mock"
	"github.com/suparena/dynblocks/errors"
	"github.com/suparena/dynblocks/host/sim"
	"github.com/suparena/dynblocks/models"
)

func rectSchema() []models.ParameterSpec {
	return []models.ParameterSpec{
		{Name: "Width", Default: 1.0},
		{Name: "Height", Default: 1.0},
	}
}

func newTestRegistry(t *testing.T) (*Registry, *mock.Store, *sim.Host) {
	t.Helper()

	store := mock.New()
	h := sim.New()
	reg, err := New(context.Background(), store, h)
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	return reg, store, h
}

func TestCreateFamily(t *testing.T) {
	ctx := context.Background()

	t.Run("Succeeds", func(t *testing.T) {
		reg, store, h := newTestRegistry(t)

		fam, err := reg.CreateFamily(ctx, "DoorPanel", models.ShapeRectangle, rectSchema())
		if err != nil {
			t.Fatalf("CreateFamily failed: %v", err)
		}
		if fam.ID == "" {
			t.Error("family should get an identifier")
		}
		if fam.Name != "DoorPanel" || fam.Kind != models.ShapeRectangle {
			t.Errorf("unexpected descriptor %+v", fam)
		}

		// Metadata written, no geometry built.
		if store.SectionCount(StoreSection) != 1 {
			t.Error("expected registry snapshot in document metadata")
		}
		if h.BuildCount() != 0 {
			t.Error("creating a family must not build geometry")
		}
	})

	t.Run("DuplicateName", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)

		if _, err := reg.CreateFamily(ctx, "DoorPanel", models.ShapeRectangle, rectSchema()); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		// Case-insensitive uniqueness.
		_, err := reg.CreateFamily(ctx, "doorpanel", models.ShapeRectangle, rectSchema())
		if !errors.IsDuplicateFamily(err) {
			t.Errorf("expected duplicate family error, got %v", err)
		}
	})

	t.Run("InvalidSchema", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)

		cases := []struct {
			name   string
			schema []models.ParameterSpec
		}{
			{"Empty", nil},
			{"DuplicateParameter", []models.ParameterSpec{{Name: "Width"}, {Name: "Width"}}},
			{"BlankParameterName", []models.ParameterSpec{{Name: " "}}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := reg.CreateFamily(ctx, "F_"+tc.name, models.ShapeRectangle, tc.schema)
				if !errors.IsInvalidSchema(err) {
					t.Errorf("expected invalid schema error, got %v", err)
				}
			})
		}
	})

	t.Run("UnknownShapeKind", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)

		_, err := reg.CreateFamily(ctx, "Hex", "hexagon", rectSchema())
		if !errors.IsInvalidSchema(err) {
			t.Errorf("expected invalid schema error for unknown kind, got %v", err)
		}
	})
}

func TestResolveDefinitionReuse(t *testing.T) {
	ctx := context.Background()
	reg, _, h := newTestRegistry(t)

	if _, err := reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema()); err != nil {
		t.Fatalf("CreateFamily failed: %v", err)
	}

	t.Run("EquivalentSetsShareOneBuild", func(t *testing.T) {
		d1, err := reg.ResolveDefinition(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		// Different map ordering and float noise below key precision.
		d2, err := reg.ResolveDefinition(ctx, "Rect", models.ParameterSet{"Height": 2.9999999, "Width": 2.0000001})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		if d1 != d2 {
			t.Errorf("equivalent parameter sets should share a definition: %q vs %q", d1, d2)
		}
		if h.BuildCount() != 1 {
			t.Errorf("expected exactly 1 build, got %d", h.BuildCount())
		}
	})

	t.Run("DistinctSetsGetDistinctDefinitions", func(t *testing.T) {
		d3, err := reg.ResolveDefinition(ctx, "Rect", models.ParameterSet{"Width": 5, "Height": 3})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		d1, _ := reg.ResolveDefinition(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3})
		if d3 == d1 {
			t.Error("distinct parameter sets should get distinct definitions")
		}
		if reg.DefinitionCount("Rect") != 2 {
			t.Errorf("expected 2 cache entries, got %d", reg.DefinitionCount("Rect"))
		}
		if h.BuildCount() != 2 {
			t.Errorf("expected 2 builds total, got %d", h.BuildCount())
		}
	})

	t.Run("UnknownFamily", func(t *testing.T) {
		_, err := reg.ResolveDefinition(ctx, "Nope", models.ParameterSet{"Width": 1, "Height": 1})
		if !errors.IsUnknownFamily(err) {
			t.Errorf("expected unknown family error, got %v", err)
		}
	})
}

func TestInsertInstance(t *testing.T) {
	ctx := context.Background()

	t.Run("SharesDefinitionAcrossInstances", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		i1, err := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		i2, err := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{Origin: models.Point{X: 10}})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		if i1.Definition != i2.Definition {
			t.Error("instances with equal parameters should share a definition")
		}
		if i1.ID == i2.ID {
			t.Error("instances should get distinct identifiers")
		}
		if h.BuildCount() != 1 {
			t.Errorf("expected 1 build for 2 equal instances, got %d", h.BuildCount())
		}
		if h.PlaceCount() != 2 {
			t.Errorf("expected 2 placements, got %d", h.PlaceCount())
		}
	})

	t.Run("UnknownFamily", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)
		_, err := reg.InsertInstance(ctx, "Nope", models.ParameterSet{"Width": 1, "Height": 1}, models.Placement{})
		if !errors.IsUnknownFamily(err) {
			t.Errorf("expected unknown family error, got %v", err)
		}
	})

	t.Run("RejectedValuesLeaveNoTrace", func(t *testing.T) {
		reg, store, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())
		before := store.SectionData(StoreSection)

		cases := []models.ParameterSet{
			{"Width": 0, "Height": 3},
			{"Width": -2, "Height": 3},
			{"Width": 2},
			{"Width": 2, "Height": 3, "Depth": 1},
		}
		for _, values := range cases {
			if _, err := reg.InsertInstance(ctx, "Rect", values, models.Placement{}); !errors.IsParameterMismatch(err) {
				t.Errorf("expected parameter mismatch for %v, got %v", values, err)
			}
		}

		if h.BuildCount() != 0 {
			t.Error("rejected inserts must not build definitions")
		}
		if h.PlaceCount() != 0 {
			t.Error("rejected inserts must not place instances")
		}
		after := store.SectionData(StoreSection)
		if len(after) != len(before) || after[StoreKey] != before[StoreKey] {
			t.Error("rejected inserts must not change document metadata")
		}
		if store.ObjectCount() != 0 {
			t.Error("rejected inserts must not write object metadata")
		}
	})

	t.Run("ValidatesValuesAsStored", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		// A width that rounds to zero at key precision is rejected up front
		// rather than stored as a record sync could never re-resolve.
		_, err := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 1e-7, "Height": 3}, models.Placement{})
		if !errors.IsParameterMismatch(err) {
			t.Fatalf("expected parameter mismatch for sub-precision width, got %v", err)
		}
		if h.BuildCount() != 0 || h.PlaceCount() != 0 {
			t.Error("rejected insert must not touch the host")
		}

		// Noise above a valid value is stored rounded and stays resolvable.
		inst, err := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2.0000001, "Height": 3}, models.Placement{})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if inst.Values["Width"] != 2 {
			t.Errorf("stored width should round to 2, got %v", inst.Values["Width"])
		}
		if _, err := reg.SyncFamily(ctx, "Rect"); err != nil {
			t.Fatalf("sync over stored values failed: %v", err)
		}
	})
}

func TestEditInstance(t *testing.T) {
	ctx := context.Background()

	t.Run("RepointsOnChange", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		inst, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
		d1 := inst.Definition

		edited, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 5, "Height": 3})
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if edited.Definition == d1 {
			t.Error("edit with new parameters should bind a new definition")
		}
		bound, _ := h.InstanceDefinition(ctx, inst.ID)
		if bound != edited.Definition {
			t.Error("host reference should point at the new definition")
		}
		if edited.Values["Width"] != 5 {
			t.Errorf("stored values should update, got %v", edited.Values)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		inst, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})

		first, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 5, "Height": 3})
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		builds := h.BuildCount()

		second, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 5, "Height": 3})
		if err != nil {
			t.Fatalf("repeat edit failed: %v", err)
		}

		if second.Definition != first.Definition {
			t.Error("repeat edit should keep the same definition")
		}
		if second.Values["Width"] != first.Values["Width"] || second.Values["Height"] != first.Values["Height"] {
			t.Error("repeat edit should keep the same values")
		}
		if h.BuildCount() != builds {
			t.Error("repeat edit must not build new definitions")
		}
	})

	t.Run("EditBackReusesCachedDefinition", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		inst, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
		d1 := inst.Definition

		reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 5, "Height": 3})
		builds := h.BuildCount()

		back, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 2, "Height": 3})
		if err != nil {
			t.Fatalf("edit back failed: %v", err)
		}
		if back.Definition != d1 {
			t.Error("editing back to earlier values should reuse the cached definition")
		}
		if h.BuildCount() != builds {
			t.Error("editing back must not build a new definition")
		}
	})

	t.Run("UnknownInstance", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		_, err := reg.EditInstance(ctx, "no-such-id", models.ParameterSet{"Width": 1, "Height": 1})
		if !errors.IsUnknownInstance(err) {
			t.Errorf("expected unknown instance error, got %v", err)
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())
		inst, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})

		_, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": -1, "Height": 3})
		if !errors.IsParameterMismatch(err) {
			t.Errorf("expected parameter mismatch, got %v", err)
		}

		// Record untouched.
		rec, _ := reg.Instance(inst.ID)
		if rec.Values["Width"] != 2 {
			t.Error("failed edit must not change stored values")
		}
	})

	t.Run("FailedRepointKeepsRecordAndHostAligned", func(t *testing.T) {
		reg, store, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())
		inst, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})

		h.WithRepointError(fmt.Errorf("reference is locked"))
		_, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 5, "Height": 3})
		if !errors.IsHostOperation(err) {
			t.Fatalf("expected host operation error, got %v", err)
		}

		// The record still describes what the host shows.
		rec, _ := reg.Instance(inst.ID)
		if rec.Definition != inst.Definition || rec.Values["Width"] != 2 {
			t.Errorf("failed repoint must leave the record unchanged, got %+v", rec)
		}
		bound, _ := h.InstanceDefinition(ctx, inst.ID)
		if bound != inst.Definition {
			t.Error("host reference should still point at the original definition")
		}

		// And so does the persisted snapshot.
		reloaded, err := New(ctx, store, h)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		rec2, _ := reloaded.Instance(inst.ID)
		if rec2.Definition != inst.Definition || rec2.Values["Width"] != 2 {
			t.Errorf("persisted record must match the host after failed repoint, got %+v", rec2)
		}
	})
}

func TestSyncFamily(t *testing.T) {
	ctx := context.Background()

	t.Run("PreservesValuesAndHandles", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		i1, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
		i2, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 5, "Height": 3}, models.Placement{})
		builds := h.BuildCount()

		records, err := reg.SyncFamily(ctx, "Rect")
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		for _, rec := range records {
			var want *models.InstanceRecord
			switch rec.ID {
			case i1.ID:
				want = i1
			case i2.ID:
				want = i2
			default:
				t.Fatalf("unexpected record %q", rec.ID)
			}
			if rec.Definition != want.Definition {
				t.Errorf("sync with unchanged builder should keep handle %q, got %q", want.Definition, rec.Definition)
			}
			if rec.Values["Width"] != want.Values["Width"] || rec.Values["Height"] != want.Values["Height"] {
				t.Error("sync must never change parameter values")
			}
		}
		if h.BuildCount() != builds {
			t.Error("sync with a warm cache must not build definitions")
		}
	})

	t.Run("PrunesDeletedInstances", func(t *testing.T) {
		reg, store, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		i1, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
		i2, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 5, "Height": 3}, models.Placement{})

		// Simulate deletion through ordinary document editing.
		h.DeleteInstance(i1.ID)

		records, err := reg.SyncFamily(ctx, "Rect")
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if len(records) != 1 || records[0].ID != i2.ID {
			t.Fatalf("expected only the surviving instance, got %+v", records)
		}

		if _, err := reg.Instance(i1.ID); !errors.IsUnknownInstance(err) {
			t.Errorf("pruned instance should be unknown, got %v", err)
		}
		if store.ObjectCount() != 1 {
			t.Errorf("pruned instance's object metadata should be removed, got %d objects", store.ObjectCount())
		}
	})

	t.Run("WithRebuildRegeneratesDefinitions", func(t *testing.T) {
		reg, _, h := newTestRegistry(t)
		reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

		i1, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
		builds := h.BuildCount()

		records, err := reg.SyncFamily(ctx, "Rect", WithRebuild())
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if records[0].Definition == i1.Definition {
			t.Error("rebuild sync should bind fresh definitions")
		}
		if h.BuildCount() != builds+1 {
			t.Errorf("rebuild sync should build once per distinct parameter set, got %d extra", h.BuildCount()-builds)
		}
		if records[0].Values["Width"] != 2 {
			t.Error("rebuild sync must never change parameter values")
		}

		bound, _ := h.InstanceDefinition(ctx, i1.ID)
		if bound != records[0].Definition {
			t.Error("host reference should point at the rebuilt definition")
		}
	})

	t.Run("UnknownFamily", func(t *testing.T) {
		reg, _, _ := newTestRegistry(t)
		if _, err := reg.SyncFamily(ctx, "Nope"); !errors.IsUnknownFamily(err) {
			t.Errorf("expected unknown family error, got %v", err)
		}
	})
}

func TestForgetInstance(t *testing.T) {
	ctx := context.Background()
	reg, store, _ := newTestRegistry(t)
	reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema())

	inst, _ := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})

	if err := reg.ForgetInstance(ctx, inst.ID); err != nil {
		t.Fatalf("forget failed: %v", err)
	}
	if store.ObjectCount() != 0 {
		t.Error("forgetting should remove object metadata")
	}

	if _, err := reg.EditInstance(ctx, inst.ID, models.ParameterSet{"Width": 1, "Height": 1}); !errors.IsUnknownInstance(err) {
		t.Errorf("operations after forget should fail with unknown instance, got %v", err)
	}
	if err := reg.ForgetInstance(ctx, inst.ID); !errors.IsUnknownInstance(err) {
		t.Errorf("double forget should fail with unknown instance, got %v", err)
	}
}

// The end-to-end scenario: two equal inserts share one definition, editing
// one instance rebinds only it, and a sync with an unchanged builder is a
// no-op on geometry.
func TestRectangleScenario(t *testing.T) {
	ctx := context.Background()
	reg, _, h := newTestRegistry(t)

	if _, err := reg.CreateFamily(ctx, "Rect", models.ShapeRectangle, rectSchema()); err != nil {
		t.Fatalf("CreateFamily failed: %v", err)
	}

	i1, err := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{})
	if err != nil {
		t.Fatalf("insert I1 failed: %v", err)
	}
	d1 := i1.Definition
	if h.BuildCount() != 1 {
		t.Fatalf("expected D1 built, got %d builds", h.BuildCount())
	}

	i2, err := reg.InsertInstance(ctx, "Rect", models.ParameterSet{"Width": 2, "Height": 3}, models.Placement{Origin: models.Point{X: 4}})
	if err != nil {
		t.Fatalf("insert I2 failed: %v", err)
	}
	if i2.Definition != d1 {
		t.Error("I2 should bind to D1")
	}
	if h.BuildCount() != 1 {
		t.Error("second equal insert must not build a new definition")
	}

	i2edited, err := reg.EditInstance(ctx, i2.ID, models.ParameterSet{"Width": 5, "Height": 3})
	if err != nil {
		t.Fatalf("edit I2 failed: %v", err)
	}
	d2 := i2edited.Definition
	if d2 == d1 {
		t.Error("edit should create and bind D2")
	}
	if h.BuildCount() != 2 {
		t.Errorf("expected 2 builds after edit, got %d", h.BuildCount())
	}

	i1after, _ := reg.Instance(i1.ID)
	if i1after.Definition != d1 {
		t.Error("I1 should still be bound to D1")
	}

	records, err := reg.SyncFamily(ctx, "Rect")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	for _, rec := range records {
		switch rec.ID {
		case i1.ID:
			if rec.Definition != d1 {
				t.Error("I1 should re-resolve to D1")
			}
		case i2.ID:
			if rec.Definition != d2 {
				t.Error("I2 should re-resolve to D2")
			}
		}
	}
	if h.BuildCount() != 2 {
		t.Error("sync with unchanged builder must not build definitions")
	}
}
