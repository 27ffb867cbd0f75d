package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{Panes: []layout.Pane{
		{ID: "left", Top: 0, Right: 50, Bottom: 100, Left: 0},
		{ID: "right", Top: 0, Right: 100, Bottom: 100, Left: 50},
	}}
}

func TestNew(t *testing.T) {
	a := New("dashboard", testLayout())
	b := New("dashboard", testLayout())

	if a.ID == "" || b.ID == "" {
		t.Fatal("New should assign IDs")
	}
	if a.ID == b.ID {
		t.Error("IDs should be unique per snapshot")
	}
	if a.Name != "dashboard" {
		t.Errorf("Name = %q", a.Name)
	}
	if a.CreatedAt.IsZero() || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Errorf("timestamps = created %v, updated %v", a.CreatedAt, a.UpdatedAt)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := New("dashboard", testLayout())
	if err := store.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := store.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored snapshot")
	}
	if got.Name != "dashboard" || len(got.Layout.Panes) != 2 {
		t.Errorf("Get = %+v", got)
	}

	// Missing IDs return nil, nil
	missing, err := store.Get(ctx, "no-such-id")
	if err != nil || missing != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := New("dashboard", testLayout())
	if err := store.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, _ := store.Get(ctx, snap.ID)
	got.Name = "mutated"

	again, _ := store.Get(ctx, snap.ID)
	if again.Name != "dashboard" {
		t.Error("mutating a returned snapshot must not affect the store")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := New("", testLayout())
	_ = store.Put(ctx, snap)

	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	got, _ := store.Get(ctx, snap.ID)
	if got != nil {
		t.Error("Get after Delete should return nil")
	}

	// Deleting a missing ID is fine
	if err := store.Delete(ctx, "no-such-id"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	old := New("old", testLayout())
	old.CreatedAt = time.Now().Add(-time.Hour)
	recent := New("recent", testLayout())

	_ = store.Put(ctx, old)
	_ = store.Put(ctx, recent)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d snapshots, want 2", len(list))
	}
	if list[0].Name != "recent" || list[1].Name != "old" {
		t.Errorf("List order = [%s, %s], want newest first", list[0].Name, list[1].Name)
	}
}
