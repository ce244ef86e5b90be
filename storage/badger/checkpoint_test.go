package badger

import (
	"context"
	"testing"

	"github.com/poiesic/gatherit/core"
)

func TestCheckpointRoundTrip(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	repo := NewCheckpointRepository(backend)
	ctx := context.Background()

	// No checkpoint yet
	loaded, err := repo.LoadCheckpoint(ctx, "rederive")
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded != nil {
		t.Fatalf("Expected nil checkpoint, got %+v", loaded)
	}

	// Save and reload
	cp := &core.Checkpoint{ProcessorType: "rederive", LastID: 17}
	if err := repo.SaveCheckpoint(ctx, cp); err != nil {
		t.Fatalf("Failed to save checkpoint: %v", err)
	}
	if cp.UpdatedAt.IsZero() {
		t.Fatal("Expected UpdatedAt to be set")
	}

	loaded, err = repo.LoadCheckpoint(ctx, "rederive")
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded == nil || loaded.LastID != 17 {
		t.Fatalf("Expected LastID 17, got %+v", loaded)
	}

	// Overwrite advances the checkpoint
	cp.LastID = 42
	if err := repo.SaveCheckpoint(ctx, cp); err != nil {
		t.Fatalf("Failed to save checkpoint: %v", err)
	}
	loaded, err = repo.LoadCheckpoint(ctx, "rederive")
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded.LastID != 42 {
		t.Fatalf("Expected LastID 42, got %d", loaded.LastID)
	}
}
