package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
	"github.com/akhilesh1566/Website-Chatbot/internal/testutil"
)

var testPassages = []models.Passage{
	{ID: "p-00000", Text: "alpha passage", Seq: 0, Start: 0, End: 13},
	{ID: "p-00001", Text: "beta passage", Seq: 1, Start: 13, End: 25},
}

var testVectors = [][]float32{
	{1, 0, 0},
	{0, 1, 0},
}

func TestStore_MissThenHit(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	key := Key("https://example.com")

	hit, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Fatal("Expected miss for fresh store")
	}

	if _, err := store.Save(ctx, key, testPassages, testVectors); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	hit, err = store.Exists(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("Expected hit after Save")
	}

	idx, err := store.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := idx.Nearest(ctx, []float32{1, 0, 0}, 1)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "alpha passage" {
		t.Errorf("Expected alpha passage nearest, got %+v", got)
	}
}

func TestStore_MirrorsToBlob(t *testing.T) {
	ctx := context.Background()
	blob := testutil.NewMockBlob()
	store, err := NewStore(t.TempDir(), blob)
	if err != nil {
		t.Fatal(err)
	}
	key := Key("https://example.com")

	if _, err := store.Save(ctx, key, testPassages, testVectors); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(blob.Uploads) != 1 {
		t.Fatalf("Expected one blob upload, got %d", len(blob.Uploads))
	}
}

func TestStore_MirrorFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	blob := testutil.NewMockBlob()
	blob.UploadErr = errors.New("bucket unavailable")
	store, err := NewStore(t.TempDir(), blob)
	if err != nil {
		t.Fatal(err)
	}
	key := Key("https://example.com")

	if _, err := store.Save(ctx, key, testPassages, testVectors); err != nil {
		t.Fatalf("Save must succeed when only the mirror fails, got: %v", err)
	}

	// Local entry is still the source of truth.
	hit, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("Expected local entry despite mirror failure")
	}
}

func TestStore_RemoteHitDownloadsEntry(t *testing.T) {
	ctx := context.Background()
	blob := testutil.NewMockBlob()

	// Populate the blob store from a first store instance.
	seed, err := NewStore(t.TempDir(), blob)
	if err != nil {
		t.Fatal(err)
	}
	key := Key("https://example.com")
	if _, err := seed.Save(ctx, key, testPassages, testVectors); err != nil {
		t.Fatal(err)
	}

	// A second store with empty local disk sees the remote entry.
	store, err := NewStore(t.TempDir(), blob)
	if err != nil {
		t.Fatal(err)
	}
	hit, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("Expected remote hit")
	}

	idx, err := store.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load from remote failed: %v", err)
	}
	if len(blob.Downloads) != 1 {
		t.Errorf("Expected one download, got %d", len(blob.Downloads))
	}
	if idx.Count() != len(testPassages) {
		t.Errorf("Restored index holds %d passages, want %d", idx.Count(), len(testPassages))
	}
}
