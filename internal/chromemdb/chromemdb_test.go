package chromemdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

var (
	passages = []models.Passage{
		{ID: "p-00000", Text: "pricing and plans", Seq: 0, Start: 0, End: 17},
		{ID: "p-00001", Text: "contact the support team", Seq: 1, Start: 17, End: 41},
		{ID: "p-00002", Text: "company history", Seq: 2, Start: 41, End: 56},
	}
	vectors = [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Build(context.Background(), filepath.Join(t.TempDir(), "idx"), passages, vectors)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func TestNearest_OrdersByDistance(t *testing.T) {
	idx := buildTestIndex(t)

	got, err := idx.Nearest(context.Background(), []float32{0, 1, 0}, 2)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 passages, got %d", len(got))
	}
	if got[0].ID != "p-00001" {
		t.Errorf("Expected support passage nearest, got %s", got[0].ID)
	}
	if got[0].Seq != 1 || got[0].Start != 17 || got[0].End != 41 {
		t.Errorf("Passage metadata lost in round trip: %+v", got[0])
	}
}

func TestNearest_ClampsKToCount(t *testing.T) {
	idx := buildTestIndex(t)

	got, err := idx.Nearest(context.Background(), []float32{1, 0, 0}, 50)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if len(got) != len(passages) {
		t.Errorf("Expected %d passages, got %d", len(passages), len(got))
	}
}

func TestOpen_ReloadsPersistedIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	if _, err := Build(context.Background(), dir, passages, vectors); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	idx, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if idx.Count() != len(passages) {
		t.Errorf("Reopened index holds %d passages, want %d", idx.Count(), len(passages))
	}
}

func TestOpen_EmptyDirFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "empty")); err == nil {
		t.Error("Expected error opening an empty index")
	}
}

func TestExportRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	idx := buildTestIndex(t)
	archive := filepath.Join(tmp, "site.chromem")
	if err := idx.Export(archive); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	restored, err := Restore(filepath.Join(tmp, "restored"), archive)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	query := []float32{0, 0, 1}
	want, err := idx.Nearest(ctx, query, 3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := restored.Nearest(ctx, query, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(want) != len(got) {
		t.Fatalf("Result count differs after restore: %d vs %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("Result %d differs after restore: %+v vs %+v", i, want[i], got[i])
		}
	}
}

func TestBuild_LengthMismatch(t *testing.T) {
	_, err := Build(context.Background(), filepath.Join(t.TempDir(), "idx"), passages, vectors[:1])
	if err == nil {
		t.Error("Expected error for mismatched passages and vectors")
	}
}
