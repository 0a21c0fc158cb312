package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

const (
	collectionName = "passages"
	compress       = false
)

// Index is a queryable, durable vector index over passages. Each index
// owns one persistent chromem database directory, so a cache entry is a
// self-contained directory that can be reopened or exported as a single
// archive file.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	dir        string
}

// Build creates a new persistent index at dir from parallel slices of
// passages and their embedding vectors. Once built, nearest-neighbor
// queries are answered without further embedding-provider calls.
func Build(ctx context.Context, dir string, passages []models.Passage, vectors [][]float32) (*Index, error) {
	if len(passages) != len(vectors) {
		return nil, fmt.Errorf("passages and vectors length mismatch: %d vs %d", len(passages), len(vectors))
	}
	ix, err := open(dir)
	if err != nil {
		return nil, err
	}

	docs := make([]chromem.Document, 0, len(passages))
	for i, p := range passages {
		docs = append(docs, chromem.Document{
			ID:        p.ID,
			Content:   p.Text,
			Metadata:  metadataFor(p),
			Embedding: vectors[i],
		})
	}
	if err := ix.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents: %w", err)
	}
	return ix, nil
}

// Open reloads a previously built index from its directory.
func Open(dir string) (*Index, error) {
	ix, err := open(dir)
	if err != nil {
		return nil, err
	}
	if ix.collection.Count() == 0 {
		return nil, fmt.Errorf("index at %s is empty", dir)
	}
	return ix, nil
}

// Restore rebuilds an index directory from an exported archive file.
func Restore(dir, archivePath string) (*Index, error) {
	ix, err := open(dir)
	if err != nil {
		return nil, err
	}
	if err := ix.db.ImportFromFile(archivePath, ""); err != nil {
		return nil, fmt.Errorf("failed to import index archive: %w", err)
	}
	// Re-resolve the collection: the import replaced it.
	c, err := ix.db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	ix.collection = c
	if ix.collection.Count() == 0 {
		return nil, fmt.Errorf("imported archive %s holds no passages", archivePath)
	}
	return ix, nil
}

func open(dir string) (*Index, error) {
	db, err := chromem.NewPersistentDB(dir, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	c, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}
	return &Index{db: db, collection: c, dir: dir}, nil
}

// Nearest returns up to k passages closest to the query embedding,
// nearest first. The index is never mutated by a query.
func (ix *Index) Nearest(ctx context.Context, queryEmbedding []float32, k int) ([]models.Passage, error) {
	if count := ix.collection.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}
	results, err := ix.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	passages := make([]models.Passage, 0, len(results))
	for _, r := range results {
		passages = append(passages, passageFrom(r))
	}
	return passages, nil
}

func (ix *Index) Count() int {
	return ix.collection.Count()
}

// Export writes the whole index to a single archive file, the format the
// remote cache mirror stores.
func (ix *Index) Export(path string) error {
	if err := ix.db.ExportToFile(path, compress, "", collectionName); err != nil {
		return fmt.Errorf("failed to export index: %w", err)
	}
	return nil
}

func metadataFor(p models.Passage) map[string]string {
	return map[string]string{
		"seq":   strconv.Itoa(p.Seq),
		"start": strconv.Itoa(p.Start),
		"end":   strconv.Itoa(p.End),
	}
}

func passageFrom(r chromem.Result) models.Passage {
	seq, _ := strconv.Atoi(r.Metadata["seq"])
	start, _ := strconv.Atoi(r.Metadata["start"])
	end, _ := strconv.Atoi(r.Metadata["end"])
	return models.Passage{
		ID:    r.ID,
		Text:  r.Content,
		Seq:   seq,
		Start: start,
		End:   end,
	}
}
