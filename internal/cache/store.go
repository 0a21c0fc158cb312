package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/akhilesh1566/Website-Chatbot/internal/chromemdb"
	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

const archiveExt = ".chromem"

// Store persists built vector indexes under cache keys. Local disk is the
// source of truth; the optional blob store is a best-effort warm mirror.
type Store struct {
	root string
	blob BlobStore
}

func NewStore(root string, blob BlobStore) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Store{root: root, blob: blob}, nil
}

// IndexDir is the working directory holding a key's persistent index.
func (s *Store) IndexDir(key string) string {
	return filepath.Join(s.root, key)
}

// archivePath is the serialized cache entry: one self-contained file per
// key, also the object body mirrored to the blob store.
func (s *Store) archivePath(key string) string {
	return filepath.Join(s.root, key+archiveExt)
}

func objectKey(key string) string {
	return key + archiveExt
}

// Exists reports whether a cache entry is available, consulting the
// remote mirror when one is configured, the local disk otherwise.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if s.blob != nil {
		ok, err := s.blob.Exists(ctx, objectKey(key))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	_, err := os.Stat(s.archivePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Load materializes the index for a key. A remote-only hit is downloaded
// into local storage first, then the index is restored from local bytes.
func (s *Store) Load(ctx context.Context, key string) (*chromemdb.Index, error) {
	archive := s.archivePath(key)
	if _, err := os.Stat(archive); os.IsNotExist(err) {
		if s.blob == nil {
			return nil, fmt.Errorf("cache entry %s not found", key)
		}
		log.Info().Str("key", key).Msg("Downloading cache entry from blob store")
		if err := s.blob.Download(ctx, objectKey(key), archive); err != nil {
			return nil, err
		}
	}

	dir := s.IndexDir(key)
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to reset index dir: %w", err)
	}
	return chromemdb.Restore(dir, archive)
}

// Save builds a persistent index from passages and vectors, writes the
// entry's archive atomically, and mirrors it to the blob store when one
// is configured. A mirror failure is logged, never fatal.
func (s *Store) Save(ctx context.Context, key string, passages []models.Passage, vectors [][]float32) (*chromemdb.Index, error) {
	dir := s.IndexDir(key)
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to reset index dir: %w", err)
	}

	idx, err := chromemdb.Build(ctx, dir, passages, vectors)
	if err != nil {
		return nil, err
	}

	archive := s.archivePath(key)
	tmp := archive + ".tmp"
	if err := idx.Export(tmp); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, archive); err != nil {
		return nil, fmt.Errorf("failed to finalize cache entry: %w", err)
	}

	if s.blob != nil {
		if err := s.blob.Upload(ctx, archive, objectKey(key)); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Blob mirror failed, keeping local entry")
		} else {
			log.Info().Str("key", key).Msg("Mirrored cache entry to blob store")
		}
	}

	return idx, nil
}
