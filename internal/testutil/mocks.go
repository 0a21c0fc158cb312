// Package testutil provides shared mock implementations for tests.
package testutil

import (
	"context"
	"errors"
	"os"

	"github.com/tmc/langchaingo/llms"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// ErrNotFound is returned by mocks when a resource doesn't exist.
var ErrNotFound = errors.New("not found")

// MockEmbedder returns canned vectors keyed by input text.
type MockEmbedder struct {
	Vectors map[string][]float32
	Default []float32
	Err     error
	Calls   int
}

func NewMockEmbedder(defaultVec []float32) *MockEmbedder {
	return &MockEmbedder{
		Vectors: make(map[string][]float32),
		Default: defaultVec,
	}
}

func (m *MockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return m.Default, nil
}

// MockCompleter returns a fixed response and records every prompt.
type MockCompleter struct {
	Response  string
	Responses []string // consumed in order when set
	Err       error
	Prompts   [][]llms.MessageContent
}

func (m *MockCompleter) Complete(_ context.Context, messages []llms.MessageContent) (string, error) {
	m.Prompts = append(m.Prompts, messages)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		m.Responses = m.Responses[1:]
		return resp, nil
	}
	return m.Response, nil
}

// MockCrawler returns a fixed corpus without touching the network.
type MockCrawler struct {
	Text  string
	Err   error
	Calls int
}

func (m *MockCrawler) Crawl(_ context.Context, _ string, _ int) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockBlob is an in-memory BlobStore.
type MockBlob struct {
	Objects     map[string][]byte
	UploadErr   error
	DownloadErr error
	Uploads     []string
	Downloads   []string
}

func NewMockBlob() *MockBlob {
	return &MockBlob{Objects: make(map[string][]byte)}
}

func (m *MockBlob) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.Objects[key]
	return ok, nil
}

func (m *MockBlob) Upload(_ context.Context, localPath, key string) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	m.Objects[key] = data
	m.Uploads = append(m.Uploads, key)
	return nil
}

func (m *MockBlob) Download(_ context.Context, key, localPath string) error {
	if m.DownloadErr != nil {
		return m.DownloadErr
	}
	data, ok := m.Objects[key]
	if !ok {
		return ErrNotFound
	}
	m.Downloads = append(m.Downloads, key)
	return os.WriteFile(localPath, data, 0o644)
}

// MockIndex returns canned passages for any query embedding.
type MockIndex struct {
	Passages []models.Passage
	Err      error
}

func (m *MockIndex) Nearest(_ context.Context, _ []float32, k int) ([]models.Passage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if k > len(m.Passages) {
		k = len(m.Passages)
	}
	return m.Passages[:k], nil
}
