package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/repository"
	"github.com/bigkaa/panelvoices/internal/storage/blobstore"
)

// testLogger — логгер для тестов, выводит только ошибки.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- Mock AudioRepository ---

type mockAudioRepo struct {
	insertFn func(ctx context.Context, rec *model.AudioRecord) (string, error)
	findFn   func(ctx context.Context, lang model.Language) (*model.AudioRecord, error)
	listFn   func(ctx context.Context) ([]*model.AudioRecord, error)
	countFn  func(ctx context.Context) (model.LanguageCounts, error)
}

func (m *mockAudioRepo) InsertAudio(ctx context.Context, rec *model.AudioRecord) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return "audio-1", nil
}

func (m *mockAudioRepo) FindAudioByLanguage(ctx context.Context, lang model.Language) (*model.AudioRecord, error) {
	if m.findFn != nil {
		return m.findFn(ctx, lang)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAudioRepo) ListAudio(ctx context.Context) ([]*model.AudioRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAudioRepo) CountAudioByLanguage(ctx context.Context) (model.LanguageCounts, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return model.LanguageCounts{}, nil
}

// --- Mock GenerationRepository ---

type mockGenerationRepo struct {
	insertFn func(ctx context.Context, rec *model.GenerationRecord) (string, error)
	findFn   func(ctx context.Context, key model.GenerationKey) (*model.GenerationRecord, error)
	listFn   func(ctx context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error)
}

func (m *mockGenerationRepo) InsertGeneration(ctx context.Context, rec *model.GenerationRecord) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return "gen-1", nil
}

func (m *mockGenerationRepo) FindGeneration(ctx context.Context, key model.GenerationKey) (*model.GenerationRecord, error) {
	if m.findFn != nil {
		return m.findFn(ctx, key)
	}
	return nil, repository.ErrNotFound
}

func (m *mockGenerationRepo) ListGenerations(ctx context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

// --- Mock blobstore.Store ---

type mockBlobStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	saveErr error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{saved: make(map[string][]byte)}
}

func (m *mockBlobStore) Save(_ context.Context, r io.Reader, _ int64, filename, _ string) (*blobstore.SaveResult, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.saved[filename] = data
	m.mu.Unlock()
	return &blobstore.SaveResult{
		StoragePath: blobstore.UploadsPrefix + filename,
		FullPath:    "/srv/public/uploads/" + filename,
		Size:        int64(len(data)),
	}, nil
}

func (m *mockBlobStore) Exists(_ context.Context, storagePath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saved[strings.TrimPrefix(storagePath, blobstore.UploadsPrefix)]
	return ok
}

func (m *mockBlobStore) FullPath(storagePath string) string {
	return "/srv/public" + storagePath
}

func (m *mockBlobStore) Backend() string {
	return "mock"
}
