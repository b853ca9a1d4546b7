package handlers

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/repository"
)

// testLogger — логгер для тестов, выводит только ошибки.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// memStore — потокобезопасный in-memory repository.Store.
type memStore struct {
	mu     sync.Mutex
	seq    int
	audios []*model.AudioRecord
	gens   []*model.GenerationRecord
	// listErr — ошибка, возвращаемая ListAudio/CountAudioByLanguage
	listErr error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) nextID() string {
	s.seq++
	return strconv.Itoa(s.seq)
}

func (s *memStore) InsertAudio(_ context.Context, rec *model.AudioRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	cp.ID = s.nextID()
	s.audios = append(s.audios, &cp)
	return cp.ID, nil
}

func (s *memStore) FindAudioByLanguage(_ context.Context, lang model.Language) (*model.AudioRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *model.AudioRecord
	for _, a := range s.audios {
		if a.Language != lang {
			continue
		}
		if found == nil || !a.UploadedAt.Before(found.UploadedAt) {
			found = a
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (s *memStore) ListAudio(_ context.Context) ([]*model.AudioRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*model.AudioRecord, 0, len(s.audios))
	for i := len(s.audios) - 1; i >= 0; i-- {
		cp := *s.audios[i]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (s *memStore) CountAudioByLanguage(_ context.Context) (model.LanguageCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c model.LanguageCounts
	if s.listErr != nil {
		return c, s.listErr
	}
	for _, a := range s.audios {
		c.Add(a.Language, 1)
	}
	return c, nil
}

func (s *memStore) audioCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audios)
}

func (s *memStore) InsertGeneration(_ context.Context, rec *model.GenerationRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	cp.ID = s.nextID()
	s.gens = append(s.gens, &cp)
	return cp.ID, nil
}

func (s *memStore) FindGeneration(_ context.Context, key model.GenerationKey) (*model.GenerationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.gens {
		if g.Key() == key {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) ListGenerations(_ context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.GenerationRecord
	for i := len(s.gens) - 1; i >= 0; i-- {
		g := s.gens[i]
		if filter.Language != "" && g.Language != filter.Language {
			continue
		}
		if filter.Voice != "" && g.Voice != filter.Voice {
			continue
		}
		cp := *g
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

var _ repository.Store = (*memStore)(nil)

// staticChecker — ReadinessChecker с фиксированным ответом.
type staticChecker struct {
	status, message string
}

func (c staticChecker) CheckReady() (string, string) {
	return c.status, c.message
}

// staticDeps — DependencyHealth с фиксированным снимком.
type staticDeps map[string]bool

func (d staticDeps) Health() map[string]bool {
	return d
}
