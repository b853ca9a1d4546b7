package service

import (
	"testing"
	"time"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// TestCacheService_GetSet проверяет базовые операции Get/Set.
func TestCacheService_GetSet(t *testing.T) {
	cache := NewCacheService(100, 5*time.Minute)

	rec := &model.GenerationRecord{Text: "hi", Voice: "samara", Language: "english", AudioURL: "/a.mp3"}

	if _, ok := cache.Get(rec.Key()); ok {
		t.Fatal("ожидался cache miss для нового ключа")
	}

	cache.Set(rec)
	got, ok := cache.Get(model.GenerationKey{Text: "hi", Voice: "samara", Language: "english"})
	if !ok {
		t.Fatal("ожидался cache hit после Set")
	}
	if got.AudioURL != "/a.mp3" {
		t.Errorf("AudioURL = %q, ожидался /a.mp3", got.AudioURL)
	}

	// Ключ чувствителен к регистру
	if _, ok := cache.Get(model.GenerationKey{Text: "HI", Voice: "samara", Language: "english"}); ok {
		t.Error("ожидался cache miss для текста в другом регистре")
	}
}

// TestCacheService_TTLExpiration проверяет автоматическое истечение TTL.
func TestCacheService_TTLExpiration(t *testing.T) {
	cache := NewCacheService(100, 50*time.Millisecond)

	rec := &model.GenerationRecord{Text: "ttl", Voice: "v", Language: "l"}
	cache.Set(rec)

	if _, ok := cache.Get(rec.Key()); !ok {
		t.Fatal("ожидался cache hit сразу после Set")
	}

	time.Sleep(100 * time.Millisecond)

	if _, ok := cache.Get(rec.Key()); ok {
		t.Fatal("ожидался cache miss после истечения TTL")
	}
}

// TestCacheService_MaxSize проверяет вытеснение LRU.
func TestCacheService_MaxSize(t *testing.T) {
	cache := NewCacheService(2, 5*time.Minute)

	for _, text := range []string{"a", "b", "c"} {
		cache.Set(&model.GenerationRecord{Text: text, Voice: "v", Language: "l"})
	}

	if cache.Len() != 2 {
		t.Errorf("Len() = %d, ожидалось 2", cache.Len())
	}
	if _, ok := cache.Get(model.GenerationKey{Text: "a", Voice: "v", Language: "l"}); ok {
		t.Error("самая старая запись должна быть вытеснена")
	}
}
