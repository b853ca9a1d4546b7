package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

func TestLookup_InvalidLanguage(t *testing.T) {
	repo := &mockAudioRepo{
		findFn: func(context.Context, model.Language) (*model.AudioRecord, error) {
			t.Fatal("FindAudioByLanguage не должен вызываться для недопустимого языка")
			return nil, nil
		},
	}
	svc := NewLookupService(repo, "", testLogger())

	_, err := svc.Lookup(context.Background(), "french", "http://localhost:8040")
	if KindOf(err) != KindInvalidLanguage {
		t.Fatalf("ошибка = %v, ожидалась InvalidLanguage", err)
	}
}

func TestLookup_NotFound(t *testing.T) {
	svc := NewLookupService(&mockAudioRepo{}, "", testLogger())

	_, err := svc.Lookup(context.Background(), "english", "http://localhost:8040")
	if KindOf(err) != KindNotFound {
		t.Fatalf("ошибка = %v, ожидалась NotFound", err)
	}
}

func TestLookup_RepoError(t *testing.T) {
	repo := &mockAudioRepo{
		findFn: func(context.Context, model.Language) (*model.AudioRecord, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := NewLookupService(repo, "", testLogger())

	_, err := svc.Lookup(context.Background(), "arabic", "")
	if KindOf(err) != KindInternal {
		t.Fatalf("ошибка = %v, ожидалась InternalError", err)
	}
}

func TestLookup_Found(t *testing.T) {
	repo := &mockAudioRepo{
		findFn: func(_ context.Context, lang model.Language) (*model.AudioRecord, error) {
			if lang != model.LanguageArabic {
				t.Errorf("язык = %q, ожидался arabic", lang)
			}
			return &model.AudioRecord{
				Filename:    "1-ar.mp3",
				StoragePath: "/uploads/1-ar.mp3",
				Language:    model.LanguageArabic,
			}, nil
		},
	}
	svc := NewLookupService(repo, "", testLogger())

	res, err := svc.Lookup(context.Background(), "Arabic", "https://voices.example.com")
	if err != nil {
		t.Fatalf("Lookup() ошибка: %v", err)
	}
	if res.AudioURL != "https://voices.example.com/uploads/1-ar.mp3" {
		t.Errorf("AudioURL = %q", res.AudioURL)
	}
	if res.Record.Filename != "1-ar.mp3" {
		t.Errorf("Filename = %q", res.Record.Filename)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		origin  string
		want    string
	}{
		{
			name:   "origin запроса",
			path:   "/uploads/a.mp3",
			origin: "http://localhost:8040",
			want:   "http://localhost:8040/uploads/a.mp3",
		},
		{
			name:    "базовый URL важнее origin",
			baseURL: "https://cdn.example.com/",
			path:    "/uploads/a.mp3",
			origin:  "http://localhost:8040",
			want:    "https://cdn.example.com/uploads/a.mp3",
		},
		{
			name:    "абсолютный путь без изменений",
			baseURL: "https://cdn.example.com",
			path:    "http://minio:9000/voices/a.mp3",
			want:    "http://minio:9000/voices/a.mp3",
		},
		{
			name:   "путь без ведущего слэша",
			path:   "uploads/a.mp3",
			origin: "http://h",
			want:   "http://h/uploads/a.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLookupService(&mockAudioRepo{}, tt.baseURL, testLogger())
			if got := svc.ResolveURL(tt.path, tt.origin); got != tt.want {
				t.Errorf("ResolveURL() = %q, ожидался %q", got, tt.want)
			}
		})
	}
}
