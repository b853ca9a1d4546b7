package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

func sampleAudios() []*model.AudioRecord {
	return []*model.AudioRecord{
		{ID: "3", Filename: "3-c.mp3", StoragePath: "/uploads/3-c.mp3", Language: model.LanguageArabic},
		{ID: "2", Filename: "2-b.mp3", StoragePath: "/uploads/2-b.mp3", Language: model.LanguageEnglish},
		{ID: "1", Filename: "1-a.mp3", StoragePath: "/uploads/1-a.mp3", Language: model.LanguageEnglish},
	}
}

func TestCatalogService_List(t *testing.T) {
	repo := &mockAudioRepo{
		listFn: func(context.Context) ([]*model.AudioRecord, error) { return sampleAudios(), nil },
		countFn: func(context.Context) (model.LanguageCounts, error) {
			return model.LanguageCounts{English: 2, Arabic: 1}, nil
		},
	}
	svc := NewCatalogService(repo, newMockBlobStore(), DebugEnvironment{}, testLogger())

	cat, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if cat.Total != 3 || len(cat.Audios) != 3 {
		t.Errorf("Total = %d, Audios = %d, ожидалось 3", cat.Total, len(cat.Audios))
	}
	if cat.Languages.English != 2 || cat.Languages.Arabic != 1 {
		t.Errorf("Languages = %+v", cat.Languages)
	}
}

func TestCatalogService_ListError(t *testing.T) {
	repo := &mockAudioRepo{
		listFn: func(context.Context) ([]*model.AudioRecord, error) { return nil, errors.New("down") },
	}
	svc := NewCatalogService(repo, newMockBlobStore(), DebugEnvironment{}, testLogger())

	_, err := svc.List(context.Background())
	if KindOf(err) != KindInternal {
		t.Fatalf("ошибка = %v, ожидалась InternalError", err)
	}
	var se *Error
	if !errors.As(err, &se) || !strings.Contains(se.Message, "Failed to fetch") {
		t.Errorf("сообщение = %v", err)
	}
}

func TestCatalogService_Debug(t *testing.T) {
	repo := &mockAudioRepo{
		listFn: func(context.Context) ([]*model.AudioRecord, error) { return sampleAudios(), nil },
	}
	blobs := newMockBlobStore()
	blobs.saved["2-b.mp3"] = []byte("x")

	env := DebugEnvironment{StorageURISet: true, StorageBackend: "postgres", BlobBackend: "local"}
	svc := NewCatalogService(repo, blobs, env, testLogger())

	report, err := svc.Debug(context.Background())
	if err != nil {
		t.Fatalf("Debug() ошибка: %v", err)
	}
	if !report.Connected || report.TotalFiles != 3 {
		t.Errorf("Connected = %v, TotalFiles = %d", report.Connected, report.TotalFiles)
	}
	if report.Languages.English != 2 || report.Languages.Arabic != 1 {
		t.Errorf("Languages = %+v", report.Languages)
	}
	if report.Environment.StorageBackend != "postgres" {
		t.Errorf("Environment = %+v", report.Environment)
	}

	exists := map[string]bool{}
	for _, f := range report.Files {
		exists[f.Record.Filename] = f.FileExists
		if f.PublicURL != f.Record.StoragePath {
			t.Errorf("PublicURL = %q, ожидался %q", f.PublicURL, f.Record.StoragePath)
		}
		if f.FullPath != "/srv/public"+f.Record.StoragePath {
			t.Errorf("FullPath = %q", f.FullPath)
		}
	}
	if !exists["2-b.mp3"] || exists["1-a.mp3"] || exists["3-c.mp3"] {
		t.Errorf("FileExists = %v", exists)
	}
}
