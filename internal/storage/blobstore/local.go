package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore — файлы в директории uploads на локальном диске.
// Раздаются статически по префиксу /uploads/.
type LocalStore struct {
	// dir — директория загрузок (PV_PUBLIC_DIR/uploads)
	dir string
}

// NewLocal создаёт LocalStore. Создаёт директорию, если её нет.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию загрузок %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save записывает данные на диск.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (s *LocalStore) Save(_ context.Context, r io.Reader, _ int64, filename, _ string) (*SaveResult, error) {
	fullPath := filepath.Join(s.dir, filename)

	f, err := os.CreateTemp(s.dir, ".upload-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpPath := f.Name()

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	// CreateTemp создаёт файл с правами 0600, статика должна читаться
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка установки прав: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return &SaveResult{
		StoragePath: UploadsPrefix + filename,
		FullPath:    fullPath,
		Size:        size,
	}, nil
}

// Exists проверяет существование файла на диске.
func (s *LocalStore) Exists(_ context.Context, storagePath string) bool {
	info, err := os.Stat(s.FullPath(storagePath))
	return err == nil && !info.IsDir()
}

// FullPath возвращает абсолютный путь к файлу на диске.
// Принимает как /uploads/{filename}, так и голое имя файла.
func (s *LocalStore) FullPath(storagePath string) string {
	name := strings.TrimPrefix(storagePath, UploadsPrefix)
	return filepath.Join(s.dir, filepath.Base(name))
}

// Backend возвращает "local".
func (s *LocalStore) Backend() string {
	return "local"
}

// Dir возвращает директорию загрузок.
func (s *LocalStore) Dir() string {
	return s.dir
}
