// Пакет blobstore — хранение байтов загруженных аудиофайлов.
// Бэкенды: local (директория uploads внутри корня публичных ассетов)
// и minio (S3-совместимый bucket).
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"
)

// UploadsPrefix — URL-префикс локально хранимых загрузок.
const UploadsPrefix = "/uploads/"

// maxBaseNameLen ограничивает длину оригинального имени в имени файла.
const maxBaseNameLen = 100

// Store — хранилище байтов загруженных файлов.
type Store interface {
	// Save записывает содержимое под именем filename (см. GenerateFilename).
	// size = -1, если размер неизвестен.
	Save(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*SaveResult, error)
	// Exists проверяет наличие байтов по сохранённому пути.
	Exists(ctx context.Context, storagePath string) bool
	// FullPath возвращает физическое расположение (путь на диске или URL объекта).
	FullPath(storagePath string) string
	// Backend возвращает имя бэкенда (local, minio).
	Backend() string
}

// SaveResult — результат сохранения файла.
type SaveResult struct {
	// StoragePath — значение для AudioRecord.StoragePath:
	// /uploads/{filename} (local) или абсолютный URL (minio)
	StoragePath string
	// FullPath — физическое расположение
	FullPath string
	// Size — количество записанных байтов
	Size int64
}

// GenerateFilename формирует уникальное имя файла: {unixMillis}-{baseName}.
// Из originalName удаляются каталоги и небезопасные символы.
func GenerateFilename(now time.Time, originalName string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), sanitize(originalName))
}

// sanitize приводит имя к базовому и заменяет символы, отличные от букв,
// цифр, точки, дефиса и подчёркивания, на подчёркивание.
func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return "file"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	s := strings.TrimLeft(b.String(), ".")
	if s == "" {
		return "file"
	}
	if runes := []rune(s); len(runes) > maxBaseNameLen {
		s = string(runes[len(runes)-maxBaseNameLen:])
	}
	return s
}

// ContentTypeByExt возвращает MIME-тип аудио по расширению имени файла.
// Пустая строка — расширение не распознано.
func ContentTypeByExt(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	default:
		return ""
	}
}
