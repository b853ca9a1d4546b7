// Пакет static — встроенные статические ресурсы страниц PanelVoices.
// Файлы встраиваются в бинарник через //go:embed и раздаются по /static/.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed css/app.css js/*.js
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к /static/*.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS для прямого доступа к встроенным файлам.
func FS() fs.FS {
	return content
}
