// Package ingest читает и декодирует файлы изображений с диска,
// превращая каждый успешно декодированный файл в содержимое галереи.
package ingest

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	// Регистрируем декодеры поддерживаемых форматов.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// WebP декодируется через golang.org/x/image.
	_ "golang.org/x/image/webp"

	"github.com/maynagashev/imgkeeper/internal/gallery"
)

// mimeByFormat сопоставляет имя формата из image.Decode с MIME-типом.
var mimeByFormat = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Result — результат приема одного файла.
type Result struct {
	Path    string             // Путь к исходному файлу
	Name    string             // Отображаемое имя (базовое имя файла)
	Content gallery.ContentRef // Декодированное содержимое
	Err     error              // Ошибка чтения или декодирования
}

// File читает и декодирует один файл изображения.
func File(path string) (gallery.ContentRef, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gallery.ContentRef{}, "", fmt.Errorf("ошибка чтения файла '%s': %w", path, err)
	}

	// Проверяем, что файл действительно декодируется как изображение.
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return gallery.ContentRef{}, "", fmt.Errorf("ошибка декодирования '%s': %w", path, err)
	}

	mimeType, ok := mimeByFormat[format]
	if !ok {
		mimeType = "application/octet-stream"
	}

	name := filepath.Base(path)
	slog.Info("Файл изображения декодирован",
		"path", path,
		"format", format,
		"bytes", len(data),
	)
	return gallery.NewContentRef(data, mimeType), name, nil
}

// Files принимает несколько файлов. Ошибка одного файла не прерывает
// остальные: каждый результат несет либо содержимое, либо ошибку.
func Files(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		content, name, err := File(path)
		results = append(results, Result{
			Path:    path,
			Name:    name,
			Content: content,
			Err:     err,
		})
	}
	return results
}
