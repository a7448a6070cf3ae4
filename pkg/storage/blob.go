package storage

import "io"

// BlobStore - хранилище бинарных файлов (аудиозаписи)
type BlobStore interface {
	// Put сохраняет содержимое r под ключом key
	Put(key string, r io.Reader) error
	// Get открывает файл по ключу для чтения
	Get(key string) (io.ReadCloser, error)
	// Delete удаляет файл по ключу
	Delete(key string) error
	// Exists проверяет наличие файла
	Exists(key string) (bool, error)
	// Path возвращает путь к файлу на диске (для отдачи через http.ServeFile)
	Path(key string) string
}
