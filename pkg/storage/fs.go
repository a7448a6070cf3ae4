package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FSStore хранит файлы в локальной директории
type FSStore struct {
	base string
}

// NewFSStore создает файловое хранилище в директории base
func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "uploads/audio"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", base, err)
	}
	return &FSStore{base: base}, nil
}

// Put сохраняет содержимое r под ключом key.
// Запись идет во временный файл с последующим переименованием,
// чтобы читатели не увидели частично записанный файл.
func (s *FSStore) Put(key string, r io.Reader) error {
	if key == "" {
		return errors.New("empty storage key")
	}
	dst := filepath.Join(s.base, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(s.base, fmt.Sprintf(".upload-%s", uuid.NewString()))
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

// Get открывает файл по ключу для чтения
func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.Clean(key)))
}

// Delete удаляет файл по ключу. Отсутствие файла ошибкой не считается.
func (s *FSStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.base, filepath.Clean(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists проверяет наличие файла
func (s *FSStore) Exists(key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.base, filepath.Clean(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Path возвращает путь к файлу на диске
func (s *FSStore) Path(key string) string {
	return filepath.Join(s.base, filepath.Clean(key))
}
