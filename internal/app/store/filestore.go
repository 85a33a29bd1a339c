package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/aseptimu/link-shortener/internal/app/service"
)

// Entry — одна строка файла хранилища.
type Entry struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// FileStore держит пары в памяти и дописывает каждую запись в файл JSON Lines.
// При открытии файл проигрывается целиком, поздние строки перекрывают ранние.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
	// torn — файл оканчивается оборванной строкой без '\n'.
	torn bool
}

func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		filePath: filePath,
		data:     make(map[string]string),
	}
	if err := fs.loadFromFile(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) loadFromFile() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return unavailable(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			// хвост, оборванный при аварийном завершении
			continue
		}
		fs.data[entry.Key] = entry.URL
	}
	if err := scanner.Err(); err != nil {
		return unavailable(err)
	}

	info, err := file.Stat()
	if err != nil {
		return unavailable(err)
	}
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, size-1); err != nil {
			return unavailable(err)
		}
		fs.torn = last[0] != '\n'
	}
	return nil
}

func (fs *FileStore) appendToFile(entry Entry) error {
	file, err := os.OpenFile(fs.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return unavailable(err)
	}
	defer file.Close()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	line := append(jsonData, '\n')
	if fs.torn {
		line = append([]byte{'\n'}, line...)
	}
	if _, err := file.Write(line); err != nil {
		return unavailable(err)
	}
	fs.torn = false
	return nil
}

func (fs *FileStore) Get(_ context.Context, key string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	url, exists := fs.data[key]
	if !exists {
		return "", service.ErrURLNotFound
	}
	return url, nil
}

func (fs *FileStore) Set(_ context.Context, key, url string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.put(key, url)
}

func (fs *FileStore) SetIfAbsent(_ context.Context, key, url string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, exists := fs.data[key]; exists {
		return false, nil
	}
	if err := fs.put(key, url); err != nil {
		return false, err
	}
	return true, nil
}

// put: ключ попадает в карту только после успешной записи в файл.
func (fs *FileStore) put(key, url string) error {
	if err := fs.appendToFile(Entry{Key: key, URL: url}); err != nil {
		return err
	}
	fs.data[key] = url
	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
