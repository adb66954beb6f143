package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository keeps everything in memory and writes the whole history to
// a JSON file after every change
type FileRepository struct {
	*MemoryRepository
	path   string
	saveMu sync.Mutex
}

// NewFileRepository loads the history file at path, if any
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{
		MemoryRepository: NewMemoryRepository(),
		path:             path,
	}

	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return r, nil
}

// SaveGame saves a game and writes the file
func (r *FileRepository) SaveGame(ctx context.Context, record *Record) error {
	if err := r.MemoryRepository.SaveGame(ctx, record); err != nil {
		return err
	}
	return r.save()
}

// DeleteGamesBefore removes old saved games and writes the file
func (r *FileRepository) DeleteGamesBefore(ctx context.Context, key string) (int, error) {
	deleted, err := r.MemoryRepository.DeleteGamesBefore(ctx, key)
	if err != nil || deleted == 0 {
		return deleted, err
	}
	return deleted, r.save()
}

// SaveResult saves a result and writes the file
func (r *FileRepository) SaveResult(ctx context.Context, result *Result) error {
	if err := r.MemoryRepository.SaveResult(ctx, result); err != nil {
		return err
	}
	return r.save()
}

// Close flushes the history to disk
func (r *FileRepository) Close() error {
	return r.save()
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	r.restore(snap)
	return nil
}

func (r *FileRepository) save() error {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(r.snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
