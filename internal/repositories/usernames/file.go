package usernames

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// CacheFile is the file name used inside the cache directory
const CacheFile = "uuid_cache.json"

// FileStore keeps the table as a single JSON object on disk
type FileStore struct {
	path string
}

// NewFileStore creates a store at dir/uuid_cache.json
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.InvalidArgument("cache directory is required")
	}
	return &FileStore{path: filepath.Join(dir, CacheFile)}, nil
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// Path returns the cache file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the cache file
func (s *FileStore) Load(_ context.Context) (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "failed to read username cache").WithMeta("path", s.path)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed username cache").WithMeta("path", s.path)
	}
	return entries, nil
}

// Save replaces the cache file through a temp file and rename
func (s *FileStore) Save(_ context.Context, entries map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(err, "failed to create cache directory").WithMeta("dir", dir)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to encode username cache")
	}

	tmp, err := os.CreateTemp(dir, CacheFile+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp cache file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write username cache")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write username cache")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "failed to replace username cache").WithMeta("path", s.path)
	}
	return nil
}
