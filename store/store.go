// Package store persists serialized classifier artifacts under names on
// disk, fronted by an LRU read cache for callers juggling many models.
package store

import (
	"sort"

	lru "github.com/hashicorp/golang-lru"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// ErrModelNotFound is returned when no artifact is stored under a name.
var ErrModelNotFound = errors.New("model not found")

// BlockTransform determines how diskv should partition folders for long
// model names.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// ModelStore is a disk-backed registry of serialized classifier artifacts.
type ModelStore struct {
	d     *diskv.Diskv
	cache *lru.Cache
}

// New creates a model store rooted at the given path with an LRU read cache
// of the given size. Long model names are spread over nested directories.
func New(path string, cacheSize int) (*ModelStore, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create model cache")
	}
	d := diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    BlockTransform(8),
		CacheSizeMax: 4096 * 1024,
	})
	return &ModelStore{d: d, cache: cache}, nil
}

// Put stores an artifact under a name, replacing any previous artifact of
// that name.
func (s *ModelStore) Put(name string, artifact []byte) error {
	if name == "" {
		return errors.New("model name must not be empty")
	}
	if err := s.d.Write(name, artifact); err != nil {
		return errors.Wrapf(err, "store model %s", name)
	}
	s.cache.Add(name, artifact)
	return nil
}

// Get retrieves the artifact stored under a name, reading through the cache.
func (s *ModelStore) Get(name string) ([]byte, error) {
	if artifact, ok := s.cache.Get(name); ok {
		return artifact.([]byte), nil
	}
	artifact, err := s.d.Read(name)
	if err != nil {
		return nil, ErrModelNotFound
	}
	s.cache.Add(name, artifact)
	return artifact, nil
}

// Has reports whether an artifact is stored under a name.
func (s *ModelStore) Has(name string) bool {
	if _, ok := s.cache.Get(name); ok {
		return true
	}
	return s.d.Has(name)
}

// Delete removes the artifact stored under a name.
func (s *ModelStore) Delete(name string) error {
	s.cache.Remove(name)
	if err := s.d.Erase(name); err != nil {
		return errors.Wrapf(err, "delete model %s", name)
	}
	return nil
}

// Names returns the names of all stored artifacts in sorted order.
func (s *ModelStore) Names() []string {
	var names []string
	for name := range s.d.Keys(nil) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
