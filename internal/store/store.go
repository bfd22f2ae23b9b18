// Package store persists label templates as a JSON file. It implements
// the template-storage collaborator the engine consumes; the editor
// frontend talks to it through the HTTP API.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Store manages persisted templates
type Store struct {
	filePath string
	data     map[string]*labelformat.Template
	mu       sync.RWMutex
}

// New creates a store backed by the given file. A missing file is not
// an error; it is created on first save.
func New(filePath string) (*Store, error) {
	s := &Store{
		filePath: filePath,
		data:     make(map[string]*labelformat.Template),
	}

	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load template store: %w", err)
		}
	}

	return s, nil
}

// Create validates and persists a new template, assigning it an id.
func (s *Store) Create(tpl labelformat.Template) (*labelformat.Template, error) {
	if err := labelformat.Validate(&tpl); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tpl.ID = uuid.NewString()
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	s.data[tpl.ID] = &tpl

	if err := s.save(); err != nil {
		delete(s.data, tpl.ID)
		return nil, err
	}

	tplCopy := tpl
	return &tplCopy, nil
}

// Get returns a template by id.
func (s *Store) Get(id string) (*labelformat.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.data[id]
	if !ok {
		return nil, false
	}

	tplCopy := *tpl
	return &tplCopy, true
}

// Update replaces a stored template, keeping its id and creation time.
func (s *Store) Update(id string, tpl labelformat.Template) (*labelformat.Template, error) {
	if err := labelformat.Validate(&tpl); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("template %s not found", id)
	}

	tpl.ID = id
	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now()

	s.data[id] = &tpl

	if err := s.save(); err != nil {
		s.data[id] = existing
		return nil, err
	}

	tplCopy := tpl
	return &tplCopy, nil
}

// Delete removes a template.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.data[id]
	if !ok {
		return false
	}

	delete(s.data, id)
	if err := s.save(); err != nil {
		s.data[id] = existing
		return false
	}
	return true
}

// List returns all templates, most recently updated first.
func (s *Store) List() []*labelformat.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*labelformat.Template, 0, len(s.data))
	for _, tpl := range s.data {
		tplCopy := *tpl
		out = append(out, &tplCopy)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}
