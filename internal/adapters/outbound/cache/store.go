package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pycoding/pycoding/internal/domain"
)

// DefaultSize bounds the number of lint reports kept in memory.
const DefaultSize = 512

// Store is an in-memory implementation of domain.LintCache.
// Reports are copied on the way in and out.
type Store struct {
	reports *lru.Cache[string, *domain.LintReport]

	mu     sync.Mutex
	byFile map[string]map[string]struct{}
}

// New creates a cache holding at most size reports.
func New(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	s := &Store{byFile: make(map[string]map[string]struct{})}
	reports, err := lru.NewWithEvict[string, *domain.LintReport](size, s.onEvict)
	if err != nil {
		return nil, fmt.Errorf("creating lint cache: %w", err)
	}
	s.reports = reports
	return s, nil
}

// Get returns the report stored under key.
func (s *Store) Get(key string) (*domain.LintReport, bool) {
	r, ok := s.reports.Get(key)
	if !ok {
		return nil, false
	}
	return clone(r), true
}

// Put stores report under key.
func (s *Store) Put(key string, report *domain.LintReport) {
	if report == nil {
		return
	}
	s.mu.Lock()
	keys, ok := s.byFile[report.File]
	if !ok {
		keys = make(map[string]struct{})
		s.byFile[report.File] = keys
	}
	keys[key] = struct{}{}
	s.mu.Unlock()

	s.reports.Add(key, clone(report))
}

// Invalidate drops every report stored for file.
func (s *Store) Invalidate(file string) {
	s.mu.Lock()
	keys := s.byFile[file]
	delete(s.byFile, file)
	s.mu.Unlock()

	for k := range keys {
		s.reports.Remove(k)
	}
}

// Len returns the number of cached reports.
func (s *Store) Len() int {
	return s.reports.Len()
}

func (s *Store) onEvict(key string, report *domain.LintReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keys, ok := s.byFile[report.File]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(s.byFile, report.File)
		}
	}
}

func clone(r *domain.LintReport) *domain.LintReport {
	c := *r
	c.Diagnostics = make([]domain.MergedDiagnostic, len(r.Diagnostics))
	copy(c.Diagnostics, r.Diagnostics)
	return &c
}
