// Package mappingstore manages the persisted description-to-classification
// dictionary and the named pick-lists that feed classification choices.
package mappingstore

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"moneydash/ingest/internal/fileutils"
	"moneydash/ingest/internal/matcher"
	"moneydash/ingest/internal/models"
	"moneydash/ingest/internal/parsererror"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Pick-list names seeded into a fresh store.
const (
	ListAccountTypes = "account_types"
	ListCategories   = "categories"
	ListTags         = "tags"
	ListPayers       = "payers"
	ListPayees       = "payees"
)

// Document is the persisted shape of the store: a single structured file
// with the mappings and the pick-lists as top-level sections. It must
// round-trip losslessly through load and save.
type Document struct {
	Mappings map[string]models.Classification `yaml:"mappings"`
	Lists    map[string][]string              `yaml:"lists"`
}

// DefaultDocument returns a freshly seeded store document.
func DefaultDocument() Document {
	return Document{
		Mappings: map[string]models.Classification{},
		Lists: map[string][]string{
			ListAccountTypes: {"income", "expense", "transfer"},
			ListCategories:   {"Food & Dining", "Transportation", "Entertainment", "Utilities", "Healthcare", "Shopping"},
			ListTags:         {"essential", "luxury", "monthly", "annual", "subscription"},
			ListPayers:       {"Self", "Employer", "Bank", "Investment"},
			ListPayees:       {"Grocery Store", "Gas Station", "Restaurant", "Utility Company"},
		},
	}
}

// Store is the persistent key-value store for classifications. Writes are
// last-writer-wins: every mutation persists the full document. A single
// active writer is assumed; the file lock only keeps readers from seeing a
// partially written file.
type Store struct {
	path    string
	matcher matcher.Matcher
	cutoff  float64

	mu  sync.RWMutex
	doc Document
}

// New creates a store backed by the given file, loading it immediately.
// A missing file is seeded with defaults; a corrupt file is reinitialized
// with defaults and a warning, never an error.
func New(path string, m matcher.Matcher, cutoff float64) (*Store, error) {
	s := &Store{
		path:    path,
		matcher: m,
		cutoff:  cutoff,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NormalizeKey produces the canonical store key for a description:
// trimmed, inner whitespace collapsed.
func NormalizeKey(description string) string {
	return strings.Join(strings.Fields(description), " ")
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", s.path).Info("Mapping store not found, seeding defaults")
			s.doc = DefaultDocument()
			return s.persist()
		}
		return fmt.Errorf("error reading mapping store: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		corruption := &parsererror.StoreCorruptionError{Path: s.path, Err: err}
		log.WithError(corruption).Warn("Reinitializing mapping store with defaults")
		s.doc = DefaultDocument()
		return s.persist()
	}

	if doc.Mappings == nil {
		doc.Mappings = map[string]models.Classification{}
	}
	if doc.Lists == nil {
		doc.Lists = DefaultDocument().Lists
	}
	s.doc = doc
	log.WithFields(logrus.Fields{
		"file":     s.path,
		"mappings": len(doc.Mappings),
		"lists":    len(doc.Lists),
	}).Debug("Loaded mapping store")
	return nil
}

// persist writes the full document back to disk under an exclusive lock,
// released on all exit paths. Callers must hold s.mu.
func (s *Store) persist() error {
	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("error marshaling mapping store: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("error locking mapping store: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WithError(err).Warn("Failed to release mapping store lock")
		}
	}()

	if err := fileutils.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing mapping store: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":     s.path,
		"mappings": len(s.doc.Mappings),
	}).Debug("Saved mapping store")
	return nil
}

// Lookup finds the classification for a description. Cheap checks run
// first: exact key match, then case-insensitive substring containment in
// either direction, then fuzzy matching with the configured cutoff.
// Returns the classification, the store key that matched, and whether any
// match was found.
func (s *Store) Lookup(description string) (models.Classification, string, bool) {
	key := NormalizeKey(description)
	if key == "" {
		return models.Classification{}, "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Exact match always wins.
	if c, ok := s.doc.Mappings[key]; ok {
		return c, key, true
	}

	keys := s.sortedKeys()

	// Substring containment, case-insensitive, either direction.
	keyLower := strings.ToLower(key)
	for _, candidate := range keys {
		candidateLower := strings.ToLower(candidate)
		if strings.Contains(keyLower, candidateLower) || strings.Contains(candidateLower, keyLower) {
			return s.doc.Mappings[candidate], candidate, true
		}
	}

	// Fuzzy match last, only when the cheaper checks failed.
	if best, ok := s.matcher.BestMatch(key, keys, s.cutoff); ok {
		return s.doc.Mappings[best], best, true
	}

	return models.Classification{}, "", false
}

// Upsert inserts or overwrites the classification for a description and
// persists the full store.
func (s *Store) Upsert(description string, c models.Classification) error {
	key := NormalizeKey(description)
	if key == "" {
		return fmt.Errorf("cannot map an empty description")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Mappings[key] = c
	return s.persist()
}

// Keys returns all mapping keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedKeys()
}

// sortedKeys returns mapping keys in deterministic order. Callers must
// hold s.mu.
func (s *Store) sortedKeys() []string {
	keys := make([]string, 0, len(s.doc.Mappings))
	for k := range s.doc.Mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Picklist returns the named pick-list. Order is not significant; the
// returned slice is a sorted copy.
func (s *Store) Picklist(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]string, len(s.doc.Lists[name]))
	copy(items, s.doc.Lists[name])
	sort.Strings(items)
	return items
}

// PicklistNames returns the names of all pick-lists, sorted.
func (s *Store) PicklistNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.doc.Lists))
	for name := range s.doc.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdatePicklist replaces the named pick-list. Input is deduplicated
// before storage, then the full store is persisted.
func (s *Store) UpdatePicklist(name string, items []string) error {
	if name == "" {
		return fmt.Errorf("pick-list name is required")
	}

	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	sort.Strings(unique)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Lists == nil {
		s.doc.Lists = map[string][]string{}
	}
	s.doc.Lists[name] = unique
	return s.persist()
}

// Document returns a deep copy of the current store document.
func (s *Store) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := Document{
		Mappings: make(map[string]models.Classification, len(s.doc.Mappings)),
		Lists:    make(map[string][]string, len(s.doc.Lists)),
	}
	for k, v := range s.doc.Mappings {
		tags := make([]string, len(v.Tags))
		copy(tags, v.Tags)
		v.Tags = tags
		doc.Mappings[k] = v
	}
	for name, items := range s.doc.Lists {
		copied := make([]string, len(items))
		copy(copied, items)
		doc.Lists[name] = copied
	}
	return doc
}
