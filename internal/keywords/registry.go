// Package keywords owns the persisted set of search terms that drives
// transaction classification.
package keywords

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/faturalab/statement-scanner/internal/models"
)

// DefaultKeywords seed a registry whose backing file does not exist yet.
// Ride-hailing apps are the original use case for this tool.
var DefaultKeywords = []string{"uber", "99"}

// keywordsFile is the on-disk representation: {"keywords": ["uber", "99"]}.
type keywordsFile struct {
	Keywords []string `json:"keywords"`
}

// Registry is the single source of truth for registered keywords.
// Mutations are serialized behind a mutex and written through to the
// backing JSON file; List returns a copy, so an extraction run already
// holding a snapshot is never torn by a concurrent mutation.
type Registry struct {
	path string

	mu   sync.Mutex
	keys []models.Keyword // normalized, insertion order
}

// NewRegistry loads the registry from the JSON file at path, creating
// an in-memory registry seeded with DefaultKeywords when the file does
// not exist. The file is only written on the first mutation.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		for _, k := range DefaultKeywords {
			r.keys = append(r.keys, models.Keyword(Normalize(k)))
		}
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file %q: %w", path, err)
	}

	var kf keywordsFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file %q: %w", path, err)
	}

	// Normalize and de-duplicate on load; hand-edited files may carry
	// casing or accent variants of the same term.
	seen := make(map[models.Keyword]bool)
	for _, raw := range kf.Keywords {
		k := models.Keyword(Normalize(raw))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		r.keys = append(r.keys, k)
	}
	return r, nil
}

// List returns the registered keywords in insertion order. The returned
// slice is a copy: callers use it as a run snapshot.
func (r *Registry) List() []models.Keyword {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Keyword, len(r.keys))
	copy(out, r.keys)
	return out
}

// Add normalizes text and registers it. Fails with ErrInvalidKeyword if
// the text is empty after trimming and ErrDuplicateKeyword if the
// normalized form already exists.
func (r *Registry) Add(text string) (models.Keyword, error) {
	k := models.Keyword(Normalize(text))
	if k == "" {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidKeyword, text)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.keys {
		if existing == k {
			return "", fmt.Errorf("%w: %q", models.ErrDuplicateKeyword, k)
		}
	}

	r.keys = append(r.keys, k)
	if err := r.save(); err != nil {
		r.keys = r.keys[:len(r.keys)-1]
		return "", err
	}
	return k, nil
}

// Remove deletes the keyword matching the normalized form of text.
// Removing an absent keyword fails with ErrKeywordNotFound; repeated
// removal is an error on purpose, to surface caller bugs.
func (r *Registry) Remove(text string) error {
	k := models.Keyword(Normalize(text))

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.keys {
		if existing == k {
			removed := r.keys[i]
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			if err := r.save(); err != nil {
				// Reinsert at the original position so memory and disk agree.
				r.keys = append(r.keys[:i], append([]models.Keyword{removed}, r.keys[i:]...)...)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", models.ErrKeywordNotFound, k)
}

// save writes the current keyword list to the backing file.
// Caller must hold r.mu.
func (r *Registry) save() error {
	kf := keywordsFile{Keywords: make([]string, len(r.keys))}
	for i, k := range r.keys {
		kf.Keywords[i] = string(k)
	}

	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write keywords file %q: %w", r.path, err)
	}
	return nil
}
