package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/collecty/richtext/pkg/domain"
	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding used by Save.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// extensions are probed by Load in this order.
var extensions = []string{".json", ".yaml", ".yml"}

// Store implements ports.ContentStore using the local filesystem.
// Each record lives in "<id>.json" or "<id>.yaml" inside BasePath, so content
// can be authored by hand and checked into a repository.
type Store struct {
	BasePath string
	format   Format
}

type Option func(*Store)

// WithFormat sets the encoding for newly saved records. Defaults to JSON.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".richtext/content".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".richtext", "content")
	}
	s := &Store{BasePath: basePath, format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// yamlRecord mirrors domain.Content with the body as a YAML tree.
type yamlRecord struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Body      any       `yaml:"body"`
}

func validID(id string) error {
	if id == "" {
		return errors.New("content id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." || strings.HasPrefix(id, "tmp-") {
		return fmt.Errorf("%w %q", domain.ErrInvalidID, id)
	}
	return nil
}

// Save persists the content atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, content *domain.Content) error {
	if content == nil {
		return errors.New("content cannot be nil")
	}
	if err := validID(content.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure content directory: %w", err)
	}

	record := content.Clone()
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	data, ext, err := s.encode(record)
	if err != nil {
		return err
	}
	destPath := filepath.Join(s.BasePath, record.ID+ext)

	// Same directory keeps the rename on one filesystem
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+record.ID+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing content file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to content file: %w", err)
	}

	// A record switching formats must not leave a stale twin behind.
	for _, other := range extensions {
		if other != ext {
			_ = os.Remove(filepath.Join(s.BasePath, record.ID+other))
		}
	}

	return nil
}

func (s *Store) encode(c *domain.Content) ([]byte, string, error) {
	if s.format != FormatYAML {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal content: %w", err)
		}
		return data, ".json", nil
	}

	var body any
	if len(c.Body) > 0 {
		if err := json.Unmarshal(c.Body, &body); err != nil {
			return nil, "", fmt.Errorf("failed to decode body for yaml: %w", err)
		}
	}
	data, err := yaml.Marshal(yamlRecord{ID: c.ID, Title: c.Title, UpdatedAt: c.UpdatedAt, Body: body})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal content: %w", err)
	}
	return data, ".yaml", nil
}

// Load retrieves the content from its file, whichever format it is in.
func (s *Store) Load(ctx context.Context, id string) (*domain.Content, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		data, err := os.ReadFile(filepath.Join(s.BasePath, id+ext))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		return decode(data, ext)
	}

	return nil, domain.ErrContentNotFound
}

func decode(data []byte, ext string) (*domain.Content, error) {
	if ext == ".json" {
		var content domain.Content
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal content: %w", err)
		}
		return &content, nil
	}

	var rec yamlRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}
	body, err := json.Marshal(rec.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to convert yaml body: %w", err)
	}
	return &domain.Content{ID: rec.ID, Title: rec.Title, UpdatedAt: rec.UpdatedAt, Body: body}, nil
}

// Delete removes the content file in every format.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}

	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, id+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete content file: %w", err)
		}
	}

	return nil
}

// List returns all content IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	ids := mapset.NewThreadUnsafeSet[string]()
	for _, entry := range entries {
		if id, ok := idFromName(entry.Name()); ok && !entry.IsDir() {
			ids.Add(id)
		}
	}

	out := ids.ToSlice()
	sort.Strings(out)
	return out, nil
}

// idFromName maps a directory entry to a record ID, skipping temp files.
func idFromName(name string) (string, bool) {
	if strings.HasPrefix(name, "tmp-") {
		return "", false
	}
	ext := filepath.Ext(name)
	for _, known := range extensions {
		if ext == known {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}
