// Package scraper loads directory source descriptors and turns directory pages
// into partial opportunity records.
package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultSource is the descriptor scraped when no --source is given.
const DefaultSource = "notion-accelerator-directory"

// ErrSourceNotFound is returned when no descriptor matches a requested name.
var ErrSourceNotFound = errors.New("source not found")

// Source describes one external directory that can be scraped.
// Descriptors are JSON or YAML files in the sources directory.
type Source struct {
	Name                string `json:"name" yaml:"name" validate:"required"`
	Source              string `json:"source" yaml:"source"`
	Type                string `json:"type" yaml:"type"`
	URL                 string `json:"url" yaml:"url" validate:"required,url"`
	Description         string `json:"description,omitempty" yaml:"description,omitempty"`
	RequiresJSRendering bool   `json:"requiresJsRendering" yaml:"requiresJsRendering"`
	LastScraped         string `json:"lastScraped,omitempty" yaml:"lastScraped,omitempty"`

	// Path is the file the descriptor was read from.
	Path string `json:"-" yaml:"-"`
}

// SourceError represents a descriptor that could not be read or is invalid.
type SourceError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("source %s: %s", e.Path, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Key is the file name without its extension.
func (s *Source) Key() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LastScrapedAt parses LastScraped, returning nil when it is unset or unreadable.
func (s *Source) LastScrapedAt() *time.Time {
	if s.LastScraped == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.LastScraped)
	if err != nil {
		return nil
	}
	return &t
}

var validate = validator.New()

// LoadSource reads and validates one descriptor file.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Path: path, Message: "failed to read file", Cause: err}
	}

	// JSON is a subset of YAML, so one decoder serves both formats.
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, &SourceError{Path: path, Message: "failed to parse descriptor", Cause: err}
	}
	if err := validate.Struct(&src); err != nil {
		return nil, &SourceError{Path: path, Message: "invalid descriptor", Cause: err}
	}
	if src.Source == "" {
		src.Source = src.Name
	}
	src.Path = path
	return &src, nil
}

// LoadSources reads every *.json, *.yaml and *.yml descriptor in dir, sorted by file name.
// A missing directory yields no sources. Descriptors that fail to load are skipped and
// reported together in the returned error, next to the sources that did load.
func LoadSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Source{}, nil
		}
		return nil, fmt.Errorf("failed to read sources directory %s: %w", dir, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	sources := []Source{}
	var errs []error
	for _, name := range names {
		src, err := LoadSource(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sources = append(sources, *src)
	}
	return sources, errors.Join(errs...)
}

// FindSource returns the source whose name or file key equals name.
func FindSource(sources []Source, name string) (*Source, error) {
	for i := range sources {
		if sources[i].Name == name || sources[i].Key() == name {
			return &sources[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
}

// SaveSource rewrites a descriptor in the format its extension names.
func SaveSource(src *Source) error {
	if src.Path == "" {
		return &SourceError{Message: "descriptor has no file path"}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(src)
	default:
		data, err = json.MarshalIndent(src, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return &SourceError{Path: src.Path, Message: "failed to encode descriptor", Cause: err}
	}

	if err := os.WriteFile(src.Path, data, 0644); err != nil {
		return &SourceError{Path: src.Path, Message: "failed to write descriptor", Cause: err}
	}
	return nil
}

// MarkScraped records at as the source's last scrape time and saves the descriptor.
func MarkScraped(src *Source, at time.Time) error {
	src.LastScraped = at.UTC().Format(time.RFC3339)
	return SaveSource(src)
}
